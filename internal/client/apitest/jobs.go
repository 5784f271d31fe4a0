package apitest

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/jobboard/internal/client/models"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// AddJob seeds a job. Missing id, status and currency are filled in.
func (s *Server) AddJob(j models.Job) models.Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	if j.ID == "" {
		j.ID = uuid.NewString()
	}
	if j.Status == "" {
		j.Status = models.JobOpen
	}
	if j.Salary.Currency == "" {
		j.Salary.Currency = models.DefaultCurrency
	}
	if j.CreatedAt.IsZero() {
		j.CreatedAt = s.Now()
		j.UpdatedAt = j.CreatedAt
	}
	if _, exists := s.jobs[j.ID]; !exists {
		s.jobOrder = append(s.jobOrder, j.ID)
	}
	s.jobs[j.ID] = &j
	return j
}

// Job returns the stored job.
func (s *Server) Job(id string) (models.Job, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	j, ok := s.jobs[id]
	if !ok {
		return models.Job{}, false
	}
	return s.withCount(*j), true
}

// withCount fills ApplicantCount. Caller holds s.mu.
func (s *Server) withCount(j models.Job) models.Job {
	n := 0
	for _, a := range s.apps {
		if a.Job.ID == j.ID {
			n++
		}
	}
	j.ApplicantCount = n
	return j
}

func matches(j *models.Job, q searchQuery) bool {
	if j.Status != models.JobOpen {
		return false
	}
	if q.q != "" {
		needle := strings.ToLower(q.q)
		hay := strings.ToLower(j.Title + " " + j.Description + " " + strings.Join(j.Tags, " "))
		if !strings.Contains(hay, needle) {
			return false
		}
	}
	if q.location != "" && !strings.Contains(strings.ToLower(j.Location), strings.ToLower(q.location)) {
		return false
	}
	if q.isRemote != nil && j.IsRemote != *q.isRemote {
		return false
	}
	if q.salaryMin > 0 && j.Salary.Max < q.salaryMin {
		return false
	}
	if q.employmentType != "" && string(j.EmploymentType) != q.employmentType {
		return false
	}
	return true
}

type searchQuery struct {
	q, location, employmentType string
	isRemote                    *bool
	salaryMin                   int64
}

func parseSearch(r *http.Request) searchQuery {
	v := r.URL.Query()
	q := searchQuery{q: v.Get("q"), location: v.Get("location"), employmentType: v.Get("employmentType")}
	if s := v.Get("isRemote"); s != "" {
		b := s == "true"
		q.isRemote = &b
	}
	q.salaryMin, _ = strconv.ParseInt(v.Get("salaryMin"), 10, 64)
	return q
}

func (s *Server) handleSearchJobs(w http.ResponseWriter, r *http.Request) {
	q := parseSearch(r)

	s.mu.Lock()
	var found []models.Job
	for _, id := range s.jobOrder {
		if j := s.jobs[id]; matches(j, q) {
			found = append(found, s.withCount(*j))
		}
	}
	s.mu.Unlock()

	start, end, meta := paginate(r, len(found))
	writeData(w, http.StatusOK, nonNil(found[start:end]), meta)
}

func (s *Server) handleGetJob(w http.ResponseWriter, r *http.Request) {
	j, ok := s.Job(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusNotFound, "Job not found")
		return
	}
	writeData(w, http.StatusOK, j, nil)
}

func (s *Server) handleCreateJob(w http.ResponseWriter, r *http.Request) {
	u := currentUser(r)
	if !u.IsEmployer() {
		writeError(w, http.StatusForbidden, "Only employers can post jobs")
		return
	}
	var in models.JobInput
	if err := decode(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if in.Title == "" || in.Description == "" || in.Location == "" {
		writeError(w, http.StatusBadRequest, "Title, description and location are required")
		return
	}
	if in.Salary.Min > in.Salary.Max {
		writeError(w, http.StatusBadRequest, "Minimum salary cannot exceed maximum salary")
		return
	}

	j := s.AddJob(models.Job{
		EmployerID:     u.ID,
		Company:        models.Company{Name: u.Company, LogoURL: in.CompanyLogoURL},
		Title:          in.Title,
		Description:    in.Description,
		Location:       in.Location,
		IsRemote:       in.IsRemote,
		Salary:         in.Salary,
		EmploymentType: in.EmploymentType,
		Tags:           in.Tags,
	})
	writeData(w, http.StatusCreated, j, nil)
}

// ownedJob loads the job named in the URL and checks that the caller owns
// it. It writes the error response itself and returns false on failure.
// Caller holds s.mu.
func (s *Server) ownedJob(w http.ResponseWriter, r *http.Request) (*models.Job, bool) {
	j, ok := s.jobs[chi.URLParam(r, "id")]
	if !ok {
		writeError(w, http.StatusNotFound, "Job not found")
		return nil, false
	}
	if j.EmployerID != currentUser(r).ID {
		writeError(w, http.StatusForbidden, "Not authorized to manage this job")
		return nil, false
	}
	return j, true
}

func (s *Server) handleUpdateJob(w http.ResponseWriter, r *http.Request) {
	var p models.JobPatch
	if err := decode(r, &p); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	j, ok := s.ownedJob(w, r)
	if !ok {
		return
	}
	if p.Title != nil {
		j.Title = *p.Title
	}
	if p.Description != nil {
		j.Description = *p.Description
	}
	if p.Location != nil {
		j.Location = *p.Location
	}
	if p.IsRemote != nil {
		j.IsRemote = *p.IsRemote
	}
	if p.Salary != nil {
		j.Salary = *p.Salary
	}
	if p.EmploymentType != nil {
		j.EmploymentType = *p.EmploymentType
	}
	if p.Tags != nil {
		j.Tags = *p.Tags
	}
	if p.CompanyLogoURL != nil {
		j.Company.LogoURL = *p.CompanyLogoURL
	}
	if p.Status != nil {
		j.Status = *p.Status
	}
	j.UpdatedAt = s.Now()
	writeData(w, http.StatusOK, s.withCount(*j), nil)
}

func (s *Server) handleDeleteJob(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	j, ok := s.ownedJob(w, r)
	if !ok {
		return
	}
	delete(s.jobs, j.ID)
	for i, id := range s.jobOrder {
		if id == j.ID {
			s.jobOrder = append(s.jobOrder[:i], s.jobOrder[i+1:]...)
			break
		}
	}
	writeData(w, http.StatusOK, nil, nil)
}

func (s *Server) handleEmployerJobs(w http.ResponseWriter, r *http.Request) {
	u := currentUser(r)
	if !u.IsEmployer() {
		writeError(w, http.StatusForbidden, "Only employers can list their jobs")
		return
	}

	s.mu.Lock()
	var own []models.Job
	for _, id := range s.jobOrder {
		if j := s.jobs[id]; j.EmployerID == u.ID {
			own = append(own, s.withCount(*j))
		}
	}
	s.mu.Unlock()

	start, end, meta := paginate(r, len(own))
	writeData(w, http.StatusOK, nonNil(own[start:end]), meta)
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
