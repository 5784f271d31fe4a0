package apitest

import (
	"net/http"
	"strings"

	"github.com/dmitrijs2005/jobboard/internal/client/models"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// AddApplication seeds an application. Job and Candidate must be id refs.
// An empty history gets one entry for the current status.
func (s *Server) AddApplication(a models.Application) models.Application {
	s.mu.Lock()
	defer s.mu.Unlock()
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.Status == "" {
		a.Status = models.StatusApplied
	}
	if a.AppliedAt.IsZero() {
		a.AppliedAt = s.Now()
	}
	if a.UpdatedAt.IsZero() {
		a.UpdatedAt = a.AppliedAt
	}
	if a.EmployerID == "" {
		if j, ok := s.jobs[a.Job.ID]; ok {
			a.EmployerID = j.EmployerID
		}
	}
	if len(a.History) == 0 {
		a.History = []models.HistoryEntry{{Status: a.Status, ChangedBy: a.Candidate.ID, ChangedAt: a.AppliedAt}}
	}
	a.Job = models.IDRef[models.Job](a.Job.ID)
	a.Candidate = models.IDRef[models.User](a.Candidate.ID)
	if _, exists := s.apps[a.ID]; !exists {
		s.appOrder = append(s.appOrder, a.ID)
	}
	s.apps[a.ID] = &a
	return a
}

// Application returns the stored application with id references.
func (s *Server) Application(id string) (models.Application, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.apps[id]
	if !ok {
		return models.Application{}, false
	}
	return clone(a), true
}

func clone(a *models.Application) models.Application {
	c := *a
	c.History = append([]models.HistoryEntry(nil), a.History...)
	return c
}

// expandJob replaces the job reference with the job. Caller holds s.mu.
func (s *Server) expandJob(a models.Application) models.Application {
	if j, ok := s.jobs[a.Job.ID]; ok {
		a.Job = models.Expanded(*j)
	}
	return a
}

// expandCandidate replaces the candidate reference. Caller holds s.mu.
func (s *Server) expandCandidate(a models.Application) models.Application {
	if acc, ok := s.accounts[a.Candidate.ID]; ok {
		a.Candidate = models.Expanded(acc.user)
	}
	return a
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	u := currentUser(r)
	if !u.IsCandidate() {
		writeError(w, http.StatusForbidden, "Only candidates can apply to jobs")
		return
	}
	var in models.ApplicationInput
	if err := decode(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(in.ResumeURL) == "" {
		writeError(w, http.StatusBadRequest, "Resume is required")
		return
	}

	s.mu.Lock()
	j, ok := s.jobs[in.JobID]
	if !ok {
		s.mu.Unlock()
		writeError(w, http.StatusNotFound, "Job not found")
		return
	}
	if j.Status != models.JobOpen {
		s.mu.Unlock()
		writeError(w, http.StatusBadRequest, "This job is no longer accepting applications")
		return
	}
	for _, a := range s.apps {
		if a.Job.ID == in.JobID && a.Candidate.ID == u.ID && !a.IsWithdrawn {
			s.mu.Unlock()
			writeError(w, http.StatusConflict, "You have already applied to this job")
			return
		}
	}
	employer := j.EmployerID
	s.mu.Unlock()

	a := s.AddApplication(models.Application{
		Job:         models.IDRef[models.Job](in.JobID),
		Candidate:   models.IDRef[models.User](u.ID),
		EmployerID:  employer,
		CoverLetter: in.CoverLetter,
		ResumeURL:   in.ResumeURL,
	})
	writeData(w, http.StatusCreated, a, nil)
}

func (s *Server) handleMyApplications(w http.ResponseWriter, r *http.Request) {
	u := currentUser(r)
	if !u.IsCandidate() {
		writeError(w, http.StatusForbidden, "Only candidates have applications")
		return
	}

	s.mu.Lock()
	var mine []models.Application
	for _, id := range s.appOrder {
		if a := s.apps[id]; a.Candidate.ID == u.ID {
			mine = append(mine, s.expandJob(clone(a)))
		}
	}
	s.mu.Unlock()

	start, end, meta := paginate(r, len(mine))
	writeData(w, http.StatusOK, nonNil(mine[start:end]), meta)
}

func (s *Server) handleJobApplications(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	j, ok := s.ownedJob(w, r)
	if !ok {
		s.mu.Unlock()
		return
	}
	var list []models.Application
	for _, id := range s.appOrder {
		if a := s.apps[id]; a.Job.ID == j.ID {
			list = append(list, s.expandCandidate(clone(a)))
		}
	}
	s.mu.Unlock()

	start, end, meta := paginate(r, len(list))
	writeData(w, http.StatusOK, nonNil(list[start:end]), meta)
}

func (s *Server) handleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Status string `json:"status"`
		Note   string `json:"note"`
	}
	if err := decode(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	st := models.Status(in.Status)
	if !st.Valid() {
		writeError(w, http.StatusBadRequest, "Invalid status")
		return
	}

	u := currentUser(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.apps[chi.URLParam(r, "id")]
	if !ok {
		writeError(w, http.StatusNotFound, "Application not found")
		return
	}
	if a.EmployerID != u.ID {
		writeError(w, http.StatusForbidden, "Not authorized to update this application")
		return
	}
	now := s.Now()
	a.Status = st
	a.History = append(a.History, models.HistoryEntry{Status: st, ChangedBy: u.ID, ChangedAt: now, Note: in.Note})
	a.UpdatedAt = now
	writeData(w, http.StatusOK, clone(a), nil)
}

func (s *Server) handleWithdraw(w http.ResponseWriter, r *http.Request) {
	u := currentUser(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.apps[chi.URLParam(r, "id")]
	if !ok {
		writeError(w, http.StatusNotFound, "Application not found")
		return
	}
	if a.Candidate.ID != u.ID {
		writeError(w, http.StatusForbidden, "Not authorized to withdraw this application")
		return
	}
	if a.IsWithdrawn {
		writeError(w, http.StatusConflict, "Application already withdrawn")
		return
	}
	now := s.Now()
	a.IsWithdrawn = true
	a.WithdrawnAt = &now
	a.UpdatedAt = now
	writeData(w, http.StatusOK, clone(a), nil)
}
