package cli

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/jobboard/internal/client/models"
	"github.com/dmitrijs2005/jobboard/internal/common"
	"github.com/dmitrijs2005/jobboard/internal/logging"
)

type fakeAuth struct {
	user      models.User
	err       error
	loggedOut bool
	cleared   bool
	restored  bool
}

func (f *fakeAuth) Register(ctx context.Context, in models.RegisterInput) (models.User, error) {
	if f.err != nil {
		return models.User{}, f.err
	}
	f.user = models.User{ID: "u1", Name: in.Name, Email: in.Email, Role: in.Role, Company: in.Company}
	return f.user, nil
}

func (f *fakeAuth) Login(ctx context.Context, email, password string) (models.User, error) {
	if f.err != nil {
		return models.User{}, f.err
	}
	return f.user, nil
}

func (f *fakeAuth) Logout(ctx context.Context) error {
	f.loggedOut = true
	return f.err
}

func (f *fakeAuth) CurrentUser(ctx context.Context) (models.User, error) {
	return f.user, f.err
}

func (f *fakeAuth) RestoreSession(ctx context.Context) (models.User, bool, error) {
	return f.user, f.restored, nil
}

func (f *fakeAuth) ClearSession(ctx context.Context) error {
	f.cleared = true
	return nil
}

type fakeJobs struct {
	mu      sync.Mutex
	jobs    map[string]models.Job
	filters []models.JobFilters
	created []models.JobInput
	patches map[string]models.JobPatch
	deleted []string
	err     error
}

func newFakeJobs(jobs ...models.Job) *fakeJobs {
	f := &fakeJobs{jobs: map[string]models.Job{}, patches: map[string]models.JobPatch{}}
	for _, j := range jobs {
		f.jobs[j.ID] = j
	}
	return f
}

func (f *fakeJobs) Search(ctx context.Context, in models.JobFilters) (models.Page[models.Job], error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.filters = append(f.filters, in)
	if f.err != nil {
		return models.Page[models.Job]{}, f.err
	}
	var out []models.Job
	for _, j := range f.jobs {
		if j.IsOpen() {
			out = append(out, j)
		}
	}
	return models.Page[models.Job]{Items: out, Meta: &models.PageMeta{Page: 1, Total: len(out), TotalPages: 1}}, nil
}

func (f *fakeJobs) Get(ctx context.Context, id string) (models.Job, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	j, ok := f.jobs[id]
	if !ok {
		return models.Job{}, &common.APIError{Kind: common.ErrNotFound, Status: 404, Message: "Job not found"}
	}
	return j, nil
}

func (f *fakeJobs) Create(ctx context.Context, in models.JobInput) (models.Job, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return models.Job{}, f.err
	}
	f.created = append(f.created, in)
	j := models.Job{ID: "new", Title: in.Title, Status: models.JobOpen}
	f.jobs[j.ID] = j
	return j, nil
}

func (f *fakeJobs) Update(ctx context.Context, id string, p models.JobPatch) (models.Job, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	j, ok := f.jobs[id]
	if !ok {
		return models.Job{}, &common.APIError{Kind: common.ErrNotFound, Status: 404, Message: "Job not found"}
	}
	f.patches[id] = p
	if p.Title != nil {
		j.Title = *p.Title
	}
	if p.Status != nil {
		j.Status = *p.Status
	}
	f.jobs[id] = j
	return j, nil
}

func (f *fakeJobs) Close(ctx context.Context, id string) (models.Job, error) {
	st := models.JobClosed
	return f.Update(ctx, id, models.JobPatch{Status: &st})
}

func (f *fakeJobs) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, id)
	delete(f.jobs, id)
	return nil
}

func (f *fakeJobs) ListEmployerJobs(ctx context.Context, page int) (models.Page[models.Job], error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Job
	for _, j := range f.jobs {
		out = append(out, j)
	}
	return models.Page[models.Job]{Items: out, Meta: &models.PageMeta{Page: page, Total: len(out), TotalPages: 1}}, nil
}

type fakeApps struct {
	mu        sync.Mutex
	apps      []models.Application
	submitted []string
	updates   []string
	withdrawn []string
	listErr   error
}

func (f *fakeApps) Submit(ctx context.Context, jobID, resumeURL, coverLetter string) (models.Application, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.submitted = append(f.submitted, jobID+" "+resumeURL+" "+coverLetter)
	return models.Application{ID: "a-new", Status: models.StatusApplied}, nil
}

func (f *fakeApps) ListMine(ctx context.Context) ([]models.Application, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.Application(nil), f.apps...), f.listErr
}

func (f *fakeApps) ListForJob(ctx context.Context, jobID string, page int) (models.Page[models.Application], error) {
	apps, err := f.ListAllForJob(ctx, jobID)
	return models.Page[models.Application]{Items: apps}, err
}

func (f *fakeApps) ListAllForJob(ctx context.Context, jobID string) ([]models.Application, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []models.Application
	for _, a := range f.apps {
		if a.Job.ID == jobID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeApps) UpdateStatus(ctx context.Context, id string, status models.Status, note string) (models.Application, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updates = append(f.updates, id+" "+string(status))
	for i := range f.apps {
		if f.apps[i].ID == id {
			f.apps[i].Status = status
			return f.apps[i], nil
		}
	}
	return models.Application{}, &common.APIError{Kind: common.ErrNotFound, Status: 404, Message: "Application not found"}
}

func (f *fakeApps) Withdraw(ctx context.Context, id string) (models.Application, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.withdrawn = append(f.withdrawn, id)
	return models.Application{ID: id, IsWithdrawn: true}, nil
}

type fakeUploader struct {
	paths []string
}

func (f *fakeUploader) UploadResume(ctx context.Context, path string) (string, error) {
	f.paths = append(f.paths, path)
	return "https://files.example.com/" + path, nil
}

var testNow = time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)

type testApp struct {
	*App
	auth     *fakeAuth
	jobs     *fakeJobs
	apps     *fakeApps
	uploader *fakeUploader
	buf      *bytes.Buffer
}

// newTestApp builds an App over fakes. input feeds every prompt.
func newTestApp(t *testing.T, user *models.User, input string) *testApp {
	t.Helper()
	ta := &testApp{
		auth:     &fakeAuth{},
		jobs:     newFakeJobs(),
		apps:     &fakeApps{},
		uploader: &fakeUploader{},
		buf:      &bytes.Buffer{},
	}
	ta.App = &App{
		log:         logging.Discard(),
		authService: ta.auth,
		jobService:  ta.jobs,
		appService:  ta.apps,
		uploader:    ta.uploader,
		policy:      models.AllowAll,
		reader:      bufio.NewReader(strings.NewReader(input)),
		out:         ta.buf,
		now:         func() time.Time { return testNow },
		user:        user,
	}
	t.Cleanup(ta.closeTable)
	return ta
}

// stubPassword makes getPassword return pw for the duration of the test.
func stubPassword(t *testing.T, pw string) {
	t.Helper()
	orig := getPassword
	getPassword = func(io.Writer) ([]byte, error) { return []byte(pw), nil }
	t.Cleanup(func() { getPassword = orig })
}

func candidate() *models.User {
	return &models.User{ID: "c1", Name: "Ann", Email: "ann@example.com", Role: models.RoleCandidate}
}

func employer() *models.User {
	return &models.User{ID: "e1", Name: "Bob", Email: "bob@acme.test", Role: models.RoleEmployer, Company: "Acme"}
}

func openJob() models.Job {
	return models.Job{
		ID:             "j1",
		EmployerID:     "e1",
		Company:        models.Company{Name: "Acme"},
		Title:          "Go Developer",
		Description:    "Build services",
		Location:       "Pune",
		Salary:         models.Salary{Min: 1000000, Max: 2000000, Currency: "INR"},
		EmploymentType: models.FullTime,
		Status:         models.JobOpen,
		CreatedAt:      testNow.Add(-48 * time.Hour),
	}
}
