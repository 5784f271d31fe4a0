package views

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/jobboard/internal/client/models"
)

// fakeApps implements the application interfaces of the views. When gate
// is set, ListMine and ListAllForJob block on it.
type fakeApps struct {
	mu sync.Mutex

	mine    []models.Application
	byJob   []models.Application
	listErr error
	gate    chan struct{}

	updateErr error
	updates   []models.StatusUpdate
	calls     []string
	submitted []string
	submitErr error
}

func (f *fakeApps) wait(ctx context.Context) error {
	if f.gate == nil {
		return nil
	}
	select {
	case <-f.gate:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (f *fakeApps) record(call string) {
	f.mu.Lock()
	f.calls = append(f.calls, call)
	f.mu.Unlock()
}

func (f *fakeApps) ListMine(ctx context.Context) ([]models.Application, error) {
	f.record("list-mine")
	if err := f.wait(ctx); err != nil {
		return nil, err
	}
	return f.mine, f.listErr
}

func (f *fakeApps) ListAllForJob(ctx context.Context, jobID string) ([]models.Application, error) {
	f.record("list-job")
	if err := f.wait(ctx); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.Application(nil), f.byJob...), f.listErr
}

func (f *fakeApps) UpdateStatus(_ context.Context, id string, s models.Status, note string) (models.Application, error) {
	f.record("update")
	if f.updateErr != nil {
		return models.Application{}, f.updateErr
	}
	f.mu.Lock()
	f.updates = append(f.updates, models.StatusUpdate{Status: s, Note: note})
	for i := range f.byJob {
		if f.byJob[i].ID == id {
			f.byJob[i].Status = s
		}
	}
	f.mu.Unlock()
	return models.Application{ID: id, Status: s}, nil
}

func (f *fakeApps) Submit(_ context.Context, jobID, resumeURL, coverLetter string) (models.Application, error) {
	f.record("submit")
	if f.submitErr != nil {
		return models.Application{}, f.submitErr
	}
	f.mu.Lock()
	f.submitted = append(f.submitted, resumeURL)
	f.mu.Unlock()
	return models.Application{ID: "app-1", Job: models.IDRef[models.Job](jobID), ResumeURL: resumeURL, CoverLetter: coverLetter, Status: models.StatusApplied}, nil
}

func (f *fakeApps) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

type fakeJobs struct {
	job     models.Job
	err     error
	created []models.JobInput
}

func (f *fakeJobs) Get(context.Context, string) (models.Job, error) { return f.job, f.err }

func (f *fakeJobs) Create(_ context.Context, in models.JobInput) (models.Job, error) {
	if f.err != nil {
		return models.Job{}, f.err
	}
	f.created = append(f.created, in)
	return models.Job{ID: "job-new", Title: in.Title, Status: models.JobOpen}, nil
}

func (f *fakeJobs) Update(_ context.Context, id string, p models.JobPatch) (models.Job, error) {
	if f.err != nil {
		return models.Job{}, f.err
	}
	j := f.job
	j.ID = id
	if p.Status != nil {
		j.Status = *p.Status
	}
	return j, nil
}

type fakeUploader struct {
	paths []string
	err   error
}

func (f *fakeUploader) UploadResume(_ context.Context, path string) (string, error) {
	f.paths = append(f.paths, path)
	if f.err != nil {
		return "", f.err
	}
	return "https://files.example.com/" + path, nil
}
