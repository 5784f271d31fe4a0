package views

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/jobboard/internal/client/models"
	"github.com/dmitrijs2005/jobboard/internal/common"
)

// CanApply reports why u may not apply to j, or nil when it may.
func CanApply(u *models.User, j models.Job) error {
	switch {
	case u == nil:
		return common.NewValidationError("", "Please login to apply")
	case !u.IsCandidate():
		return common.NewValidationError("", "Only candidates can apply to jobs")
	case !j.IsOpen():
		return common.NewValidationError("", "This job is no longer accepting applications")
	}
	return nil
}

// ResumeUploader uploads a local resume and returns its URL.
type ResumeUploader interface {
	UploadResume(ctx context.Context, path string) (string, error)
}

// ApplicationSubmitter submits a new application.
type ApplicationSubmitter interface {
	Submit(ctx context.Context, jobID, resumeURL, coverLetter string) (models.Application, error)
}

// ApplyForm uploads a resume and submits an application for one job.
type ApplyForm struct {
	*lifecycle
	job      models.Job
	user     *models.User
	uploader ResumeUploader
	apps     ApplicationSubmitter
}

func NewApplyForm(parent context.Context, job models.Job, user *models.User, uploader ResumeUploader, apps ApplicationSubmitter) *ApplyForm {
	return &ApplyForm{lifecycle: newLifecycle(parent), job: job, user: user, uploader: uploader, apps: apps}
}

// Title is the form heading.
func (f *ApplyForm) Title() string { return "Apply to " + f.job.Title }

// Submit checks eligibility, uploads the resume and submits. Nothing is
// uploaded when the job is closed or no resume was picked.
func (f *ApplyForm) Submit(resumePath, coverLetter string) (models.Application, error) {
	if err := CanApply(f.user, f.job); err != nil {
		return models.Application{}, err
	}
	if strings.TrimSpace(resumePath) == "" {
		return models.Application{}, common.NewValidationError("resume", "Please upload your resume")
	}

	var out models.Application
	err := f.run(func(ctx context.Context) error {
		url, err := f.uploader.UploadResume(ctx, strings.TrimSpace(resumePath))
		if err != nil {
			return err
		}
		a, err := f.apps.Submit(ctx, f.job.ID, url, coverLetter)
		if err != nil {
			return err
		}
		return f.commit(func() { out = a })
	})
	return out, err
}

// JobEditor creates and edits job postings.
type JobEditor interface {
	Create(ctx context.Context, in models.JobInput) (models.Job, error)
	Update(ctx context.Context, id string, p models.JobPatch) (models.Job, error)
}

// JobForm posts a new job or edits an existing one.
type JobForm struct {
	*lifecycle
	jobs JobEditor
}

func NewJobForm(parent context.Context, jobs JobEditor) *JobForm {
	return &JobForm{lifecycle: newLifecycle(parent), jobs: jobs}
}

func (f *JobForm) Create(in models.JobInput) (models.Job, error) {
	var out models.Job
	err := f.run(func(ctx context.Context) error {
		j, err := f.jobs.Create(ctx, in)
		if err != nil {
			return err
		}
		return f.commit(func() { out = j })
	})
	return out, err
}

func (f *JobForm) Update(id string, p models.JobPatch) (models.Job, error) {
	var out models.Job
	err := f.run(func(ctx context.Context) error {
		j, err := f.jobs.Update(ctx, id, p)
		if err != nil {
			return err
		}
		return f.commit(func() { out = j })
	})
	return out, err
}
