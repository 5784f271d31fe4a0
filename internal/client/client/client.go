package client

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/jobboard/internal/client/models"
)

// Client is the job board REST API as seen by the services layer.
type Client interface {
	Register(ctx context.Context, in models.RegisterInput) (models.User, error)
	Login(ctx context.Context, in models.LoginInput) (models.User, error)
	Logout(ctx context.Context) error
	Me(ctx context.Context) (models.User, error)

	SearchJobs(ctx context.Context, f models.JobFilters) (models.Page[models.Job], error)
	GetJob(ctx context.Context, id string) (models.Job, error)
	CreateJob(ctx context.Context, in models.JobInput) (models.Job, error)
	UpdateJob(ctx context.Context, id string, p models.JobPatch) (models.Job, error)
	DeleteJob(ctx context.Context, id string) error
	EmployerJobs(ctx context.Context, page int) (models.Page[models.Job], error)
	JobApplications(ctx context.Context, jobID string, page int) (models.Page[models.Application], error)

	SubmitApplication(ctx context.Context, in models.ApplicationInput) (models.Application, error)
	MyApplications(ctx context.Context, limit int) ([]models.Application, error)
	UpdateApplicationStatus(ctx context.Context, id string, u models.StatusUpdate) (models.Application, error)
	WithdrawApplication(ctx context.Context, id string) (models.Application, error)

	UploadSignature(ctx context.Context, in models.UploadRequest) (models.UploadDescriptor, error)

	// Session cookies for the API origin, for persistence between runs.
	SessionCookies() []*http.Cookie
	RestoreSession(cookies []*http.Cookie)
	ClearSession()

	Coordinator() *Coordinator
}
