package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/jobboard/internal/client/client"
	"github.com/dmitrijs2005/jobboard/internal/client/models"
	"github.com/dmitrijs2005/jobboard/internal/client/validate"
)

type JobService interface {
	Search(ctx context.Context, f models.JobFilters) (models.Page[models.Job], error)
	Get(ctx context.Context, id string) (models.Job, error)
	Create(ctx context.Context, in models.JobInput) (models.Job, error)
	Update(ctx context.Context, id string, p models.JobPatch) (models.Job, error)
	Close(ctx context.Context, id string) (models.Job, error)
	Delete(ctx context.Context, id string) error
	ListEmployerJobs(ctx context.Context, page int) (models.Page[models.Job], error)
}

type jobService struct {
	client client.Client
}

func NewJobService(c client.Client) JobService {
	return &jobService{client: c}
}

func (s *jobService) Search(ctx context.Context, f models.JobFilters) (models.Page[models.Job], error) {
	p, err := s.client.SearchJobs(ctx, f)
	if err != nil {
		return models.Page[models.Job]{}, fmt.Errorf("search jobs: %w", err)
	}
	return p, nil
}

func (s *jobService) Get(ctx context.Context, id string) (models.Job, error) {
	j, err := s.client.GetJob(ctx, id)
	if err != nil {
		return models.Job{}, fmt.Errorf("get job: %w", err)
	}
	return j, nil
}

// NormalizeJob trims the form fields, defaults the currency and drops
// blank tags.
func NormalizeJob(in models.JobInput) models.JobInput {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	in.Location = strings.TrimSpace(in.Location)
	in.CompanyLogoURL = strings.TrimSpace(in.CompanyLogoURL)
	in.Salary.Currency = strings.ToUpper(strings.TrimSpace(in.Salary.Currency))
	if in.Salary.Currency == "" {
		in.Salary.Currency = models.DefaultCurrency
	}
	in.Tags = validate.SplitTags(strings.Join(in.Tags, ","))
	return in
}

func (s *jobService) Create(ctx context.Context, in models.JobInput) (models.Job, error) {
	in = NormalizeJob(in)
	if err := validate.Job(in); err != nil {
		return models.Job{}, err
	}

	j, err := s.client.CreateJob(ctx, in)
	if err != nil {
		return models.Job{}, fmt.Errorf("create job: %w", err)
	}
	return j, nil
}

// Update applies a partial edit. Re-opening a closed job is an update
// with Status set to open.
func (s *jobService) Update(ctx context.Context, id string, p models.JobPatch) (models.Job, error) {
	if p.Tags != nil {
		tags := validate.SplitTags(strings.Join(*p.Tags, ","))
		p.Tags = &tags
	}
	if err := validate.JobPatch(p); err != nil {
		return models.Job{}, err
	}

	j, err := s.client.UpdateJob(ctx, id, p)
	if err != nil {
		return models.Job{}, fmt.Errorf("update job: %w", err)
	}
	return j, nil
}

// Close moves a job from open to closed. Existing applications stay.
func (s *jobService) Close(ctx context.Context, id string) (models.Job, error) {
	closed := models.JobClosed
	return s.Update(ctx, id, models.JobPatch{Status: &closed})
}

func (s *jobService) Delete(ctx context.Context, id string) error {
	if err := s.client.DeleteJob(ctx, id); err != nil {
		return fmt.Errorf("delete job: %w", err)
	}
	return nil
}

func (s *jobService) ListEmployerJobs(ctx context.Context, page int) (models.Page[models.Job], error) {
	p, err := s.client.EmployerJobs(ctx, page)
	if err != nil {
		return models.Page[models.Job]{}, fmt.Errorf("list employer jobs: %w", err)
	}
	return p, nil
}
