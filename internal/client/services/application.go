package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/dmitrijs2005/jobboard/internal/client/client"
	"github.com/dmitrijs2005/jobboard/internal/client/models"
	"github.com/dmitrijs2005/jobboard/internal/client/validate"
	"github.com/dmitrijs2005/jobboard/internal/common"
)

// DefaultPageSize is the limit used when listing the candidate's
// applications.
const DefaultPageSize = 100

// maxPages bounds ListAllForJob against a backend that never reports the
// last page.
const maxPages = 1000

type ApplicationService interface {
	Submit(ctx context.Context, jobID, resumeURL, coverLetter string) (models.Application, error)
	ListMine(ctx context.Context) ([]models.Application, error)
	ListForJob(ctx context.Context, jobID string, page int) (models.Page[models.Application], error)
	ListAllForJob(ctx context.Context, jobID string) ([]models.Application, error)
	UpdateStatus(ctx context.Context, id string, status models.Status, note string) (models.Application, error)
	Withdraw(ctx context.Context, id string) (models.Application, error)
}

type applicationService struct {
	client   client.Client
	policy   models.TransitionPolicy
	pageSize int

	mu    sync.Mutex
	known map[string]models.Application
}

// NewApplicationService builds the service. A nil policy allows every
// status change; pageSize <= 0 means DefaultPageSize.
func NewApplicationService(c client.Client, policy models.TransitionPolicy, pageSize int) ApplicationService {
	if policy == nil {
		policy = models.AllowAll
	}
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &applicationService{
		client:   c,
		policy:   policy,
		pageSize: pageSize,
		known:    make(map[string]models.Application),
	}
}

func (s *applicationService) remember(apps ...models.Application) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range apps {
		s.known[a.ID] = a
	}
}

func (s *applicationService) lookup(id string) (models.Application, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.known[id]
	return a, ok
}

func (s *applicationService) Submit(ctx context.Context, jobID, resumeURL, coverLetter string) (models.Application, error) {
	in := models.ApplicationInput{
		JobID:       jobID,
		ResumeURL:   strings.TrimSpace(resumeURL),
		CoverLetter: strings.TrimSpace(coverLetter),
	}
	if err := validate.Application(in); err != nil {
		return models.Application{}, err
	}

	a, err := s.client.SubmitApplication(ctx, in)
	if err != nil {
		return models.Application{}, fmt.Errorf("submit application: %w", err)
	}
	s.remember(a)
	return a, nil
}

func (s *applicationService) ListMine(ctx context.Context) ([]models.Application, error) {
	apps, err := s.client.MyApplications(ctx, s.pageSize)
	if err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}
	s.remember(apps...)
	return apps, nil
}

func (s *applicationService) ListForJob(ctx context.Context, jobID string, page int) (models.Page[models.Application], error) {
	p, err := s.client.JobApplications(ctx, jobID, page)
	if err != nil {
		return models.Page[models.Application]{}, fmt.Errorf("list applications for job: %w", err)
	}
	s.remember(p.Items...)
	return p, nil
}

// ListAllForJob follows the pagination until the last page.
func (s *applicationService) ListAllForJob(ctx context.Context, jobID string) ([]models.Application, error) {
	var all []models.Application
	for page := 1; page <= maxPages; page++ {
		p, err := s.ListForJob(ctx, jobID, page)
		if err != nil {
			return nil, err
		}
		all = append(all, p.Items...)
		if len(p.Items) == 0 || !p.Meta.HasNext() {
			break
		}
	}
	return all, nil
}

// UpdateStatus checks the transition policy against the last status seen
// for the application, when there is one, before calling the API.
func (s *applicationService) UpdateStatus(ctx context.Context, id string, status models.Status, note string) (models.Application, error) {
	if !status.Valid() {
		return models.Application{}, common.NewValidationError("status", fmt.Sprintf("Unknown status %q", status))
	}
	var from models.Status
	if cur, ok := s.lookup(id); ok {
		from = cur.Status
	}
	if err := s.policy(from, status); err != nil {
		return models.Application{}, err
	}

	a, err := s.client.UpdateApplicationStatus(ctx, id, models.StatusUpdate{Status: status, Note: strings.TrimSpace(note)})
	if err != nil {
		return models.Application{}, fmt.Errorf("update status: %w", err)
	}
	s.remember(a)
	return a, nil
}

// Withdraw is idempotent: withdrawing an application that is already
// withdrawn returns its current state without an error.
func (s *applicationService) Withdraw(ctx context.Context, id string) (models.Application, error) {
	if cur, ok := s.lookup(id); ok && cur.IsWithdrawn {
		return cur, nil
	}

	a, err := s.client.WithdrawApplication(ctx, id)
	if err == nil {
		s.remember(a)
		return a, nil
	}
	if !errors.Is(err, common.ErrConflict) {
		return models.Application{}, fmt.Errorf("withdraw application: %w", err)
	}

	// the backend refuses a second withdrawal; confirm and return the state
	apps, lerr := s.ListMine(ctx)
	if lerr != nil {
		return models.Application{}, fmt.Errorf("withdraw application: %w", err)
	}
	for _, a := range apps {
		if a.ID == id && a.IsWithdrawn {
			return a, nil
		}
	}
	return models.Application{}, fmt.Errorf("withdraw application: %w", err)
}
