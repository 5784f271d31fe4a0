package services

import (
	"context"

	"github.com/dmitrijs2005/jobboard/internal/client/client"
	"github.com/dmitrijs2005/jobboard/internal/client/models"
)

// fakeClient stubs the application endpoints of client.Client. Methods a
// test does not set panic through the nil embedded interface.
type fakeClient struct {
	client.Client

	MyApps      []models.Application
	MyAppsErr   error
	LastLimit   int
	JobPages    []models.Page[models.Application]
	PagesAsked  []int
	UpdateRet   models.Application
	UpdateErr   error
	UpdateCalls int
	WithdrawRet models.Application
	WithdrawErr error
	Withdrawals int
	SubmitCalls int
}

func (f *fakeClient) MyApplications(_ context.Context, limit int) ([]models.Application, error) {
	f.LastLimit = limit
	return f.MyApps, f.MyAppsErr
}

func (f *fakeClient) JobApplications(_ context.Context, _ string, page int) (models.Page[models.Application], error) {
	f.PagesAsked = append(f.PagesAsked, page)
	if page-1 < len(f.JobPages) {
		return f.JobPages[page-1], nil
	}
	return models.Page[models.Application]{}, nil
}

func (f *fakeClient) UpdateApplicationStatus(_ context.Context, id string, u models.StatusUpdate) (models.Application, error) {
	f.UpdateCalls++
	if f.UpdateErr != nil {
		return models.Application{}, f.UpdateErr
	}
	ret := f.UpdateRet
	ret.ID = id
	ret.Status = u.Status
	return ret, nil
}

func (f *fakeClient) WithdrawApplication(_ context.Context, id string) (models.Application, error) {
	f.Withdrawals++
	return f.WithdrawRet, f.WithdrawErr
}

func (f *fakeClient) SubmitApplication(_ context.Context, in models.ApplicationInput) (models.Application, error) {
	f.SubmitCalls++
	return models.Application{ID: "app-1", Job: models.IDRef[models.Job](in.JobID), ResumeURL: in.ResumeURL, Status: models.StatusApplied}, nil
}
