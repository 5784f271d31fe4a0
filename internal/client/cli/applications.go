package cli

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/jobboard/internal/client/models"
	"github.com/dmitrijs2005/jobboard/internal/client/views"
	"github.com/dmitrijs2005/jobboard/internal/common"
)

// Apply uploads a resume and submits an application to jobID.
func (a *App) Apply(ctx context.Context, jobID string) error {
	j, err := a.jobService.Get(ctx, jobID)
	if err != nil {
		return err
	}
	u := a.currentUser()
	if err := views.CanApply(u, j); err != nil {
		return err
	}

	form := views.NewApplyForm(ctx, j, u, a.uploader, a.appService)
	defer form.Close()

	a.printf("%s at %s\n", form.Title(), j.Company.Name)
	path, err := getSimpleText(a.reader, "Path to resume (PDF, max 5 MB)", a.out)
	if err != nil {
		return err
	}
	cover, err := getMultiline(a.reader, "Cover letter (optional)", a.out)
	if err != nil {
		return err
	}

	a.printf("Uploading resume...\n")
	if _, err := form.Submit(path, cover); err != nil {
		return err
	}
	a.printf("Application submitted successfully!\n")
	return nil
}

// Board shows the candidate's applications grouped by status.
func (a *App) Board(ctx context.Context) error {
	if _, err := a.requireRole(models.RoleCandidate); err != nil {
		return err
	}
	v := views.NewBoardView(ctx, a.appService, a.color)
	defer v.Close()

	if err := v.Render(a.out); err != nil {
		return err
	}
	if err := v.Load(); err != nil {
		return err
	}
	return v.Render(a.out)
}

// Withdraw withdraws one of the candidate's applications.
func (a *App) Withdraw(ctx context.Context, id string) error {
	if _, err := a.requireRole(models.RoleCandidate); err != nil {
		return err
	}
	if _, err := a.appService.Withdraw(ctx, id); err != nil {
		return err
	}
	a.printf("Application withdrawn\n")
	return nil
}

// Applications opens the employer table for jobID. It stays open for
// setstatus until another table is opened or the user logs out. When it
// cannot be loaded the employer's job list is shown instead.
func (a *App) Applications(ctx context.Context, jobID string) error {
	if _, err := a.requireRole(models.RoleEmployer); err != nil {
		return err
	}
	v := views.NewTableView(ctx, jobID, a.jobService, a.appService, a.policy, a.color)
	a.openTable(v)

	if err := v.Render(a.out); err != nil {
		return err
	}
	if err := v.Load(); err != nil {
		a.closeTable()
		if errors.Is(err, context.Canceled) {
			return err
		}
		a.printf("Failed to load applications: %s\n", common.UserMessage(err))
		return a.MyJobs(ctx, nil)
	}
	return v.Render(a.out)
}

// SetStatus changes the status of a row in the open table. ref is a row
// number or an application id.
func (a *App) SetStatus(ctx context.Context, ref, status string) error {
	if _, err := a.requireRole(models.RoleEmployer); err != nil {
		return err
	}
	v := a.currentTable()
	if v == nil {
		return common.NewValidationError("", "Open a job's applications first: applications <jobId>")
	}
	st, err := models.ParseStatus(status)
	if err != nil {
		return err
	}
	id, ok := v.ResolveRow(ref)
	if !ok {
		return common.NewValidationError("", "No such application: "+ref)
	}
	if err := v.ChangeStatus(id, st); err != nil {
		if !errors.Is(err, views.ErrReloadFailed) {
			return err
		}
		a.printf("Application status updated, but the list could not be reloaded: %s\n", common.UserMessage(err))
		a.printf("Run 'applications %s' to refresh\n", v.Job().ID)
		return nil
	}
	a.printf("Application status updated\n")
	return v.Render(a.out)
}
