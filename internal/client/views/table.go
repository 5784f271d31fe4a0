package views

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/dmitrijs2005/jobboard/internal/client/models"
	"github.com/dmitrijs2005/jobboard/internal/common"
	"github.com/dmitrijs2005/jobboard/internal/timex"
	"golang.org/x/sync/errgroup"
)

// Option is one entry of a row's status selector.
type Option struct {
	Status   models.Status
	Selected bool
}

// Row is one application in the employer table.
type Row struct {
	ID             string
	CandidateName  string
	CandidateEmail string
	Applied        string
	Status         models.Status
	ResumeURL      string
	Options        []Option
}

// StatusOptions lists every status in display order with current selected.
func StatusOptions(current models.Status) []Option {
	all := models.AllStatuses()
	opts := make([]Option, len(all))
	for i, s := range all {
		opts[i] = Option{Status: s, Selected: s == current}
	}
	return opts
}

// Rows maps applications to table rows in input order.
func Rows(apps []models.Application) []Row {
	rows := make([]Row, 0, len(apps))
	for _, a := range apps {
		r := Row{
			ID:        a.ID,
			Applied:   timex.FormatDate(a.AppliedAt),
			Status:    a.Status,
			ResumeURL: a.ResumeURL,
			Options:   StatusOptions(a.Status),
		}
		if c := a.Candidate.Value; c != nil {
			r.CandidateName, r.CandidateEmail = c.Name, c.Email
		} else {
			r.CandidateName = a.Candidate.ID
		}
		rows = append(rows, r)
	}
	return rows
}

func formatOptions(opts []Option) string {
	parts := make([]string, len(opts))
	for i, o := range opts {
		if o.Selected {
			parts[i] = "*" + string(o.Status)
		} else {
			parts[i] = string(o.Status)
		}
	}
	return strings.Join(parts, " ")
}

// RenderTable writes the applications received for one job.
func RenderTable(w io.Writer, jobTitle string, rows []Row, color bool) error {
	if _, err := fmt.Fprintf(w, "Applications for %s\n%s received\n\n",
		jobTitle, plural(len(rows), "application", "applications")); err != nil {
		return err
	}
	if len(rows) == 0 {
		_, err := fmt.Fprintln(w, "No applications received yet")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tCANDIDATE\tEMAIL\tAPPLIED\tSTATUS\tRESUME\tSET STATUS")
	for i, r := range rows {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			i+1, r.CandidateName, r.CandidateEmail, r.Applied,
			r.Status.Badge(color), r.ResumeURL, formatOptions(r.Options))
	}
	return tw.Flush()
}

// JobGetter loads one job.
type JobGetter interface {
	Get(ctx context.Context, id string) (models.Job, error)
}

// ApplicationManager is what the employer table needs from the
// application service.
type ApplicationManager interface {
	ListAllForJob(ctx context.Context, jobID string) ([]models.Application, error)
	UpdateStatus(ctx context.Context, id string, status models.Status, note string) (models.Application, error)
}

// ErrReloadFailed is returned by ChangeStatus when the status change was
// saved but the list could not be fetched again. The table still shows the
// previous list.
var ErrReloadFailed = errors.New("status updated; reload failed")

// TableView is the employer's application table for one job.
type TableView struct {
	*lifecycle
	jobID  string
	jobs   JobGetter
	apps   ApplicationManager
	policy models.TransitionPolicy
	color  bool

	loaded       bool
	job          models.Job
	applications []models.Application
}

func NewTableView(parent context.Context, jobID string, jobs JobGetter, apps ApplicationManager, policy models.TransitionPolicy, color bool) *TableView {
	if policy == nil {
		policy = models.AllowAll
	}
	return &TableView{
		lifecycle: newLifecycle(parent),
		jobID:     jobID,
		jobs:      jobs,
		apps:      apps,
		policy:    policy,
		color:     color,
	}
}

// Load fetches the job and all its applications concurrently.
func (v *TableView) Load() error {
	return v.run(v.load)
}

func (v *TableView) load(ctx context.Context) error {
	var (
		job  models.Job
		apps []models.Application
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		job, err = v.jobs.Get(gctx, v.jobID)
		return err
	})
	g.Go(func() error {
		var err error
		apps, err = v.apps.ListAllForJob(gctx, v.jobID)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}
	return v.commit(func() {
		v.job, v.applications, v.loaded = job, apps, true
	})
}

// ChangeStatus moves one application to status. On success the whole list
// is fetched again; on failure the table keeps the last persisted state.
func (v *TableView) ChangeStatus(applicationID string, status models.Status) error {
	return v.run(func(ctx context.Context) error {
		var (
			current models.Status
			found   bool
		)
		v.read(func() {
			for _, a := range v.applications {
				if a.ID == applicationID {
					current, found = a.Status, true
					break
				}
			}
		})
		if !found {
			return common.NewValidationError("application", "Application not found in this table")
		}
		if err := v.policy(current, status); err != nil {
			return err
		}

		if _, err := v.apps.UpdateStatus(ctx, applicationID, status, ""); err != nil {
			return err
		}

		apps, err := v.apps.ListAllForJob(ctx, v.jobID)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrReloadFailed, err)
		}
		return v.commit(func() { v.applications = apps })
	})
}

// Job returns the loaded job.
func (v *TableView) Job() models.Job {
	var j models.Job
	v.read(func() { j = v.job })
	return j
}

// Rows returns the current rows.
func (v *TableView) Rows() []Row {
	var apps []models.Application
	v.read(func() { apps = v.applications })
	return Rows(apps)
}

// ResolveRow maps a 1-based row number or an application id to an id.
func (v *TableView) ResolveRow(ref string) (string, bool) {
	rows := v.Rows()
	for i, r := range rows {
		if r.ID == ref || fmt.Sprint(i+1) == ref {
			return r.ID, true
		}
	}
	return "", false
}

func (v *TableView) Render(w io.Writer) error {
	var (
		loaded bool
		job    models.Job
		apps   []models.Application
	)
	v.read(func() { loaded, job, apps = v.loaded, v.job, v.applications })
	if !loaded {
		return renderLoading(w)
	}
	return RenderTable(w, job.Title, Rows(apps), v.color)
}
