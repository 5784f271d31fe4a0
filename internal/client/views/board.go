package views

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dmitrijs2005/jobboard/internal/client/models"
	"github.com/dmitrijs2005/jobboard/internal/timex"
)

const (
	boardEmptyTitle = "No applications yet"
	boardEmptyHint  = "Start applying to jobs to track your applications here"
	columnEmpty     = "No applications"
)

// Column is one status lane of the candidate board.
type Column struct {
	Status       models.Status
	Applications []models.Application
}

// Board is the candidate's applications grouped by status. Total counts
// every application, withdrawn ones included.
type Board struct {
	Columns []Column
	Total   int
}

// Empty reports whether the candidate has no applications at all.
func (b Board) Empty() bool { return b.Total == 0 }

// GroupByStatus builds one column per status in display order. Withdrawn
// applications appear in no column; order within a column is input order.
func GroupByStatus(apps []models.Application) Board {
	statuses := models.AllStatuses()
	b := Board{Columns: make([]Column, len(statuses)), Total: len(apps)}
	for i, s := range statuses {
		b.Columns[i].Status = s
	}
	for _, a := range apps {
		if a.IsWithdrawn {
			continue
		}
		if i := a.Status.Index(); i >= 0 {
			b.Columns[i].Applications = append(b.Columns[i].Applications, a)
		}
	}
	return b
}

// RenderBoard writes the board, or the empty state when there is nothing
// to show.
func RenderBoard(w io.Writer, b Board, now time.Time, color bool) error {
	var sb strings.Builder
	sb.WriteString("My Applications\n")
	sb.WriteString("Track the status of your job applications\n\n")

	if b.Empty() {
		sb.WriteString(boardEmptyTitle + "\n")
		sb.WriteString(boardEmptyHint + "\n")
		_, err := io.WriteString(w, sb.String())
		return err
	}

	for _, col := range b.Columns {
		fmt.Fprintf(&sb, "== %s (%d) ==\n", col.Status, len(col.Applications))
		if len(col.Applications) == 0 {
			sb.WriteString("  " + columnEmpty + "\n")
			continue
		}
		for _, a := range col.Applications {
			writeCard(&sb, a, now, color)
		}
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

func writeCard(sb *strings.Builder, a models.Application, now time.Time, color bool) {
	title, company := "Job "+a.Job.ID, ""
	if j := a.Job.Value; j != nil {
		title, company = j.Title, j.Company.Name
	}
	fmt.Fprintf(sb, "  %s\n", title)
	if company != "" {
		fmt.Fprintf(sb, "    %s\n", company)
	}
	fmt.Fprintf(sb, "    %s  %s\n", a.Status.Badge(color), timex.FormatRelative(a.AppliedAt, now))
}

// ApplicationLister lists the current candidate's applications.
type ApplicationLister interface {
	ListMine(ctx context.Context) ([]models.Application, error)
}

// BoardView is the candidate dashboard. It is read-only.
type BoardView struct {
	*lifecycle
	apps  ApplicationLister
	color bool
	now   func() time.Time

	loaded bool
	board  Board
}

func NewBoardView(parent context.Context, apps ApplicationLister, color bool) *BoardView {
	return &BoardView{lifecycle: newLifecycle(parent), apps: apps, color: color, now: time.Now}
}

// Load fetches the applications once and groups them.
func (v *BoardView) Load() error {
	return v.run(func(ctx context.Context) error {
		apps, err := v.apps.ListMine(ctx)
		if err != nil {
			return err
		}
		return v.commit(func() {
			v.board = GroupByStatus(apps)
			v.loaded = true
		})
	})
}

// Board returns the last loaded board.
func (v *BoardView) Board() Board {
	var b Board
	v.read(func() { b = v.board })
	return b
}

func (v *BoardView) Render(w io.Writer) error {
	var (
		loaded bool
		b      Board
	)
	v.read(func() { loaded, b = v.loaded, v.board })
	if !loaded {
		return renderLoading(w)
	}
	return RenderBoard(w, b, v.now(), v.color)
}
