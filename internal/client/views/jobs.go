package views

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dmitrijs2005/jobboard/internal/client/models"
	"github.com/dmitrijs2005/jobboard/internal/timex"
)

// RenderJobList writes one card per job followed by the page line.
func RenderJobList(w io.Writer, p models.Page[models.Job], now time.Time) error {
	var sb strings.Builder
	if len(p.Items) == 0 {
		sb.WriteString("No jobs found\n")
	}
	for i, j := range p.Items {
		if i > 0 {
			sb.WriteString("\n")
		}
		writeJobCard(&sb, j, now)
	}
	if m := p.Meta; m != nil && m.TotalPages > 0 {
		fmt.Fprintf(&sb, "\nPage %d of %d (%s)\n", m.Page, m.TotalPages, plural(m.Total, "job", "jobs"))
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

func writeJobCard(sb *strings.Builder, j models.Job, now time.Time) {
	fmt.Fprintf(sb, "%s  [%s]\n", j.Title, j.ID)
	fmt.Fprintf(sb, "  %s\n", j.Company.Name)
	tags := []string{j.Location}
	if j.IsRemote {
		tags = append(tags, "Remote")
	}
	tags = append(tags, FormatEmploymentType(j.EmploymentType))
	fmt.Fprintf(sb, "  %s\n", strings.Join(tags, " | "))
	fmt.Fprintf(sb, "  %s  Posted %s\n", FormatSalary(j.Salary), timex.FormatRelative(j.CreatedAt, now))
	if j.ApplicantCount > 0 {
		fmt.Fprintf(sb, "  %s\n", plural(j.ApplicantCount, "applicant", "applicants"))
	}
}

// RenderJobDetail writes the full posting. canApply adds the apply hint.
func RenderJobDetail(w io.Writer, j models.Job, now time.Time, canApply bool) error {
	var sb strings.Builder
	writeJobCard(&sb, j, now)
	if !j.IsOpen() {
		sb.WriteString("  This job is closed\n")
	}
	if j.Company.LogoURL != "" {
		fmt.Fprintf(&sb, "  Logo: %s\n", j.Company.LogoURL)
	}
	if len(j.Tags) > 0 {
		fmt.Fprintf(&sb, "  Skills: %s\n", strings.Join(j.Tags, ", "))
	}
	fmt.Fprintf(&sb, "\nJob Description\n%s\n", j.Description)
	if canApply {
		fmt.Fprintf(&sb, "\nType 'apply %s' to apply for this position\n", j.ID)
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

// RenderEmployerJobs writes the employer's postings with status and
// applicant counts.
func RenderEmployerJobs(w io.Writer, p models.Page[models.Job], now time.Time) error {
	var sb strings.Builder
	sb.WriteString("My Job Postings\n\n")
	if len(p.Items) == 0 {
		sb.WriteString("No jobs posted yet\n")
		sb.WriteString("Create your first job posting to start receiving applications\n")
		_, err := io.WriteString(w, sb.String())
		return err
	}
	for i, j := range p.Items {
		if i > 0 {
			sb.WriteString("\n")
		}
		writeJobCard(&sb, j, now)
		fmt.Fprintf(&sb, "  Status: %s\n", j.Status)
	}
	if m := p.Meta; m != nil && m.TotalPages > 1 {
		fmt.Fprintf(&sb, "\nPage %d of %d\n", m.Page, m.TotalPages)
	}
	_, err := io.WriteString(w, sb.String())
	return err
}
