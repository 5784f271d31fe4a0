package cli

import (
	"context"
	"errors"
	"flag"
	"io"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/jobboard/internal/client/models"
	"github.com/dmitrijs2005/jobboard/internal/client/validate"
	"github.com/dmitrijs2005/jobboard/internal/client/views"
	"github.com/dmitrijs2005/jobboard/internal/common"
)

// parseSearchArgs reads "jobs" arguments. Words that are not flags become
// the free-text query.
//
//	jobs [-location city] [-remote=true|false] [-salary N] [-type t] [-page N] [-limit N] [text...]
func parseSearchArgs(args []string) (models.JobFilters, error) {
	var (
		f      models.JobFilters
		remote string
	)
	fs := flag.NewFlagSet("jobs", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&f.Q, "q", "", "search text")
	fs.StringVar(&f.Location, "location", "", "location")
	fs.StringVar(&remote, "remote", "", "remote only (true/false)")
	fs.Int64Var(&f.SalaryMin, "salary", 0, "minimum salary")
	et := fs.String("type", "", "employment type")
	fs.IntVar(&f.Page, "page", 0, "page")
	fs.IntVar(&f.Limit, "limit", 0, "page size")

	if err := fs.Parse(args); err != nil {
		return f, common.NewValidationError("", "Usage: jobs [-location city] [-remote=true|false] [-salary N] [-type full-time] [-page N] [text]")
	}
	if rest := strings.Join(fs.Args(), " "); rest != "" {
		f.Q = strings.TrimSpace(f.Q + " " + rest)
	}
	if remote != "" {
		b, err := strconv.ParseBool(remote)
		if err != nil {
			return f, common.NewValidationError("remote", "Remote must be true or false")
		}
		f.IsRemote = &b
	}
	f.EmploymentType = models.EmploymentType(*et)
	return f, nil
}

// Jobs searches open jobs.
func (a *App) Jobs(ctx context.Context, args []string) error {
	f, err := parseSearchArgs(args)
	if err != nil {
		return err
	}
	a.printf("%s\n", views.LoadingText)
	p, err := a.jobService.Search(ctx, f)
	if err != nil {
		return err
	}
	return views.RenderJobList(a.out, p, a.now())
}

// Job shows one job. When it cannot be loaded the open job listing is
// shown instead.
func (a *App) Job(ctx context.Context, id string) error {
	j, err := a.jobService.Get(ctx, id)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return err
		}
		a.printf("Failed to load job details: %s\n", common.UserMessage(err))
		return a.Jobs(ctx, nil)
	}
	canApply := views.CanApply(a.currentUser(), j) == nil
	return views.RenderJobDetail(a.out, j, a.now(), canApply)
}

// MyJobs lists the employer's postings.
func (a *App) MyJobs(ctx context.Context, args []string) error {
	if _, err := a.requireRole(models.RoleEmployer); err != nil {
		return err
	}
	page := 1
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 1 {
			return common.NewValidationError("page", "Page must be a positive number")
		}
		page = n
	}
	p, err := a.jobService.ListEmployerJobs(ctx, page)
	if err != nil {
		return err
	}
	return views.RenderEmployerJobs(a.out, p, a.now())
}

// PostJob prompts for a new posting and creates it.
func (a *App) PostJob(ctx context.Context) error {
	if _, err := a.requireRole(models.RoleEmployer); err != nil {
		return err
	}
	in, err := a.readJobInput()
	if err != nil {
		return err
	}

	form := views.NewJobForm(ctx, a.jobService)
	defer form.Close()

	j, err := form.Create(in)
	if err != nil {
		return err
	}
	a.printf("Job posted successfully! id: %s\n", j.ID)
	return nil
}

func (a *App) readJobInput() (models.JobInput, error) {
	var in models.JobInput
	var err error
	ask := func(prompt string) string {
		if err != nil {
			return ""
		}
		var s string
		s, err = getSimpleText(a.reader, prompt, a.out)
		return s
	}

	in.Title = ask("Job title")
	if err == nil {
		in.Description, err = getMultiline(a.reader, "Job description", a.out)
	}
	in.Location = ask("Location")
	if err == nil {
		in.IsRemote, err = GetYesNo(a.reader, "Remote?", a.out)
	}
	minSalary := ask("Minimum salary")
	maxSalary := ask("Maximum salary")
	in.Salary.Currency = ask("Currency (default INR)")
	in.EmploymentType = models.EmploymentType(ask("Employment type (full-time, part-time, contract, internship)"))
	in.Tags = validate.SplitTags(ask("Skills, comma separated"))
	in.CompanyLogoURL = ask("Company logo URL (optional)")
	if err != nil {
		return in, err
	}

	if in.Salary.Min, err = parseAmount(minSalary); err != nil {
		return in, err
	}
	if in.Salary.Max, err = parseAmount(maxSalary); err != nil {
		return in, err
	}
	return in, nil
}

func parseAmount(s string) (int64, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return 0, nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, common.NewValidationError("salary", "Salary must be a whole number")
	}
	return n, nil
}

// EditJob prompts for the fields to change; blank answers keep the
// current value. Setting the status to open re-opens a closed job.
func (a *App) EditJob(ctx context.Context, id string) error {
	if _, err := a.requireRole(models.RoleEmployer); err != nil {
		return err
	}
	cur, err := a.jobService.Get(ctx, id)
	if err != nil {
		return err
	}

	var p models.JobPatch
	ask := func(prompt, current string) (string, bool) {
		if err != nil {
			return "", false
		}
		var s string
		s, err = getSimpleText(a.reader, prompt+" ["+current+"]", a.out)
		return s, err == nil && s != ""
	}

	if s, ok := ask("Job title", cur.Title); ok {
		p.Title = &s
	}
	if err == nil {
		var desc string
		desc, err = getMultiline(a.reader, "Job description (empty keeps current)", a.out)
		if err == nil && desc != "" {
			p.Description = &desc
		}
	}
	if s, ok := ask("Location", cur.Location); ok {
		p.Location = &s
	}
	if s, ok := ask("Remote (y/n)", strconv.FormatBool(cur.IsRemote)); ok {
		b := parseYesNo(s)
		p.IsRemote = &b
	}
	if s, ok := ask("Salary min-max", strconv.FormatInt(cur.Salary.Min, 10)+"-"+strconv.FormatInt(cur.Salary.Max, 10)); ok {
		lo, hi, found := strings.Cut(s, "-")
		if !found {
			return common.NewValidationError("salary", "Salary must be given as min-max")
		}
		sal := models.Salary{Currency: cur.Salary.Currency}
		if sal.Min, err = parseAmount(lo); err != nil {
			return err
		}
		if sal.Max, err = parseAmount(hi); err != nil {
			return err
		}
		p.Salary = &sal
	}
	if s, ok := ask("Employment type", string(cur.EmploymentType)); ok {
		et := models.EmploymentType(s)
		p.EmploymentType = &et
	}
	if s, ok := ask("Skills, comma separated, - to clear", strings.Join(cur.Tags, ", ")); ok {
		tags := []string{}
		if s != "-" {
			tags = validate.SplitTags(s)
		}
		p.Tags = &tags
	}
	if s, ok := ask("Status (open/closed)", string(cur.Status)); ok {
		st := models.JobStatus(strings.ToLower(s))
		p.Status = &st
	}
	if err != nil {
		return err
	}

	form := views.NewJobForm(ctx, a.jobService)
	defer form.Close()

	j, err := form.Update(id, p)
	if err != nil {
		return err
	}
	a.printf("Job updated (%s)\n", j.Status)
	return nil
}

// CloseJob stops a job from accepting applications.
func (a *App) CloseJob(ctx context.Context, id string) error {
	if _, err := a.requireRole(models.RoleEmployer); err != nil {
		return err
	}
	if _, err := a.jobService.Close(ctx, id); err != nil {
		return err
	}
	a.printf("Job closed\n")
	return nil
}

// DeleteJob removes a posting after confirmation.
func (a *App) DeleteJob(ctx context.Context, id string) error {
	if _, err := a.requireRole(models.RoleEmployer); err != nil {
		return err
	}
	ok, err := GetYesNo(a.reader, "Are you sure you want to delete this job?", a.out)
	if err != nil || !ok {
		return err
	}
	if err := a.jobService.Delete(ctx, id); err != nil {
		return err
	}
	a.printf("Job deleted successfully\n")
	return nil
}
