package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/jobboard/internal/common"
)

// execIface defines the command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Whoami(ctx context.Context) error

	Jobs(ctx context.Context, args []string) error
	Job(ctx context.Context, id string) error
	Apply(ctx context.Context, jobID string) error
	Board(ctx context.Context) error
	Withdraw(ctx context.Context, id string) error

	MyJobs(ctx context.Context, args []string) error
	PostJob(ctx context.Context) error
	EditJob(ctx context.Context, id string) error
	CloseJob(ctx context.Context, id string) error
	DeleteJob(ctx context.Context, id string) error
	Applications(ctx context.Context, jobID string) error
	SetStatus(ctx context.Context, ref, status string) error
}

const (
	helpGuest = `Available commands:
  jobs [-location city] [-remote=true] [-salary N] [-type t] [-page N] [text]
  job <id>                   show a job
  register | login           start a session
  exit | quit`

	helpUser = `Available commands:
  jobs [-location city] [-remote=true] [-salary N] [-type t] [-page N] [text]
  job <id>                   show a job
  whoami | logout

Candidates:
  apply <jobId>              upload a resume and apply
  board                      applications grouped by status
  withdraw <applicationId>

Employers:
  myjobs [page]              your postings
  postjob | editjob <id> | closejob <id> | deletejob <id>
  applications <jobId>       open the applications table
  setstatus <row|id> <status>

  exit | quit`
)

// runREPL reads commands from reader until EOF, exit or quit, or until ctx
// is cancelled. The first word of a line is the command, the rest are its
// arguments. Handler errors are printed and the loop continues.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader, out io.Writer) {
	for {
		if ctx.Err() != nil {
			return
		}
		fmt.Fprintf(out, "jb%s> ", prefixed(statusFn()))

		line, err := reader.ReadString('\n')
		if err != nil && (line == "" || !errors.Is(err, io.EOF)) {
			fmt.Fprintln(out)
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := strings.ToLower(parts[0]), parts[1:]

		if cmd == "exit" || cmd == "quit" {
			fmt.Fprintln(out, "Bye!")
			return
		}
		if err := dispatch(ctx, a, cmd, args, out); err != nil {
			fmt.Fprintln(out, "Error:", common.UserMessage(err))
		}
	}
}

func prefixed(s string) string {
	if s == "" {
		return ""
	}
	return " " + s
}

// usage is returned when a command gets the wrong number of arguments.
func usage(s string) error {
	return common.NewValidationError("", "Usage: "+s)
}

func dispatch(ctx context.Context, a execIface, cmd string, args []string, out io.Writer) error {
	one := func(name string, fn func(context.Context, string) error) error {
		if len(args) != 1 {
			return usage(name + " <id>")
		}
		return fn(ctx, args[0])
	}

	switch cmd {
	case "help":
		if a.isLoggedIn() {
			fmt.Fprintln(out, helpUser)
		} else {
			fmt.Fprintln(out, helpGuest)
		}
		return nil

	case "register":
		return a.Register(ctx)
	case "login":
		return a.Login(ctx)
	case "logout":
		return a.Logout(ctx)
	case "whoami":
		return a.Whoami(ctx)

	case "jobs":
		return a.Jobs(ctx, args)
	case "job":
		return one("job", a.Job)
	case "apply":
		return one("apply", a.Apply)
	case "board":
		return a.Board(ctx)
	case "withdraw":
		return one("withdraw", a.Withdraw)

	case "myjobs":
		return a.MyJobs(ctx, args)
	case "postjob":
		return a.PostJob(ctx)
	case "editjob":
		return one("editjob", a.EditJob)
	case "closejob":
		return one("closejob", a.CloseJob)
	case "deletejob":
		return one("deletejob", a.DeleteJob)
	case "applications":
		return one("applications", a.Applications)
	case "setstatus":
		if len(args) != 2 {
			return usage("setstatus <row|id> <status>")
		}
		return a.SetStatus(ctx, args[0], args[1])
	}

	fmt.Fprintln(out, "Unknown command:", cmd)
	return nil
}
