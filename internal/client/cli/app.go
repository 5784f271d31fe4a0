package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/jobboard/internal/client/client"
	"github.com/dmitrijs2005/jobboard/internal/client/config"
	"github.com/dmitrijs2005/jobboard/internal/client/models"
	"github.com/dmitrijs2005/jobboard/internal/client/services"
	"github.com/dmitrijs2005/jobboard/internal/client/views"
	"github.com/dmitrijs2005/jobboard/internal/logging"
	"golang.org/x/term"
)

// uploadTimeout bounds one resume upload to object storage.
const uploadTimeout = 2 * time.Minute

type App struct {
	config      *config.Config
	log         logging.Logger
	db          *sql.DB
	authService services.AuthService
	jobService  services.JobService
	appService  services.ApplicationService
	uploader    services.Uploader
	policy      models.TransitionPolicy

	reader *bufio.Reader
	out    io.Writer
	color  bool
	now    func() time.Time

	mu    sync.Mutex
	user  *models.User
	table *views.TableView
}

// NewApp opens the session store, builds the API client and services and
// wires the logout-on-401 hook.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	db, err := client.InitDatabase(ctx, c.SessionDB)
	if err != nil {
		return nil, fmt.Errorf("error initializing database: %w", err)
	}

	api, err := client.NewHTTPClient(c.APIBaseURL, c.RequestTimeout, log)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	a := &App{
		config:      c,
		log:         log,
		db:          db,
		authService: services.NewAuthService(api, db, api.BaseURL()),
		jobService:  services.NewJobService(api),
		appService:  services.NewApplicationService(api, c.Policy(), c.PageSize),
		uploader:    services.NewUploadService(api, &http.Client{Timeout: uploadTimeout}, c.UploadBaseURL),
		policy:      c.Policy(),
		reader:      bufio.NewReader(os.Stdin),
		out:         os.Stdout,
		color:       term.IsTerminal(int(os.Stdout.Fd())),
		now:         time.Now,
	}

	api.OnUnauthorized(func() {
		a.setUser(nil)
		if err := a.authService.ClearSession(context.Background()); err != nil {
			log.Warn(context.Background(), "clear session", "err", err)
		}
	})

	return a, nil
}

// Run restores a saved session and runs the REPL until the user exits or
// input ends.
func (a *App) Run(ctx context.Context) error {
	defer a.close()

	fmt.Fprintln(a.out, "Welcome to the job board CLI (type 'help' for commands)")

	u, ok, err := a.authService.RestoreSession(ctx)
	if err != nil {
		a.log.Warn(ctx, "restore session", "err", err)
	}
	if ok {
		a.setUser(&u)
		fmt.Fprintf(a.out, "Welcome back, %s\n", u.Name)
	}

	runREPL(ctx, a, a.status, a.reader, a.out)
	return nil
}

func (a *App) close() {
	a.closeTable()
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.log.Warn(context.Background(), "close session store", "err", err)
		}
	}
}

func (a *App) setUser(u *models.User) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.user = u
}

func (a *App) currentUser() *models.User {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.user
}

func (a *App) isLoggedIn() bool {
	return a.currentUser() != nil
}

// openTable replaces the current employer table, closing the previous one.
func (a *App) openTable(v *views.TableView) {
	a.mu.Lock()
	prev := a.table
	a.table = v
	a.mu.Unlock()
	if prev != nil {
		prev.Close()
	}
}

func (a *App) closeTable() {
	a.openTable(nil)
}

func (a *App) currentTable() *views.TableView {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.table
}

func (a *App) status() string {
	u := a.currentUser()
	if u == nil {
		return ""
	}
	return fmt.Sprintf("(%s %s)", u.Name, u.Role)
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}
