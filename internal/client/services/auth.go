// Package services contains the application services of the jobboard CLI.
// This file defines the authentication service: register, login, logout,
// the current-user lookup and persistence of the session between runs.
package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/dmitrijs2005/jobboard/internal/client/client"
	"github.com/dmitrijs2005/jobboard/internal/client/models"
	"github.com/dmitrijs2005/jobboard/internal/client/repositories/session"
	"github.com/dmitrijs2005/jobboard/internal/client/validate"
	"github.com/dmitrijs2005/jobboard/internal/common"
	"github.com/dmitrijs2005/jobboard/internal/dbx"
)

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - Register / Login: validate locally, call the API and persist the
//     session cookie and user.
//   - Logout: always forgets the local session, even when the API call fails.
//   - CurrentUser: cached per client; an auth failure clears the session.
//   - RestoreSession: load a session saved by a previous run. Expired
//     session tokens are dropped without contacting the API.
type AuthService interface {
	Register(ctx context.Context, in models.RegisterInput) (models.User, error)
	Login(ctx context.Context, email, password string) (models.User, error)
	Logout(ctx context.Context) error
	CurrentUser(ctx context.Context) (models.User, error)
	RestoreSession(ctx context.Context) (models.User, bool, error)
	ClearSession(ctx context.Context) error
}

type authService struct {
	client client.Client
	db     *sql.DB
	origin string
	now    func() time.Time
}

// NewAuthService constructs an AuthService bound to the API client and the
// local session store. origin scopes stored sessions to one API.
func NewAuthService(c client.Client, db *sql.DB, origin string) AuthService {
	return &authService{client: c, db: db, origin: origin, now: time.Now}
}

type storedCookie struct {
	Name    string    `json:"name"`
	Value   string    `json:"value"`
	Expires time.Time `json:"expires,omitempty"`
}

func (a *authService) repo(db dbx.DBTX) session.Repository {
	return session.NewSQLiteRepository(db, a.origin)
}

func (a *authService) Register(ctx context.Context, in models.RegisterInput) (models.User, error) {
	if in.Role != models.RoleEmployer {
		in.Company = ""
	}
	if err := validate.Register(in); err != nil {
		return models.User{}, err
	}

	u, err := a.client.Register(ctx, in)
	if err != nil {
		return models.User{}, fmt.Errorf("register: %w", err)
	}
	if err := a.saveSession(ctx, u); err != nil {
		return models.User{}, fmt.Errorf("session saving error: %w", err)
	}
	return u, nil
}

func (a *authService) Login(ctx context.Context, email, password string) (models.User, error) {
	in := models.LoginInput{Email: email, Password: password}
	if err := validate.Login(in); err != nil {
		return models.User{}, err
	}

	u, err := a.client.Login(ctx, in)
	if err != nil {
		return models.User{}, fmt.Errorf("login: %w", err)
	}
	if err := a.saveSession(ctx, u); err != nil {
		return models.User{}, fmt.Errorf("session saving error: %w", err)
	}
	return u, nil
}

// saveSession persists the session cookies and the user in one transaction.
func (a *authService) saveSession(ctx context.Context, u models.User) error {
	cookies := a.client.SessionCookies()
	stored := make([]storedCookie, 0, len(cookies))
	for _, c := range cookies {
		stored = append(stored, storedCookie{Name: c.Name, Value: c.Value, Expires: c.Expires})
	}
	rawCookies, err := json.Marshal(stored)
	if err != nil {
		return err
	}
	rawUser, err := json.Marshal(u)
	if err != nil {
		return err
	}

	return dbx.WithTx(ctx, a.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := a.repo(tx)
		if err := repo.Set(ctx, session.KeyCookies, rawCookies); err != nil {
			return err
		}
		return repo.Set(ctx, session.KeyUser, rawUser)
	})
}

func (a *authService) Logout(ctx context.Context) error {
	err := a.client.Logout(ctx)
	if cerr := a.ClearSession(ctx); cerr != nil {
		return errors.Join(err, cerr)
	}
	if err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

func (a *authService) CurrentUser(ctx context.Context) (models.User, error) {
	u, err := a.client.Me(ctx)
	if err != nil {
		if errors.Is(err, common.ErrAuth) {
			_ = a.ClearSession(ctx)
		}
		return models.User{}, err
	}
	return u, nil
}

func (a *authService) RestoreSession(ctx context.Context) (models.User, bool, error) {
	repo := a.repo(a.db)

	rawCookies, err := repo.Get(ctx, session.KeyCookies)
	if err != nil {
		return models.User{}, false, err
	}
	rawUser, err := repo.Get(ctx, session.KeyUser)
	if err != nil {
		return models.User{}, false, err
	}
	if rawCookies == nil || rawUser == nil {
		return models.User{}, false, nil
	}

	var stored []storedCookie
	var u models.User
	if err := json.Unmarshal(rawCookies, &stored); err != nil {
		return models.User{}, false, a.discard(ctx, fmt.Errorf("decode stored cookies: %w", err))
	}
	if err := json.Unmarshal(rawUser, &u); err != nil {
		return models.User{}, false, a.discard(ctx, fmt.Errorf("decode stored user: %w", err))
	}

	now := a.now()
	cookies := make([]*http.Cookie, 0, len(stored))
	for _, c := range stored {
		if !c.Expires.IsZero() && !now.Before(c.Expires) {
			continue
		}
		if session.Expired(c.Value, now) {
			continue
		}
		cookies = append(cookies, &http.Cookie{Name: c.Name, Value: c.Value, Expires: c.Expires})
	}
	if len(cookies) == 0 {
		return models.User{}, false, a.ClearSession(ctx)
	}

	a.client.RestoreSession(cookies)
	a.client.Coordinator().SetUser(u)
	return u, true, nil
}

// discard clears a corrupt stored session and reports cause.
func (a *authService) discard(ctx context.Context, cause error) error {
	if err := a.ClearSession(ctx); err != nil {
		return errors.Join(cause, err)
	}
	return cause
}

func (a *authService) ClearSession(ctx context.Context) error {
	return a.repo(a.db).Clear(ctx)
}
