package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/jobboard/internal/client/models"
	"github.com/dmitrijs2005/jobboard/internal/common"
)

// getSimpleText, getPassword and getMultiline are indirections used to
// facilitate testing.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
	getMultiline  = GetMultiline
)

// errLoginRequired is returned by commands that need a session.
var errLoginRequired = common.NewValidationError("", "Please login first")

// Register prompts for the account fields and creates the account. The
// company is asked for employers only.
func (a *App) Register(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter full name", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	role, err := getSimpleText(a.reader, "I am a (candidate/employer)", a.out)
	if err != nil {
		return err
	}

	in := models.RegisterInput{
		Name:     name,
		Email:    email,
		Password: string(password),
		Role:     models.Role(strings.ToLower(role)),
	}
	if in.Role == models.RoleEmployer {
		if in.Company, err = getSimpleText(a.reader, "Enter company name", a.out); err != nil {
			return err
		}
	}

	u, err := a.authService.Register(ctx, in)
	if err != nil {
		return err
	}
	a.setUser(&u)
	a.printf("Registration successful! Welcome, %s\n", u.Name)
	return nil
}

// Login prompts for credentials and starts a session.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}

	u, err := a.authService.Login(ctx, email, string(password))
	if err != nil {
		return err
	}
	a.setUser(&u)
	a.printf("Login successful. Welcome, %s\n", u.Name)
	return nil
}

// Logout ends the session. Local state is cleared even if the API call
// fails.
func (a *App) Logout(ctx context.Context) error {
	a.closeTable()
	err := a.authService.Logout(ctx)
	a.setUser(nil)
	if err != nil {
		return err
	}
	a.printf("Logged out\n")
	return nil
}

// Whoami prints the current user as reported by the API.
func (a *App) Whoami(ctx context.Context) error {
	if !a.isLoggedIn() {
		return errLoginRequired
	}
	u, err := a.authService.CurrentUser(ctx)
	if err != nil {
		return err
	}
	a.setUser(&u)
	a.printf("%s <%s> %s", u.Name, u.Email, u.Role)
	if u.Company != "" {
		a.printf(" at %s", u.Company)
	}
	fmt.Fprintln(a.out)
	return nil
}

// requireRole returns the current user when it has role.
func (a *App) requireRole(role models.Role) (*models.User, error) {
	u := a.currentUser()
	if u == nil {
		return nil, errLoginRequired
	}
	if u.Role != role {
		return nil, common.NewValidationError("", fmt.Sprintf("This command is for %ss only", role))
	}
	return u, nil
}
