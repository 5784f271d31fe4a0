package services

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dmitrijs2005/jobboard/internal/client/apitest"
	"github.com/dmitrijs2005/jobboard/internal/client/client"
	"github.com/dmitrijs2005/jobboard/internal/client/models"
	"github.com/stretchr/testify/require"
)

const testPassword = "secret1"

func newBackend(t *testing.T) *apitest.Server {
	t.Helper()
	srv := apitest.New()
	t.Cleanup(srv.Close)
	return srv
}

func newHTTPClient(t *testing.T, srv *apitest.Server) *client.HTTPClient {
	t.Helper()
	c, err := client.NewHTTPClient(srv.APIURL(), 5*time.Second, nil)
	require.NoError(t, err)
	return c
}

func newStore(t *testing.T) *sql.DB {
	t.Helper()
	db, err := client.InitDatabase(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func login(t *testing.T, srv *apitest.Server, c client.Client, u models.User) models.User {
	t.Helper()
	u = srv.AddUser(u, testPassword)
	_, err := c.Login(context.Background(), models.LoginInput{Email: u.Email, Password: testPassword})
	require.NoError(t, err)
	return u
}

func candidate() models.User {
	return models.User{Name: "Asha Rao", Email: "asha@example.com", Role: models.RoleCandidate}
}

func employer() models.User {
	return models.User{Name: "Vikram Shah", Email: "vikram@acme.test", Role: models.RoleEmployer, Company: "Acme"}
}

// writePDF writes a small PDF and returns its path.
func writePDF(t *testing.T, name string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte("%PDF-1.4\n1 0 obj\n<<>>\nendobj\ntrailer\n<<>>\n%%EOF\n"), 0o600))
	return p
}
