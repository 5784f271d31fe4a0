package session

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

const origin = "http://localhost:5000/api"

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE session (
  key        TEXT PRIMARY KEY,
  value      BLOB NOT NULL,
  updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
  origin     TEXT NOT NULL DEFAULT ''
);`)
	require.NoError(t, err)
	return db
}

func TestSetAndGet_InsertThenGet(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t), origin)
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, KeyCookies, []byte(`[{"name":"token"}]`)))

	v, err := r.Get(ctx, KeyCookies)
	require.NoError(t, err)
	require.Equal(t, []byte(`[{"name":"token"}]`), v)
}

func TestGet_NotExists_ReturnsNilNil(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t), origin)

	v, err := r.Get(context.Background(), "absent")
	require.NoError(t, err)
	require.Nil(t, v)
}

func TestSet_UpsertOverwritesValue(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t), origin)
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, KeyUser, []byte("old")))
	require.NoError(t, r.Set(ctx, KeyUser, []byte("new")))

	v, err := r.Get(ctx, KeyUser)
	require.NoError(t, err)
	require.Equal(t, []byte("new"), v)
}

func TestGet_OtherOriginIsInvisible(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	require.NoError(t, NewSQLiteRepository(db, "https://staging.example.com/api").Set(ctx, KeyUser, []byte("u")))

	r := NewSQLiteRepository(db, origin)
	v, err := r.Get(ctx, KeyUser)
	require.NoError(t, err)
	assert.Nil(t, v)

	all, err := r.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestDeleteListClear(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t), origin)
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, KeyCookies, []byte("c")))
	require.NoError(t, r.Set(ctx, KeyUser, []byte("u")))

	all, err := r.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string][]byte{KeyCookies: []byte("c"), KeyUser: []byte("u")}, all)

	require.NoError(t, r.Delete(ctx, KeyCookies))
	v, err := r.Get(ctx, KeyCookies)
	require.NoError(t, err)
	assert.Nil(t, v)

	require.NoError(t, r.Clear(ctx))
	all, err = r.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestGet_QueryErrorIsWrapped(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT value FROM session`).
		WithArgs(KeyUser, origin).
		WillReturnError(errors.New("database is locked"))

	_, err = NewSQLiteRepository(db, origin).Get(context.Background(), KeyUser)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to get session[user]")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSet_ExecErrorIsWrapped(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`INSERT INTO session`).WillReturnError(errors.New("readonly database"))

	err = NewSQLiteRepository(db, origin).Set(context.Background(), KeyUser, []byte("x"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to set session[user]")
	require.NoError(t, mock.ExpectationsWereMet())
}
