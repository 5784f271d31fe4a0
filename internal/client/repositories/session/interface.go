// Package session persists the authenticated session (cookies and the
// cached user profile) between CLI runs in the local SQLite store.
package session

import (
	"context"
)

// Well-known keys.
const (
	KeyCookies = "cookies"
	KeyUser    = "user"
)

// Repository is a key/value store scoped to one API origin.
// Get returns (nil, nil) when the key is absent.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) (map[string][]byte, error)
	Clear(ctx context.Context) error
}
