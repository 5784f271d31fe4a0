package client

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/jobboard/internal/client/models"
	"golang.org/x/sync/singleflight"
)

type inflight struct {
	id     uint64
	cancel context.CancelCauseFunc
}

// Coordinator tracks the requests of one HTTPClient. Identical requests
// (same method and URL) never run concurrently: starting one cancels the
// previous with ErrSuperseded. It also caches the current user.
//
// A Coordinator is safe for concurrent use.
type Coordinator struct {
	mu       sync.Mutex
	seq      uint64
	requests map[string]inflight

	users singleflight.Group
	user  *models.User
	// gen changes on every reset so that a lookup started before a logout
	// cannot repopulate the cache afterwards.
	gen uint64
}

func NewCoordinator() *Coordinator {
	return &Coordinator{requests: make(map[string]inflight)}
}

// Begin registers a request under key and returns its context. done must
// be called once the response has been consumed.
func (c *Coordinator) Begin(ctx context.Context, key string) (context.Context, func()) {
	rctx, cancel := context.WithCancelCause(ctx)

	c.mu.Lock()
	if prev, ok := c.requests[key]; ok {
		prev.cancel(ErrSuperseded)
	}
	c.seq++
	id := c.seq
	c.requests[key] = inflight{id: id, cancel: cancel}
	c.mu.Unlock()

	return rctx, func() {
		c.mu.Lock()
		if cur, ok := c.requests[key]; ok && cur.id == id {
			delete(c.requests, key)
		}
		c.mu.Unlock()
		cancel(nil)
	}
}

// InFlight returns the number of registered requests.
func (c *Coordinator) InFlight() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.requests)
}

// CurrentUser returns the cached user or loads it with fetch. Concurrent
// callers share one fetch. Failed lookups are not cached.
func (c *Coordinator) CurrentUser(ctx context.Context, fetch func(context.Context) (models.User, error)) (models.User, error) {
	c.mu.Lock()
	if c.user != nil {
		u := *c.user
		c.mu.Unlock()
		return u, nil
	}
	gen := c.gen
	c.mu.Unlock()

	ch := c.users.DoChan("me", func() (any, error) {
		u, err := fetch(context.WithoutCancel(ctx))
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		if c.gen == gen {
			c.user = &u
		}
		c.mu.Unlock()
		return u, nil
	})

	select {
	case <-ctx.Done():
		return models.User{}, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return models.User{}, res.Err
		}
		return res.Val.(models.User), nil
	}
}

// SetUser caches u, e.g. after a login.
func (c *Coordinator) SetUser(u models.User) {
	c.mu.Lock()
	c.user = &u
	c.mu.Unlock()
}

// User returns the cached user without fetching.
func (c *Coordinator) User() (models.User, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.user == nil {
		return models.User{}, false
	}
	return *c.user, true
}

// ForgetUser drops the cached user.
func (c *Coordinator) ForgetUser() {
	c.mu.Lock()
	c.user = nil
	c.gen++
	c.mu.Unlock()
	c.users.Forget("me")
}

// Reset cancels every in-flight request and drops the cached user.
func (c *Coordinator) Reset() {
	c.mu.Lock()
	for k, r := range c.requests {
		r.cancel(context.Canceled)
		delete(c.requests, k)
	}
	c.user = nil
	c.gen++
	c.mu.Unlock()
	c.users.Forget("me")
}
