// Package views renders the job board screens as text and owns their
// lifecycle: each view holds a context that Close cancels, results that
// arrive after Close are dropped, and a view refuses a second request
// while one is in flight.
package views

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/dmitrijs2005/jobboard/internal/common"
)

// ErrClosed is returned by operations on a view after Close.
var ErrClosed = errors.New("view closed")

// LoadingText is shown while a view has no data and a request is running.
const LoadingText = "Loading..."

type lifecycle struct {
	ctx    context.Context
	cancel context.CancelFunc

	mu   sync.Mutex
	busy bool
}

func newLifecycle(parent context.Context) *lifecycle {
	ctx, cancel := context.WithCancel(parent)
	return &lifecycle{ctx: ctx, cancel: cancel}
}

// Close cancels the view's in-flight requests. It is safe to call twice.
func (l *lifecycle) Close() {
	l.cancel()
}

// Loading reports whether a request of the view is in flight.
func (l *lifecycle) Loading() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.busy
}

// run executes fn with the view context. A call made while another is
// running returns common.ErrBusy without calling fn.
func (l *lifecycle) run(fn func(ctx context.Context) error) error {
	l.mu.Lock()
	if l.ctx.Err() != nil {
		l.mu.Unlock()
		return ErrClosed
	}
	if l.busy {
		l.mu.Unlock()
		return common.ErrBusy
	}
	l.busy = true
	l.mu.Unlock()

	defer func() {
		l.mu.Lock()
		l.busy = false
		l.mu.Unlock()
	}()

	err := fn(l.ctx)
	if err != nil && l.ctx.Err() != nil {
		return ErrClosed
	}
	return err
}

// commit applies fn to the view state unless the view was closed.
func (l *lifecycle) commit(fn func()) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.ctx.Err() != nil {
		return ErrClosed
	}
	fn()
	return nil
}

// read runs fn under the state lock.
func (l *lifecycle) read(fn func()) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fn()
}

func renderLoading(w io.Writer) error {
	_, err := fmt.Fprintln(w, LoadingText)
	return err
}
