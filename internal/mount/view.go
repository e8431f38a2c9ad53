// Package mount tracks the page views a browser currently has open. A view
// owns the controllers of one page and a context that ends when the view
// is torn down.
package mount

import (
	"context"
	"sync"
	"time"

	"github.com/GregMSThompson/bank-portal/internal/session"
)

// Closer is anything a view tears down with it.
type Closer interface {
	Close()
}

type View struct {
	id    string
	page  string
	owner session.Identity

	ctx    context.Context
	cancel context.CancelFunc

	mu       sync.Mutex
	state    any
	closers  []Closer
	lastSeen time.Time
	target   string
	navReady chan struct{}
	navOnce  sync.Once
	closed   bool
}

func (v *View) ID() string   { return v.id }
func (v *View) Page() string { return v.page }

// Owner is the identity that mounted the view. Anonymous views have a zero
// owner.
func (v *View) Owner() session.Identity { return v.owner }

// OwnedBy reports whether id is the identity the view was mounted for.
func (v *View) OwnedBy(id session.Identity) bool {
	return v.owner.UserID == id.UserID && v.owner.Role == id.Role
}

// Context is cancelled when the view is unmounted.
func (v *View) Context() context.Context { return v.ctx }

// State returns the page-specific value the view was mounted with.
func (v *View) State() any {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state
}

// StateOf returns the view's state as T.
func StateOf[T any](v *View) (T, bool) {
	s, ok := v.State().(T)
	return s, ok
}

// OnClose registers c to be closed on teardown. Registering on a closed
// view closes c immediately.
func (v *View) OnClose(c Closer) {
	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		c.Close()
		return
	}
	v.closers = append(v.closers, c)
	v.mu.Unlock()
}

// Navigate records the page the view should move to. Only the first call
// counts.
func (v *View) Navigate(target string) {
	v.navOnce.Do(func() {
		v.mu.Lock()
		v.target = target
		v.mu.Unlock()
		close(v.navReady)
	})
}

// Navigation is closed once a target is set.
func (v *View) Navigation() <-chan struct{} { return v.navReady }

func (v *View) Target() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.target
}

func (v *View) touch(now time.Time) {
	v.mu.Lock()
	v.lastSeen = now
	v.mu.Unlock()
}

func (v *View) idleSince() time.Time {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.lastSeen
}

func (v *View) close() {
	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return
	}
	v.closed = true
	closers := v.closers
	v.closers = nil
	v.mu.Unlock()

	v.cancel()
	for i := len(closers) - 1; i >= 0; i-- {
		closers[i].Close()
	}
}
