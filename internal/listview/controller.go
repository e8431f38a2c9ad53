// Package listview implements the fetch, filter, sort and render state
// machine shared by directory-style pages.
package listview

import (
	"context"
	"slices"
	"sync"

	"github.com/GregMSThompson/bank-portal/internal/errs"
	"github.com/GregMSThompson/bank-portal/pkg/logger"
)

// Loader performs the single read a mount is allowed.
type Loader[T any] func(ctx context.Context) ([]T, error)

type phase int

const (
	phaseLoading phase = iota
	phaseError
	phaseReady
)

// Controller holds one mount's collection. Reads happen only in Mount and
// Refresh; Status never touches the network.
type Controller[T any] struct {
	spec     Spec[T]
	load     Loader[T]
	fallback string

	mu      sync.Mutex
	phase   phase
	items   []T
	errMsg  string
	mounted bool
	closed  bool
	done    chan struct{}
	cancel  context.CancelFunc
}

// New builds a controller; fallback is the page's generic load error
// message.
func New[T any](spec Spec[T], load Loader[T], fallback string) *Controller[T] {
	return &Controller[T]{
		spec:     spec,
		load:     load,
		fallback: fallback,
		phase:    phaseLoading,
		done:     make(chan struct{}),
	}
}

// Mount issues the mount's one read and blocks until it finishes. A second
// call returns a ConflictError without touching the network.
func (c *Controller[T]) Mount(ctx context.Context) error {
	c.mu.Lock()
	if c.mounted || c.closed {
		c.mu.Unlock()
		return errs.NewConflictError("list already mounted")
	}
	c.mounted = true
	ctx, c.cancel = context.WithCancel(ctx)
	done := c.done
	c.mu.Unlock()

	return c.run(ctx, done)
}

// Refresh re-reads the collection. It is only allowed once the previous
// read succeeded; the error state is terminal for the mount.
func (c *Controller[T]) Refresh(ctx context.Context) error {
	c.mu.Lock()
	if !c.mounted || c.closed || c.phase != phaseReady {
		c.mu.Unlock()
		return errs.NewConflictError("list is not ready")
	}
	c.phase = phaseLoading
	c.done = make(chan struct{})
	if c.cancel != nil {
		c.cancel()
	}
	ctx, c.cancel = context.WithCancel(ctx)
	done := c.done
	c.mu.Unlock()

	return c.run(ctx, done)
}

func (c *Controller[T]) run(ctx context.Context, done chan struct{}) error {
	defer close(done)
	log := logger.FromContext(ctx)

	items, err := c.load(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.phase = phaseError
		c.errMsg = errs.Display(err, c.fallback)
		c.items = nil
		log.Warn("list load failed", "error", err)
		return err
	}
	c.phase = phaseReady
	c.items = items
	c.errMsg = ""
	log.Debug("list loaded", "count", len(items))
	return nil
}

// Wait blocks until the current read finishes or ctx is done.
func (c *Controller[T]) Wait(ctx context.Context) error {
	c.mu.Lock()
	done := c.done
	c.mu.Unlock()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Status projects the held collection through q.
func (c *Controller[T]) Status(q Query) Status[T] {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.phase {
	case phaseLoading:
		return Status[T]{Kind: KindLoading, Query: q}
	case phaseError:
		return Status[T]{Kind: KindError, Message: c.errMsg, Query: q}
	}

	items := c.spec.Project(c.items, q)
	if len(items) == 0 {
		return Status[T]{Kind: KindEmpty, Message: c.spec.emptyMessage(q, len(c.items)), Query: q, Total: len(c.items)}
	}
	return Status[T]{Kind: KindReady, Items: items, Query: q, Total: len(c.items)}
}

// Items returns a copy of the full collection, or nil unless ready.
func (c *Controller[T]) Items() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.phase != phaseReady {
		return nil
	}
	return slices.Clone(c.items)
}

// Close tears the mount down, cancelling a read still in flight.
func (c *Controller[T]) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	if c.cancel != nil {
		c.cancel()
	}
}
