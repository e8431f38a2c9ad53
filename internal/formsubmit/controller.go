// Package formsubmit implements the validate, submit, then navigate or
// report state machine shared by mutating pages.
package formsubmit

import (
	"context"
	"sync"
	"time"

	"github.com/GregMSThompson/bank-portal/internal/errs"
	"github.com/GregMSThompson/bank-portal/pkg/logger"
)

// DefaultDelay is the grace period between a success message and the
// follow-up navigation.
const DefaultDelay = 2 * time.Second

// Navigator moves the owning view to another page.
type Navigator interface {
	Navigate(target string)
}

type NavigatorFunc func(target string)

func (f NavigatorFunc) Navigate(target string) { f(target) }

type Phase int

const (
	PhaseIdle Phase = iota
	PhaseSubmitting
	PhaseSucceeded
	PhaseFailed
)

// State is a snapshot for rendering. Message is the success text in
// PhaseSucceeded and the error text in PhaseFailed.
type State struct {
	Phase      Phase
	Message    string
	Draft      Draft
	NavigateTo string
}

func (s State) Submitting() bool { return s.Phase == PhaseSubmitting }
func (s State) Succeeded() bool  { return s.Phase == PhaseSucceeded }
func (s State) Failed() bool     { return s.Phase == PhaseFailed }

// Config wires one page's form. P is the request payload, R the decoded
// response.
type Config[P, R any] struct {
	Schema Schema
	// Build assembles the payload from validated values.
	Build func(Values) (P, error)
	// Submit performs the single write.
	Submit func(ctx context.Context, payload P) (R, error)
	// Success renders the success message from the response.
	Success func(R) string
	// After runs once a write succeeded, before the state is returned.
	After func(ctx context.Context, result R)
	// Fallback is the page's generic failure message.
	Fallback string
	// RejectedFallback replaces Fallback when the API answered but refused
	// the write without saying why. Empty means Fallback.
	RejectedFallback string
	// NavigateTo is the follow-up page; empty keeps the user on the form.
	NavigateTo string
	Delay      time.Duration
	Navigator  Navigator
}

type Controller[P, R any] struct {
	cfg Config[P, R]

	mu     sync.Mutex
	phase  Phase
	msg    string
	draft  Draft
	task   *Task
	closed bool
}

func New[P, R any](cfg Config[P, R]) *Controller[P, R] {
	if cfg.Delay <= 0 {
		cfg.Delay = DefaultDelay
	}
	return &Controller[P, R]{cfg: cfg, draft: Draft{}}
}

// Submit validates and writes the draft. Validation failures never reach
// the network. Only one write may be in flight; a success that scheduled a
// navigation also locks the form.
func (c *Controller[P, R]) Submit(ctx context.Context, draft Draft) (State, error) {
	log := logger.FromContext(ctx)

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return c.State(), errs.NewConflictError("form is closed")
	}
	if c.phase == PhaseSubmitting || c.task.Pending() {
		c.mu.Unlock()
		return c.State(), errs.NewConflictError("submission already in progress")
	}
	c.draft = draft.Clone()
	c.msg = ""

	vals, err := c.cfg.Schema.Validate(c.draft)
	if err != nil {
		c.fail(err)
		c.mu.Unlock()
		log.Debug("form validation failed", "error", err)
		return c.State(), err
	}
	payload, err := c.cfg.Build(vals)
	if err != nil {
		c.fail(err)
		c.mu.Unlock()
		log.Debug("form payload rejected", "error", err)
		return c.State(), err
	}
	c.phase = PhaseSubmitting
	c.mu.Unlock()

	result, err := c.cfg.Submit(ctx, payload)
	if err != nil {
		c.mu.Lock()
		c.fail(err)
		c.mu.Unlock()
		log.Warn("form submission failed", "error", err)
		return c.State(), err
	}

	if c.cfg.After != nil {
		c.cfg.After(ctx, result)
	}

	c.mu.Lock()
	c.phase = PhaseSucceeded
	if c.cfg.Success != nil {
		c.msg = c.cfg.Success(result)
	}
	c.draft = Draft{}
	if c.cfg.NavigateTo != "" && c.cfg.Navigator != nil && !c.closed {
		target, nav := c.cfg.NavigateTo, c.cfg.Navigator
		c.task = Schedule(c.cfg.Delay, func() { nav.Navigate(target) })
	}
	c.mu.Unlock()
	log.Info("form submitted")
	return c.State(), nil
}

// fail must be called with mu held. The draft stays as submitted.
func (c *Controller[P, R]) fail(err error) {
	c.phase = PhaseFailed
	fallback := c.cfg.Fallback
	if c.cfg.RejectedFallback != "" && errs.IsRejected(err) {
		fallback = c.cfg.RejectedFallback
	}
	c.msg = errs.Display(err, fallback)
}

func (c *Controller[P, R]) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := State{Phase: c.phase, Message: c.msg, Draft: c.draft.Clone()}
	if c.task.Pending() || c.task.Fired() {
		s.NavigateTo = c.cfg.NavigateTo
	}
	return s
}

// Close tears the form down, cancelling a navigation that has not fired.
func (c *Controller[P, R]) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	if c.task.Cancel() {
		c.task = nil
	}
}
