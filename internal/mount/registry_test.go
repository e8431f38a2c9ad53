package mount

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/GregMSThompson/bank-portal/internal/dto"
	"github.com/GregMSThompson/bank-portal/internal/errs"
	"github.com/GregMSThompson/bank-portal/internal/session"
	"github.com/GregMSThompson/bank-portal/pkg/helpers"
)

type closeCounter struct {
	n atomic.Int32
}

func (c *closeCounter) Close() { c.n.Add(1) }

func TestMountLookupUnmount(t *testing.T) {
	r := NewRegistry(time.Minute)
	state := &closeCounter{}
	v := r.Mount(helpers.TestCtx(), "accounts", state)

	got, err := r.Lookup(v.ID())
	if err != nil || got != v {
		t.Fatalf("lookup failed: %v", err)
	}
	if s, ok := StateOf[*closeCounter](got); !ok || s != state {
		t.Fatal("expected mounted state")
	}

	extra := &closeCounter{}
	v.OnClose(extra)

	if !r.Unmount(v.ID()) {
		t.Fatal("expected unmount to report a live view")
	}
	if state.n.Load() != 1 || extra.n.Load() != 1 {
		t.Fatalf("expected closers to run once, got %d %d", state.n.Load(), extra.n.Load())
	}
	if v.Context().Err() == nil {
		t.Fatal("expected view context to be cancelled")
	}
	if r.Unmount(v.ID()) {
		t.Fatal("second unmount should report false")
	}
	var nf *errs.NotFoundError
	if _, err := r.Lookup(v.ID()); !errors.As(err, &nf) {
		t.Fatalf("expected not found, got %v", err)
	}

	late := &closeCounter{}
	v.OnClose(late)
	if late.n.Load() != 1 {
		t.Fatal("closer registered after teardown should close at once")
	}
}

func TestViewContextOutlivesRequest(t *testing.T) {
	r := NewRegistry(time.Minute)
	reqCtx, cancel := context.WithCancel(helpers.TestCtx())
	v := r.Mount(reqCtx, "transfer", nil)
	cancel()
	if v.Context().Err() != nil {
		t.Fatal("view context must not end with the request")
	}
}

func TestNavigateFirstTargetWins(t *testing.T) {
	r := NewRegistry(time.Minute)
	v := r.Mount(helpers.TestCtx(), "addcustomer", nil)

	v.Navigate("/customers")
	v.Navigate("/elsewhere")

	select {
	case <-v.Navigation():
	default:
		t.Fatal("expected navigation to be ready")
	}
	if v.Target() != "/customers" {
		t.Fatalf("unexpected target %q", v.Target())
	}
}

func TestSweepRemovesIdleViews(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	r := NewRegistry(time.Minute)
	r.now = func() time.Time { return now }

	idle := r.Mount(helpers.TestCtx(), "accounts", &closeCounter{})
	active := r.Mount(helpers.TestCtx(), "branches", nil)

	now = now.Add(45 * time.Second)
	if _, err := r.Lookup(active.ID()); err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	now = now.Add(30 * time.Second)

	if n := r.Sweep(); n != 1 {
		t.Fatalf("expected 1 swept view, got %d", n)
	}
	if idle.Context().Err() == nil {
		t.Fatal("expected idle view to be torn down")
	}
	if r.Len() != 1 {
		t.Fatalf("expected 1 live view, got %d", r.Len())
	}
}

func TestRunUnmountsOnShutdown(t *testing.T) {
	r := NewRegistry(time.Minute)
	v := r.Mount(helpers.TestCtx(), "accounts", nil)

	ctx, cancel := context.WithCancel(helpers.TestCtx())
	done := make(chan struct{})
	go func() {
		r.Run(ctx, time.Hour)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return")
	}
	if v.Context().Err() == nil || r.Len() != 0 {
		t.Fatal("expected all views to be unmounted")
	}
}

func TestLookupForChecksOwner(t *testing.T) {
	r := NewRegistry(time.Minute)
	owner := session.Identity{UserID: "5", Role: dto.RoleCustomer}
	v := r.Mount(session.ToContext(helpers.TestCtx(), owner), "transfer", nil)

	if got := v.Owner(); got.UserID != "5" {
		t.Fatalf("expected owner 5, got %+v", got)
	}
	if _, err := r.LookupFor(session.ToContext(helpers.TestCtx(), owner), v.ID()); err != nil {
		t.Fatalf("expected owner lookup to succeed: %v", err)
	}

	var nf *errs.NotFoundError
	other := session.Identity{UserID: "9", Role: dto.RoleCustomer}
	if _, err := r.LookupFor(session.ToContext(helpers.TestCtx(), other), v.ID()); !errors.As(err, &nf) {
		t.Fatalf("expected not found for another customer, got %v", err)
	}
	if _, err := r.LookupFor(helpers.TestCtx(), v.ID()); !errors.As(err, &nf) {
		t.Fatalf("expected not found when signed out, got %v", err)
	}
	if r.Len() != 1 {
		t.Fatal("refused lookups must not tear the view down")
	}

	anon := r.Mount(helpers.TestCtx(), "accounts", nil)
	if _, err := r.LookupFor(helpers.TestCtx(), anon.ID()); err != nil {
		t.Fatalf("expected anonymous view to be visible anonymously: %v", err)
	}
}
