package mount

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/GregMSThompson/bank-portal/internal/errs"
	"github.com/GregMSThompson/bank-portal/internal/session"
	"github.com/GregMSThompson/bank-portal/pkg/logger"
)

type Registry struct {
	ttl time.Duration
	now func() time.Time

	mu    sync.Mutex
	views map[string]*View
}

// NewRegistry keeps views alive for ttl after their last lookup.
func NewRegistry(ttl time.Duration) *Registry {
	return &Registry{ttl: ttl, now: time.Now, views: map[string]*View{}}
}

// Mount registers a new view owned by the identity in ctx, if any. The
// view's context keeps the values of ctx (the request logger) but not its
// cancellation, since it outlives the request that created it.
func (r *Registry) Mount(ctx context.Context, page string, state any) *View {
	id := uuid.NewString()
	owner, _ := session.FromContext(ctx)
	vctx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	_, vctx = logger.With(vctx, "view_id", id, "page", page)

	v := &View{
		id:       id,
		page:     page,
		owner:    owner,
		ctx:      vctx,
		cancel:   cancel,
		state:    state,
		lastSeen: r.now(),
		navReady: make(chan struct{}),
	}
	if c, ok := state.(Closer); ok {
		v.closers = append(v.closers, c)
	}

	r.mu.Lock()
	r.views[id] = v
	r.mu.Unlock()

	logger.FromContext(vctx).Debug("view mounted")
	return v
}

// Lookup returns a live view and marks it as seen.
func (r *Registry) Lookup(id string) (*View, error) {
	v, err := r.get(id)
	if err != nil {
		return nil, err
	}
	v.touch(r.now())
	return v, nil
}

// LookupFor is Lookup for the identity in ctx. A view mounted by anyone
// else is reported as not found and left untouched.
func (r *Registry) LookupFor(ctx context.Context, id string) (*View, error) {
	v, err := r.get(id)
	if err != nil {
		return nil, err
	}
	who, _ := session.FromContext(ctx)
	if !v.OwnedBy(who) {
		logger.FromContext(ctx).Warn("view requested by another identity",
			"view_id", id, "owner", v.owner.UserID, "user_id", who.UserID)
		return nil, errs.NewNotFoundError("view not found")
	}
	v.touch(r.now())
	return v, nil
}

func (r *Registry) get(id string) (*View, error) {
	r.mu.Lock()
	v, ok := r.views[id]
	r.mu.Unlock()
	if !ok {
		return nil, errs.NewNotFoundError("view not found")
	}
	return v, nil
}

// Unmount tears a view down. It reports whether the view was live.
func (r *Registry) Unmount(id string) bool {
	r.mu.Lock()
	v, ok := r.views[id]
	delete(r.views, id)
	r.mu.Unlock()
	if !ok {
		return false
	}
	v.close()
	logger.FromContext(v.ctx).Debug("view unmounted")
	return true
}

// Sweep unmounts views idle for longer than the TTL and returns how many
// it removed.
func (r *Registry) Sweep() int {
	cutoff := r.now().Add(-r.ttl)

	r.mu.Lock()
	var stale []*View
	for id, v := range r.views {
		if v.idleSince().Before(cutoff) {
			stale = append(stale, v)
			delete(r.views, id)
		}
	}
	r.mu.Unlock()

	for _, v := range stale {
		v.close()
	}
	return len(stale)
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.views)
}

// Run sweeps on every tick until ctx is done, then unmounts everything.
func (r *Registry) Run(ctx context.Context, interval time.Duration) {
	log := logger.FromContext(ctx)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.mu.Lock()
			views := r.views
			r.views = map[string]*View{}
			r.mu.Unlock()
			for _, v := range views {
				v.close()
			}
			return
		case <-ticker.C:
			if n := r.Sweep(); n > 0 {
				log.Info("swept idle views", "count", n, "live", r.Len())
			}
		}
	}
}
