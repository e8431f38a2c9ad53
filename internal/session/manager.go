package session

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/GregMSThompson/bank-portal/internal/errs"
	"github.com/GregMSThompson/bank-portal/pkg/logger"
)

const CookieName = "bank_session"

type CookieOptions struct {
	Secure bool
	MaxAge time.Duration
}

// Manager is the only code path that writes identities. Everything else
// reads the identity the middleware resolved.
type Manager struct {
	store  Store
	cookie CookieOptions
	now    func() time.Time
}

func NewManager(store Store, cookie CookieOptions) *Manager {
	return &Manager{store: store, cookie: cookie, now: time.Now}
}

// Login stores the identity under a fresh session id and hands the id to
// the browser. Any previous session on the request is dropped first.
func (m *Manager) Login(ctx context.Context, w http.ResponseWriter, r *http.Request, id Identity) (Identity, error) {
	log := logger.FromContext(ctx)

	if err := m.drop(ctx, r); err != nil {
		log.Warn("failed to drop previous session", "error", err)
	}

	id.CreatedAt = m.now().UTC()
	sessionID := uuid.NewString()
	if err := m.store.Put(ctx, sessionID, id); err != nil {
		return Identity{}, err
	}
	http.SetCookie(w, m.newCookie(sessionID))
	log.Info("session started", "role", id.Role)
	return id, nil
}

// Logout removes the stored identity and expires the cookie.
func (m *Manager) Logout(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	err := m.drop(ctx, r)
	expired := m.newCookie("")
	expired.MaxAge = -1
	http.SetCookie(w, expired)
	return err
}

// Resolve returns the identity behind the request's session cookie. A
// missing cookie or unknown session yields an UnauthenticatedError.
func (m *Manager) Resolve(ctx context.Context, r *http.Request) (Identity, error) {
	c, err := r.Cookie(CookieName)
	if err != nil || c.Value == "" {
		return Identity{}, errs.NewUnauthenticatedError()
	}
	id, err := m.store.Get(ctx, c.Value)
	if err != nil {
		var nf *errs.NotFoundError
		if errors.As(err, &nf) {
			return Identity{}, errs.NewUnauthenticatedError()
		}
		return Identity{}, err
	}
	return id, nil
}

func (m *Manager) drop(ctx context.Context, r *http.Request) error {
	c, err := r.Cookie(CookieName)
	if err != nil || c.Value == "" {
		return nil
	}
	return m.store.Delete(ctx, c.Value)
}

func (m *Manager) newCookie(value string) *http.Cookie {
	c := &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   m.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	}
	if m.cookie.MaxAge > 0 {
		c.MaxAge = int(m.cookie.MaxAge.Seconds())
	}
	return c
}
