package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/GregMSThompson/bank-portal/internal/errs"
	"github.com/GregMSThompson/bank-portal/internal/session"
	"github.com/GregMSThompson/bank-portal/pkg/logger"
)

type Resolver interface {
	Resolve(ctx context.Context, r *http.Request) (session.Identity, error)
}

type sessionMiddleware struct {
	resolver Resolver
}

func NewSessionMiddleware(resolver Resolver) *sessionMiddleware {
	return &sessionMiddleware{resolver: resolver}
}

// Session attaches the signed-in identity, if any, to the request context.
// Requests without a valid session pass through anonymously, as do requests
// whose session could not be read; the latter are logged.
func (m *sessionMiddleware) Session(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := m.resolver.Resolve(r.Context(), r)
		if err != nil {
			var unauth *errs.UnauthenticatedError
			if !errors.As(err, &unauth) {
				logger.FromContext(r.Context()).Warn("failed to resolve session", "error", err)
			}
			next.ServeHTTP(w, r)
			return
		}

		ctx := session.ToContext(r.Context(), id)
		log := logger.FromContext(ctx).With("user_id", id.UserID, "role", id.Role)
		ctx = logger.ToContext(ctx, log)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireCustomer sends anyone who is not a signed-in customer to the
// login page.
func RequireCustomer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := session.FromContext(r.Context())
		if !ok || !id.IsCustomer() {
			redirectToLogin(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func redirectToLogin(w http.ResponseWriter, r *http.Request) {
	if r.Header.Get("HX-Request") == "true" {
		w.Header().Set("HX-Redirect", "/login")
		w.WriteHeader(http.StatusNoContent)
		return
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
