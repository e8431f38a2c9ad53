// Package session holds the signed-in user's identity between page views.
package session

import (
	"context"
	"time"

	"github.com/GregMSThompson/bank-portal/internal/dto"
)

// Identity is what a successful login leaves behind: the id the banking
// API returned and the role the user signed in as.
type Identity struct {
	UserID    string    `firestore:"userId"`
	Role      dto.Role  `firestore:"role"`
	CreatedAt time.Time `firestore:"createdAt"`
}

func (i Identity) IsCustomer() bool { return i.Role == dto.RoleCustomer }
func (i Identity) IsEmployee() bool { return i.Role == dto.RoleEmployee }

// Store persists identities by session id. Get returns a NotFoundError when
// nothing is stored under the id.
type Store interface {
	Get(ctx context.Context, sessionID string) (Identity, error)
	Put(ctx context.Context, sessionID string, id Identity) error
	Delete(ctx context.Context, sessionID string) error
}

type ctxKey struct{}

// ToContext attaches the identity resolved for the current request.
func ToContext(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// FromContext returns the request's identity, if one was resolved.
func FromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(ctxKey{}).(Identity)
	return id, ok && id.UserID != ""
}
