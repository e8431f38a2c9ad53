package store

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/GregMSThompson/bank-portal/internal/crypto"
	"github.com/GregMSThompson/bank-portal/internal/dto"
	"github.com/GregMSThompson/bank-portal/internal/errs"
	"github.com/GregMSThompson/bank-portal/internal/session"
)

// SessionRetention is how long a session document lives. Firestore's TTL
// policy on expiresAt removes it afterwards.
const SessionRetention = 7 * 24 * time.Hour

// sessionDoc is the persisted form. The user id is sealed so the banking
// identifiers never sit in Firestore in clear text.
type sessionDoc struct {
	SealedUserID string    `firestore:"sealedUserId"`
	Role         string    `firestore:"role"`
	CreatedAt    time.Time `firestore:"createdAt"`
	ExpiresAt    time.Time `firestore:"expiresAt"`
}

type firestoreSessionStore struct {
	client *firestore.Client
	sealer crypto.Sealer
}

func NewFirestoreSessionStore(client *firestore.Client, sealer crypto.Sealer) *firestoreSessionStore {
	return &firestoreSessionStore{client: client, sealer: sealer}
}

func (s *firestoreSessionStore) collection() *firestore.CollectionRef {
	return s.client.Collection("sessions")
}

func (s *firestoreSessionStore) Get(ctx context.Context, sessionID string) (session.Identity, error) {
	snap, err := s.collection().Doc(sessionID).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return session.Identity{}, errs.NewNotFoundError("session not found")
	}
	if err != nil {
		return session.Identity{}, errs.NewDatabaseError("read", "failed to read session", err)
	}

	var doc sessionDoc
	if err := snap.DataTo(&doc); err != nil {
		return session.Identity{}, errs.NewDatabaseError("read", "failed to parse session data", err)
	}
	userID, err := s.sealer.Open(ctx, doc.SealedUserID)
	if err != nil {
		return session.Identity{}, errs.NewDatabaseError("read", "failed to open session identity", err)
	}
	return session.Identity{UserID: userID, Role: dto.Role(doc.Role), CreatedAt: doc.CreatedAt}, nil
}

func (s *firestoreSessionStore) Put(ctx context.Context, sessionID string, id session.Identity) error {
	sealed, err := s.sealer.Seal(ctx, id.UserID)
	if err != nil {
		return errs.NewDatabaseError("create", "failed to seal session identity", err)
	}
	if id.CreatedAt.IsZero() {
		id.CreatedAt = time.Now()
	}
	_, err = s.collection().Doc(sessionID).Set(ctx, sessionDoc{
		SealedUserID: sealed,
		Role:         string(id.Role),
		CreatedAt:    id.CreatedAt,
		ExpiresAt:    id.CreatedAt.Add(SessionRetention),
	})
	if err != nil {
		return errs.NewDatabaseError("create", "failed to save session", err)
	}
	return nil
}

func (s *firestoreSessionStore) Delete(ctx context.Context, sessionID string) error {
	_, err := s.collection().Doc(sessionID).Delete(ctx)
	if err != nil && status.Code(err) != codes.NotFound {
		return errs.NewDatabaseError("delete", "failed to delete session", err)
	}
	return nil
}
