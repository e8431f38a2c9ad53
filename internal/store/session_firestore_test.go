package store

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"cloud.google.com/go/firestore"

	"github.com/GregMSThompson/bank-portal/internal/crypto"
	"github.com/GregMSThompson/bank-portal/internal/dto"
	"github.com/GregMSThompson/bank-portal/internal/errs"
	"github.com/GregMSThompson/bank-portal/internal/session"
)

func TestFirestoreSessionStoreWithEmulator(t *testing.T) {
	if os.Getenv("FIRESTORE_EMULATOR_HOST") == "" {
		t.Skip("FIRESTORE_EMULATOR_HOST not set")
	}

	ctx := context.Background()
	client, err := firestore.NewClient(ctx, "test-project")
	if err != nil {
		t.Fatalf("firestore client error: %v", err)
	}
	defer client.Close()

	store := NewFirestoreSessionStore(client, crypto.NewPassthrough())
	created := time.Date(2025, time.January, 15, 10, 0, 0, 0, time.UTC)

	err = store.Put(ctx, "s1", session.Identity{UserID: "7", Role: dto.RoleCustomer, CreatedAt: created})
	if err != nil {
		t.Fatalf("put error: %v", err)
	}

	got, err := store.Get(ctx, "s1")
	if err != nil {
		t.Fatalf("get error: %v", err)
	}
	if got.UserID != "7" || got.Role != dto.RoleCustomer || !got.CreatedAt.Equal(created) {
		t.Fatalf("unexpected identity: %+v", got)
	}

	snap, err := client.Collection("sessions").Doc("s1").Get(ctx)
	if err != nil {
		t.Fatalf("raw read error: %v", err)
	}
	var doc sessionDoc
	if err := snap.DataTo(&doc); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if !doc.ExpiresAt.Equal(created.Add(SessionRetention)) {
		t.Fatalf("unexpected expiry: %v", doc.ExpiresAt)
	}

	if err := store.Delete(ctx, "s1"); err != nil {
		t.Fatalf("delete error: %v", err)
	}
	_, err = store.Get(ctx, "s1")
	var nf *errs.NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError after delete, got %v", err)
	}
}
