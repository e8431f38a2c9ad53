package bootstrap

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	gcpkms "cloud.google.com/go/kms/apiv1"

	"github.com/GregMSThompson/bank-portal/internal/config"
	"github.com/GregMSThompson/bank-portal/internal/crypto"
	"github.com/GregMSThompson/bank-portal/internal/session"
	"github.com/GregMSThompson/bank-portal/internal/store"
)

func InitFirestore(ctx context.Context, projectID string) (*firestore.Client, error) {
	return firestore.NewClient(ctx, projectID)
}

func InitKMS(ctx context.Context) (*gcpkms.KeyManagementClient, error) {
	return gcpkms.NewKeyManagementClient(ctx)
}

// initFirestoreSessions opens the Firestore session store. Identities are
// sealed with the configured KMS key, or stored as is when none is set.
func (bs *Bootstrap) initFirestoreSessions(ctx context.Context, cfg *config.Config) (session.Store, error) {
	fs, err := InitFirestore(ctx, cfg.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("firestore client: %w", err)
	}
	bs.Firestore = fs
	bs.closers = append(bs.closers, fs.Close)

	sealer := crypto.NewPassthrough()
	if cfg.KMSKeyName == "" {
		bs.Log.Warn("KMSKEYNAME not set, session user ids are stored unsealed")
		return store.NewFirestoreSessionStore(fs, sealer), nil
	}

	bs.KMS, err = InitKMS(ctx)
	if err != nil {
		return nil, fmt.Errorf("kms client: %w", err)
	}
	bs.closers = append(bs.closers, bs.KMS.Close)
	sealer = crypto.NewKMS(bs.KMS, cfg.KMSKeyName)
	return store.NewFirestoreSessionStore(fs, sealer), nil
}
