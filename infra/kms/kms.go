package kms

import (
	"github.com/pulumi/pulumi-gcp/sdk/v9/go/gcp"
	"github.com/pulumi/pulumi-gcp/sdk/v9/go/gcp/kms"
	"github.com/pulumi/pulumi-gcp/sdk/v9/go/gcp/projects"
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi"
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi/config"
)

const (
	keyRingName = "bank-portal"
	keyName     = "session-identity"

	// Rotation is short enough that old sealed ids age out with the
	// sessions themselves.
	sessionKeyRotation = "2592000s" // 30 days
)

// SessionKey is the symmetric key the portal seals stored identities with.
type SessionKey struct {
	Service *projects.Service
	// KeyID is the key's resource name, passed to the app as KMSKEYNAME.
	KeyID pulumi.StringOutput
}

// SetupSessionKey enables Cloud KMS and creates the session key. The ring
// and key are protected: destroying them would leave every stored session
// unreadable.
func SetupSessionKey(ctx *pulumi.Context, prov *gcp.Provider) (*SessionKey, error) {
	location := config.New(ctx, "gcp").Require("region")

	svc, err := projects.NewService(ctx, "kmsService", &projects.ServiceArgs{
		Service:          pulumi.String("cloudkms.googleapis.com"),
		DisableOnDestroy: pulumi.Bool(false),
	}, pulumi.Provider(prov))
	if err != nil {
		return nil, err
	}

	ring, err := kms.NewKeyRing(ctx, "sessionKeyRing", &kms.KeyRingArgs{
		Location: pulumi.String(location),
		Name:     pulumi.String(keyRingName),
	},
		pulumi.Provider(prov),
		pulumi.DependsOn([]pulumi.Resource{svc}),
		pulumi.Protect(true),
	)
	if err != nil {
		return nil, err
	}

	key, err := kms.NewCryptoKey(ctx, "sessionKey", &kms.CryptoKeyArgs{
		KeyRing:        ring.ID(),
		Name:           pulumi.String(keyName),
		Purpose:        pulumi.String("ENCRYPT_DECRYPT"),
		RotationPeriod: pulumi.String(sessionKeyRotation),
		VersionTemplate: &kms.CryptoKeyVersionTemplateArgs{
			Algorithm: pulumi.String("GOOGLE_SYMMETRIC_ENCRYPTION"),
		},
	},
		pulumi.Provider(prov),
		pulumi.Protect(true),
	)
	if err != nil {
		return nil, err
	}

	return &SessionKey{Service: svc, KeyID: key.ID().ToStringOutput()}, nil
}
