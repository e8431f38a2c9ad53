package crypto

import (
	"context"
	"encoding/base64"

	gcpkms "cloud.google.com/go/kms/apiv1"
	"cloud.google.com/go/kms/apiv1/kmspb"
	"github.com/googleapis/gax-go/v2"
)

// Sealer protects values at rest. Open reverses Seal.
type Sealer interface {
	Seal(ctx context.Context, plaintext string) (string, error)
	Open(ctx context.Context, sealed string) (string, error)
}

// kmsAPI is the subset of the KMS client used here.
type kmsAPI interface {
	Encrypt(ctx context.Context, req *kmspb.EncryptRequest, opts ...gax.CallOption) (*kmspb.EncryptResponse, error)
	Decrypt(ctx context.Context, req *kmspb.DecryptRequest, opts ...gax.CallOption) (*kmspb.DecryptResponse, error)
}

var _ kmsAPI = (*gcpkms.KeyManagementClient)(nil)

type kms struct {
	client  kmsAPI
	keyName string
}

func NewKMS(client kmsAPI, keyName string) *kms {
	return &kms{client: client, keyName: keyName}
}

// Seal encrypts plaintext using the configured KMS key name and returns base64 text.
func (k *kms) Seal(ctx context.Context, plaintext string) (string, error) {
	resp, err := k.client.Encrypt(ctx, &kmspb.EncryptRequest{
		Name:      k.keyName,
		Plaintext: []byte(plaintext),
	})
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(resp.Ciphertext), nil
}

// Open decrypts base64 ciphertext using the configured KMS key name.
func (k *kms) Open(ctx context.Context, sealed string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(sealed)
	if err != nil {
		return "", err
	}
	resp, err := k.client.Decrypt(ctx, &kmspb.DecryptRequest{
		Name:       k.keyName,
		Ciphertext: raw,
	})
	if err != nil {
		return "", err
	}
	return string(resp.Plaintext), nil
}

type passthrough struct{}

// NewPassthrough returns a Sealer that stores values as-is, for local runs
// without a KMS key.
func NewPassthrough() Sealer { return passthrough{} }

func (passthrough) Seal(_ context.Context, plaintext string) (string, error) { return plaintext, nil }
func (passthrough) Open(_ context.Context, sealed string) (string, error)    { return sealed, nil }
