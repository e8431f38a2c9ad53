package kms

import (
	"sync"
	"testing"

	"github.com/pulumi/pulumi-gcp/sdk/v9/go/gcp"
	"github.com/pulumi/pulumi/sdk/v3/go/common/resource"
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi"
)

type recordingMocks struct {
	mu        sync.Mutex
	inputs    map[string]resource.PropertyMap
	protected map[string]bool
}

func (m *recordingMocks) NewResource(args pulumi.MockResourceArgs) (string, resource.PropertyMap, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.inputs[args.Name] = args.Inputs
	if args.RegisterRPC != nil {
		m.protected[args.Name] = args.RegisterRPC.GetProtect()
	}
	return args.Name + "_id", args.Inputs, nil
}

func (m *recordingMocks) Call(args pulumi.MockCallArgs) (resource.PropertyMap, error) {
	return args.Args, nil
}

func TestSetupSessionKey(t *testing.T) {
	t.Setenv("PULUMI_CONFIG", `{"gcp:region":"europe-west2"}`)
	mocks := &recordingMocks{inputs: map[string]resource.PropertyMap{}, protected: map[string]bool{}}

	var keyID string
	err := pulumi.RunErr(func(ctx *pulumi.Context) error {
		prov, err := gcp.NewProvider(ctx, "test", &gcp.ProviderArgs{})
		if err != nil {
			return err
		}
		key, err := SetupSessionKey(ctx, prov)
		if err != nil {
			return err
		}

		var wg sync.WaitGroup
		wg.Add(1)
		key.KeyID.ApplyT(func(id string) string {
			defer wg.Done()
			keyID = id
			return id
		})
		wg.Wait()
		return nil
	}, pulumi.WithMocks("bank-portal", "dev", mocks))
	if err != nil {
		t.Fatalf("SetupSessionKey: %v", err)
	}

	if keyID != "sessionKey_id" {
		t.Fatalf("expected the crypto key's id, got %q", keyID)
	}

	mocks.mu.Lock()
	defer mocks.mu.Unlock()
	key := mocks.inputs["sessionKey"]
	if got := key["name"].StringValue(); got != keyName {
		t.Fatalf("key name = %q, want %q", got, keyName)
	}
	if got := key["rotationPeriod"].StringValue(); got != sessionKeyRotation {
		t.Fatalf("rotation = %q, want %q", got, sessionKeyRotation)
	}
	if got := mocks.inputs["sessionKeyRing"]["location"].StringValue(); got != "europe-west2" {
		t.Fatalf("ring location = %q", got)
	}
	if !mocks.protected["sessionKeyRing"] || !mocks.protected["sessionKey"] {
		t.Fatalf("expected ring and key to be protected: %v", mocks.protected)
	}
}
