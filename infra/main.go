package main

import (
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi"

	"github.com/GregMSThompson/bank-portal/infra/cloudrun"
	"github.com/GregMSThompson/bank-portal/infra/docker"
	"github.com/GregMSThompson/bank-portal/infra/firestore"
	"github.com/GregMSThompson/bank-portal/infra/kms"
	"github.com/GregMSThompson/bank-portal/infra/provider"
)

func main() {
	pulumi.Run(func(ctx *pulumi.Context) error {
		// set default provider with the correct project
		prov, err := provider.SetupDefaultProvider(ctx)
		if err != nil {
			return err
		}

		// enable firestore and create a database for the session store
		err = firestore.SetupFirestore(ctx, prov)
		if err != nil {
			return err
		}

		// key that seals user ids at rest in the session store
		key, err := kms.SetupSessionKey(ctx, prov)
		if err != nil {
			return err
		}

		// create docker repo
		repo, err := docker.CreateWebRepo(ctx)
		if err != nil {
			return err
		}

		svc, err := cloudrun.SetupCloudRun(ctx, prov, key.KeyID, repo, key.Service)
		if err != nil {
			return err
		}

		ctx.Export("url", svc.Statuses.Index(pulumi.Int(0)).Url())
		return nil
	})
}
