package main

import (
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi"

	"github.com/opina-app/opina-backend/infra/cloudrun"
	"github.com/opina-app/opina-backend/infra/docker"
	"github.com/opina-app/opina-backend/infra/firestore"
	"github.com/opina-app/opina-backend/infra/identity"
	"github.com/opina-app/opina-backend/infra/provider"
	"github.com/opina-app/opina-backend/infra/vertex"
)

func main() {
	pulumi.Run(func(ctx *pulumi.Context) error {
		// set default provider with the correct project
		prov, err := provider.SetupDefaultProvider(ctx)
		if err != nil {
			return err
		}

		// enable identity service to allow using firebase
		ident, err := identity.SetupIdentity(ctx, prov)
		if err != nil {
			return err
		}

		// enable firestore and create a database for the project
		err = firestore.SetupFirestore(ctx, prov)
		if err != nil {
			return err
		}

		// enable vertex for report generation
		err = vertex.SetupVertex(ctx, prov)
		if err != nil {
			return err
		}

		// create docker repo
		repo, err := docker.CreateCloudrunRepo(ctx)
		if err != nil {
			return err
		}

		_, err = cloudrun.SetupCloudRun(ctx, prov, ident, repo)
		if err != nil {
			return err
		}

		return nil
	})
}
