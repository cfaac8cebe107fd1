package main

import (
	"context"
	"os"

	"github.com/go-faster/errors"
	"github.com/spf13/cobra"

	"github.com/inmovista/inmovista/modules/core/domain/aggregates/operator"
	coreservices "github.com/inmovista/inmovista/modules/core/services"
	"github.com/inmovista/inmovista/pkg/composables"
	"github.com/inmovista/inmovista/pkg/serrors"
)

var defaultRegions = []string{
	"Región Metropolitana",
	"Valparaíso",
	"Biobío",
	"Antofagasta",
	"Los Lagos",
}

func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Create the default admin operator and the region list",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, pool, err := loadApp(cmd.Context())
			if err != nil {
				return err
			}
			defer pool.Close()

			ctx := composables.WithPool(cmd.Context(), pool)

			password := os.Getenv("SEED_ADMIN_PASSWORD")
			if password == "" {
				return errors.New("SEED_ADMIN_PASSWORD must be set")
			}

			operators := app.Service(coreservices.OperatorService{}).(*coreservices.OperatorService)
			_, err = operators.Create(ctx, coreservices.CreateOperatorParams{
				Handle:   "admin",
				Password: password,
				Role:     operator.RoleAdmin,
			})
			switch {
			case err == nil:
				app.Logger().Info("admin operator created")
			case serrors.Is(err, serrors.KindConflict):
				app.Logger().Info("admin operator already exists")
			default:
				return err
			}

			if err := seedRegions(ctx); err != nil {
				return err
			}
			app.Logger().Info("regions seeded")
			return nil
		},
	}
}

func seedRegions(ctx context.Context) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	for _, name := range defaultRegions {
		if _, err := tx.Exec(ctx, "INSERT INTO regions (name) VALUES ($1) ON CONFLICT (name) DO NOTHING", name); err != nil {
			return errors.Wrapf(err, "failed to seed region %q", name)
		}
	}
	return nil
}
