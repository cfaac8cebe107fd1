package main

import (
	"github.com/spf13/cobra"

	"github.com/inmovista/inmovista/pkg/configuration"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply all pending schema migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, pool, err := loadApp(cmd.Context())
			if err != nil {
				return err
			}
			defer pool.Close()

			conf := configuration.Use()
			if err := app.Migrations().Run(cmd.Context(), conf.Database.Opts); err != nil {
				return err
			}
			app.Logger().Info("migrations applied")
			return nil
		},
	}
}
