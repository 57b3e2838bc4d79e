package main

import (
	"chefbazaar/internal/infra/db"
	"chefbazaar/internal/usecase"

	"github.com/spf13/cobra"
)

var seedCounters bool

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create tables and indexes",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		a, err := boot(ctx)
		if err != nil {
			return err
		}
		defer a.close()

		if err := db.Migrate(ctx, a.db); err != nil {
			return err
		}
		a.log.Info().Msg("migrated")

		if seedCounters {
			if err := usecase.NewCounterUsecase(a.counters).Provision(ctx); err != nil {
				return err
			}
			a.log.Info().Str("backend", a.cfg.CounterBackend).Msg("counters provisioned")
		}
		return nil
	},
}

func init() {
	migrateCmd.Flags().BoolVar(&seedCounters, "seed", false, "provision sequence counters")
}
