package main

import (
	"github.com/spf13/cobra"

	"github.com/m04kA/SMC-CarWashService/internal/migrate"
)

func newMigrateCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := bootstrap(*configPath)
			if err != nil {
				return err
			}
			defer log.Close()

			db, err := openDB(cfg.Database)
			if err != nil {
				return err
			}
			defer db.Close()

			applied, err := migrate.Up(cmd.Context(), db, log)
			if err != nil {
				log.Error("Migrations failed: %v", err)
				return err
			}

			log.Info("Migrations done, applied=%d", applied)
			return nil
		},
	}
}
