package main

import (
	"github.com/spf13/cobra"

	"github.com/m04kA/SMC-MarketplaceService/migrations"
)

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Применить встроенные SQL миграции",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := loadConfig()
			if err != nil {
				return err
			}
			defer log.Close()

			db, err := openDB(cmd.Context(), cfg.Database, log)
			if err != nil {
				return err
			}
			defer db.Close()

			if err := migrations.Apply(cmd.Context(), db, log); err != nil {
				log.Error("Migration failed: %v", err)
				return err
			}

			log.Info("Migrations applied successfully")
			return nil
		},
	}
}
