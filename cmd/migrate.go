package main

import (
	"nexus-service/pkg/database"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := bootstrap()
			if err != nil {
				return err
			}
			defer log.Sync()

			db, err := database.Open(&cfg.DB)
			if err != nil {
				log.Error("Failed to connect to database", zap.Error(err))
				return err
			}
			defer database.Close(db)

			return database.Migrate(db, log)
		},
	}
}
