package cli

import (
	"bible_trivia_backend/internal/config"
	"bible_trivia_backend/pkg/database"
	"bible_trivia_backend/pkg/logger"

	"github.com/spf13/cobra"
)

// NewMigrateCmd applies the schema to the configured database.
func NewMigrateCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(*configPath)
			if err != nil {
				return err
			}
			logger.InitLogger(cfg)
			defer logger.Log.Sync()

			db, err := database.InitDB(&cfg.Database)
			if err != nil {
				return err
			}
			if sqlDB, err := db.DB(); err == nil {
				defer sqlDB.Close()
			}
			return database.Migrate(db)
		},
	}
}
