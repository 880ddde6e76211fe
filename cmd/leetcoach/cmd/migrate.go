package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"leetcoach/internal/platform/database"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database migrations to DATABASE_URL and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := loadConfig()
		if err != nil {
			return err
		}
		if cfg.Database.URL == "" {
			return errors.New("DATABASE_URL is not set")
		}

		dbCfg := database.DefaultConfig()
		dbCfg.URL = cfg.Database.URL
		pool, err := database.New(dbCfg)
		if err != nil {
			return fmt.Errorf("database: %w", err)
		}
		defer pool.Close() //nolint:errcheck // process exits next

		if err := pool.Migrate(); err != nil {
			return err
		}
		log.Info("migrations applied", "dialect", pool.Dialect())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
