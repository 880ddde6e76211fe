package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"leetcoach/internal/platform/config"
	"leetcoach/internal/platform/logger"
)

var envFile string

var rootCmd = &cobra.Command{
	Use:   "leetcoach",
	Short: "leetcoach runs the interview practice API",
	Long: `leetcoach serves the coding interview practice API: accounts behind a
CAPTCHA and an abuse gateway, and a staged interview workflow with generated
feedback. Configuration is read from the environment and an optional .env file.`,
	SilenceUsage: true,
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Optional dotenv file loaded before reading the environment")
}

// loadConfig loads the dotenv file, then the environment.
func loadConfig() (config.Server, *slog.Logger, error) {
	if err := config.LoadDotEnv(envFile); err != nil {
		return config.Server{}, nil, err
	}
	cfg, err := config.FromEnv()
	if err != nil {
		return config.Server{}, nil, fmt.Errorf("config: %w", err)
	}
	return cfg, logger.New(cfg.LogLevel), nil
}
