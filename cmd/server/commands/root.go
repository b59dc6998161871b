// Package commands holds the cobra command tree for the qa binary.
package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sakif/qa-backend/internal/config"
	"github.com/sakif/qa-backend/internal/logging"
)

var (
	// Global flags
	jsonOutput bool

	// Populated by the root PersistentPreRunE.
	cfg    config.AppConfig
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "qa",
	Short: "Q&A forum backend",
	Long: `qa serves the forum API: users ask questions, others answer,
and anyone can comment on a question or an answer.

Configuration is read from the environment (and a .env file if present):
  DB_DRIVER        sqlite (default) or postgres
  DATABASE_URL     file path for sqlite, DSN for postgres
  HTTP_ADDR        listen address, default :8080
  NATS_URL         JetStream server for domain events, empty disables them
  LOG_LEVEL        debug, info, warn or error

Running qa with no subcommand starts the server.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}
		logger, err = logging.New(cfg.LogLevel)
		if err != nil {
			return fmt.Errorf("building logger: %w", err)
		}
		zap.ReplaceGlobals(logger)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
}
