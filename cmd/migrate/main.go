package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/liqma/backend/config"
	"github.com/liqma/backend/internal/database"
	"github.com/liqma/backend/internal/logging"
)

var waitFor time.Duration

var rootCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply the Liqma database schema",
	Long: `migrate brings the configured database up to date.

Database settings are read from the same environment as the API server
(DB_DRIVER, DB_HOST, DB_PORT, DB_USER, DB_NAME and the db_password secret).`,
	SilenceUsage: true,
	RunE:         runMigrate,
}

func init() {
	rootCmd.Flags().DurationVar(&waitFor, "wait", 0, "Wait up to this long for Postgres to accept connections")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	logger, err := logging.New(cfg.Env)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	if cfg.DBDriver == "postgres" && waitFor > 0 {
		if err := waitForPostgres(cmd.Context(), cfg, waitFor, logger); err != nil {
			return err
		}
	}

	db, err := database.Open(cfg, logger)
	if err != nil {
		return err
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}
	return database.RunMigrations(db, logger)
}

func waitForPostgres(ctx context.Context, cfg *config.Config, timeout time.Duration, logger *zap.Logger) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	for {
		err := database.Ping(ctx, cfg)
		if err == nil {
			return nil
		}
		logger.Info("waiting for database", zap.Error(err))
		select {
		case <-ctx.Done():
			return fmt.Errorf("database not ready after %v: %w", timeout, err)
		case <-time.After(time.Second):
		}
	}
}
