package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sangkips/ledgerbook/internal/config"
	"github.com/sangkips/ledgerbook/internal/infrastructure/database"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the local database schema",
		RunE:  runMigrate,
	}
}

func runMigrate(_ *cobra.Command, _ []string) error {
	cfg := config.Load(envFile)

	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	db, err := database.Open(&cfg.Database, cfg.App.Debug, log)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	if err := database.AutoMigrate(db, log); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Info("migrations complete", zap.String("driver", cfg.Database.Driver))
	return nil
}
