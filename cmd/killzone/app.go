package main

import (
	"context"

	"github.com/RichStephens/killzone/internal/config"
	"github.com/RichStephens/killzone/internal/constants"
	"github.com/RichStephens/killzone/internal/logging"
	"github.com/RichStephens/killzone/internal/storage"
	"github.com/RichStephens/killzone/internal/telemetry"
	"github.com/RichStephens/killzone/internal/version"
)

func loadConfigOrExit(path string) *config.LoadedConfig {
	if err := config.LoadDotEnv(); err != nil {
		logging.Warn("Failed to load .env file", logging.Fields{"error": err.Error()})
	}
	cfg, err := config.LoadConfig(path)
	if err != nil {
		logging.Fatal("Missing or invalid killzone configuration", err, logging.Fields{constants.LogFieldConfigPath: path})
	}
	return cfg
}

func createRepositoryOrExit(dbPath string) storage.Repository {
	db, err := storage.OpenAndMigrate(dbPath)
	if err != nil {
		logging.Fatal("Failed to initialize database", err, logging.Fields{"db_path": dbPath})
	}
	return storage.NewSQLiteRepository(db)
}

// setupTracing never fails startup; a broken exporter only loses spans.
func setupTracing(ctx context.Context, cfg *config.LoadedConfig) telemetry.ShutdownFunc {
	shutdown, err := telemetry.Setup(ctx, cfg.TelemetryConfig(version.Service, version.Version))
	if err != nil {
		logging.Error("Failed to set up tracing, continuing without it", err, nil)
	}
	return shutdown
}
