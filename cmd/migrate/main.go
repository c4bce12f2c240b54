package main

// Run database migrations:
//   go run ./cmd/migrate

import (
	"context"
	"log"
	"os"

	"triage-backend/internal/shared/config"
	"triage-backend/internal/shared/storage/db"
	"triage-backend/internal/shared/telemetry"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	ctx := context.Background()

	opts := db.OptionsFromEnv(db.DefaultCLIOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		telemetry.Error("migrate.connect_failed", map[string]any{"err": err})
		os.Exit(1)
	}
	defer sqlDB.Close()

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		telemetry.Error("migrate.failed", map[string]any{"err": err})
		os.Exit(1)
	}
	version, err := db.MigrationVersion(sqlDB)
	if err != nil {
		telemetry.Error("migrate.version_failed", map[string]any{"err": err})
		os.Exit(1)
	}
	telemetry.Info("migrate.done", map[string]any{"version": version})
}
