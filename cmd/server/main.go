// Package main implements the entry point for the ohgiri API server, which
// hosts joke topics, collects answers and votes, and generates AI commentary
// for each answer in the background.
package main

import (
	"context"
	"fmt"
	"log"

	"github.com/ohgiri-live/ohgiri-api/internal/config"
	"github.com/ohgiri-live/ohgiri-api/internal/platform/logger"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("server exited with error: %v", err)
	}
}

// run loads configuration, prepares the database, wires the application and
// serves HTTP until a shutdown signal arrives.
func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.Setup(logger.LoggerConfig{Level: cfg.Server.LogLevel})
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	appLogger.Info("server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"generator_backend", cfg.Generator.Backend)

	ctx := context.Background()

	db, err := setupDatabase(cfg, appLogger)
	if err != nil {
		return fmt.Errorf("failed to set up database: %w", err)
	}

	if err := runMigrations(db, appLogger); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	app, err := newApplication(ctx, cfg, appLogger, db)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return app.Run(ctx)
}
