package main

import (
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/ohgiri-live/ohgiri-api/migrations"
	"github.com/pressly/goose/v3"
)

// slogGooseLogger adapts goose's logger interface to slog.
type slogGooseLogger struct{}

func (l *slogGooseLogger) Fatalf(format string, v ...interface{}) {
	slog.Error(fmt.Sprintf(format, v...), "component", "migrations")
}

func (l *slogGooseLogger) Printf(format string, v ...interface{}) {
	slog.Info(fmt.Sprintf(format, v...), "component", "migrations")
}

// runMigrations applies the embedded goose migrations to the database. It is
// called on every startup; goose skips migrations that are already applied.
func runMigrations(db *sql.DB, logger *slog.Logger) error {
	start := time.Now()
	logger.Info("applying database migrations")

	goose.SetLogger(&slogGooseLogger{})
	goose.SetBaseFS(migrations.FS)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	if err := goose.Up(db, "."); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	logger.Info("database migrations applied",
		"duration_ms", time.Since(start).Milliseconds())
	return nil
}
