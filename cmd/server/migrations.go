package main

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/pressly/goose/v3"

	"github.com/fvidalmarques/userhub-api/internal/config"
	"github.com/fvidalmarques/userhub-api/migrations"
)

// applyMigrations brings the schema up to date using the embedded migration
// files. Called at startup before any store touches the database.
func applyMigrations(db *sql.DB, logger *slog.Logger) error {
	goose.SetBaseFS(migrations.FS)
	goose.SetLogger(&slogGooseLogger{logger: logger})

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set migration dialect: %w", err)
	}

	if err := goose.Up(db, "."); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	logger.Info("database migrations applied")
	return nil
}

// runMigrationCommand executes a single goose command against the configured
// database and returns. Used by the -migrate flag.
func runMigrationCommand(cfg *config.Config, logger *slog.Logger, command string) error {
	db, err := setupAppDatabase(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to set up database: %w", err)
	}
	defer closeDatabase(db, logger)

	goose.SetBaseFS(migrations.FS)
	goose.SetLogger(&slogGooseLogger{logger: logger})

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set migration dialect: %w", err)
	}

	switch command {
	case "up":
		return goose.Up(db, ".")
	case "down":
		return goose.Down(db, ".")
	case "status":
		return goose.Status(db, ".")
	default:
		return fmt.Errorf("unknown migration command %q (want up, down or status)", command)
	}
}

// slogGooseLogger adapts goose's logger interface to slog.
type slogGooseLogger struct {
	logger *slog.Logger
}

func (l *slogGooseLogger) Fatalf(format string, v ...any) {
	l.logger.Error(fmt.Sprintf(format, v...), "component", "goose")
}

func (l *slogGooseLogger) Printf(format string, v ...any) {
	l.logger.Info(fmt.Sprintf(format, v...), "component", "goose")
}
