// Package main implements the entry point for the UserHub API server,
// which provides user registration, authentication and account management
// over HTTP backed by PostgreSQL.
package main

import (
	"context"
	"flag"
	"log"

	"github.com/fvidalmarques/userhub-api/internal/config"
	"github.com/fvidalmarques/userhub-api/internal/platform/logger"
)

func main() {
	migrateCmd := flag.String("migrate", "", "run a migration command (up, down, status) and exit")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		log.Fatalf("Failed to set up logger: %v", err)
	}

	appLogger.Info("configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel)

	if *migrateCmd != "" {
		if err := runMigrationCommand(cfg, appLogger, *migrateCmd); err != nil {
			log.Fatalf("Migration command %q failed: %v", *migrateCmd, err)
		}
		return
	}

	app, err := newApplication(cfg, appLogger)
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}
	defer app.cleanup()

	if err := app.startHTTPServer(context.Background(), app.setupRouter()); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
