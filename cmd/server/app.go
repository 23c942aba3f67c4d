package main

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/fvidalmarques/userhub-api/internal/config"
	"github.com/fvidalmarques/userhub-api/internal/platform/postgres"
	"github.com/fvidalmarques/userhub-api/internal/service"
	"github.com/fvidalmarques/userhub-api/internal/service/auth"
	"github.com/fvidalmarques/userhub-api/internal/store"
)

// application holds the shared dependencies of the server. Everything is
// constructed explicitly in newApplication; there are no ambient singletons
// besides the default slog logger.
type application struct {
	config *config.Config
	logger *slog.Logger

	db          *sql.DB
	userStore   store.UserStore
	jwtService  auth.JWTService
	hasher      auth.PasswordHasher
	userService service.UserService
}

// newApplication wires the full dependency graph: database, migrations,
// stores, auth services and the user service.
func newApplication(cfg *config.Config, logger *slog.Logger) (*application, error) {
	db, err := setupAppDatabase(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to set up database: %w", err)
	}

	if err := applyMigrations(db, logger); err != nil {
		closeDatabase(db, logger)
		return nil, fmt.Errorf("failed to apply migrations: %w", err)
	}

	jwtService, err := auth.NewJWTService(cfg.Auth)
	if err != nil {
		closeDatabase(db, logger)
		return nil, fmt.Errorf("failed to create JWT service: %w", err)
	}

	userStore := postgres.NewUserStore(db)
	hasher := auth.NewBcryptHasher(cfg.Auth.BcryptCost)
	userService := service.NewUserService(userStore, hasher, jwtService, db, logger)

	return &application{
		config:      cfg,
		logger:      logger,
		db:          db,
		userStore:   userStore,
		jwtService:  jwtService,
		hasher:      hasher,
		userService: userService,
	}, nil
}

// cleanup releases resources held by the application.
func (app *application) cleanup() {
	closeDatabase(app.db, app.logger)
}

func closeDatabase(db *sql.DB, logger *slog.Logger) {
	if db == nil {
		return
	}
	if err := db.Close(); err != nil {
		logger.Error("failed to close database connection", "error", err)
	}
}
