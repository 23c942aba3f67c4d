package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/fvidalmarques/userhub-api/internal/api"
	apimiddleware "github.com/fvidalmarques/userhub-api/internal/api/middleware"
)

// setupRouter configures all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(apimiddleware.TraceID(app.logger))
	r.Use(apimiddleware.RequestLogger(app.logger))

	userHandler := api.NewUserHandler(app.userService, app.logger)
	authMiddleware := apimiddleware.NewAuthMiddleware(app.jwtService)

	r.Route("/auth", func(r chi.Router) {
		// Public endpoints
		r.Post("/register", userHandler.Register)
		r.Post("/login", userHandler.Login)
		r.Get("/", userHandler.List)
		r.Get("/{id}", userHandler.GetByID)
		r.Put("/{id}", userHandler.Update)
		r.Patch("/{id}", userHandler.Patch)
		r.Delete("/{id}", userHandler.Delete)

		// Protected endpoints
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)
			r.Get("/me", userHandler.Me)
		})
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}
