// Package middleware provides the HTTP middleware: bearer-token
// authentication and request tracing.
package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/fvidalmarques/userhub-api/internal/api/shared"
	"github.com/fvidalmarques/userhub-api/internal/service/auth"
)

// AuthMiddleware validates bearer tokens on protected routes.
type AuthMiddleware struct {
	jwtService auth.JWTService
}

// NewAuthMiddleware creates an AuthMiddleware backed by the given token
// verifier.
func NewAuthMiddleware(jwtService auth.JWTService) *AuthMiddleware {
	return &AuthMiddleware{jwtService: jwtService}
}

// Authenticate rejects requests without a valid bearer token and stores the
// verified claims in the request context for downstream handlers.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString, err := extractBearerToken(r)
		if err != nil {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
			return
		}

		claims, err := m.jwtService.ValidateToken(r.Context(), tokenString)
		if err != nil {
			message := "Invalid or missing authentication"
			if errors.Is(err, auth.ErrExpiredToken) {
				message = "Token has expired"
			}
			shared.RespondWithError(w, r, http.StatusUnauthorized, message)
			return
		}

		ctx := context.WithValue(r.Context(), shared.ClaimsContextKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// extractBearerToken pulls the token out of the Authorization header.
// The scheme comparison is case-insensitive per RFC 7235.
func extractBearerToken(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", auth.ErrMissingToken
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", auth.ErrInvalidToken
	}
	return parts[1], nil
}
