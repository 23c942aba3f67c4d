// Package service provides the application-level user operations.
package service

import "errors"

// Common service errors - sentinel errors used across service implementations.
// Callers check for them with errors.Is; the API layer maps each to a fixed
// HTTP status code.
var (
	// ErrInvalidCredentials indicates a login attempt with a wrong password
	// for an existing account. Distinct from store.ErrUserNotFound so that
	// an unknown email and a bad password remain distinguishable.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrNoFieldsToUpdate indicates a partial update that supplied no fields.
	ErrNoFieldsToUpdate = errors.New("at least one field must be provided to update")
)
