package api

import (
	"errors"
	"net/http"

	"github.com/fvidalmarques/userhub-api/internal/domain"
	"github.com/fvidalmarques/userhub-api/internal/service"
	"github.com/fvidalmarques/userhub-api/internal/service/auth"
	"github.com/fvidalmarques/userhub-api/internal/store"
)

// MapErrorToStatusCode translates domain, store, service and auth errors
// into HTTP status codes.
func MapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, store.ErrEmailExists):
		return http.StatusBadRequest
	case errors.Is(err, store.ErrUserNotFound), errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, store.ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrNoFieldsToUpdate),
		errors.Is(err, store.ErrInvalidEntity),
		isValidationError(err):
		return http.StatusBadRequest
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a client-facing message for the error. Known
// errors get a specific message; anything unexpected collapses to a generic
// one so internals never leak.
func GetSafeErrorMessage(err error) string {
	switch {
	case errors.Is(err, store.ErrEmailExists):
		return "Email already exists"
	case errors.Is(err, store.ErrUserNotFound):
		return "User not found"
	case errors.Is(err, store.ErrNotFound):
		return "Resource not found"
	case errors.Is(err, service.ErrInvalidCredentials):
		return "Invalid credentials"
	case errors.Is(err, service.ErrNoFieldsToUpdate):
		return "No fields provided to update"
	case isValidationError(err):
		return sanitizeValidationError(err)
	case errors.Is(err, auth.ErrExpiredToken):
		return "Token has expired"
	case errors.Is(err, auth.ErrMissingToken):
		return "Authentication required"
	case errors.Is(err, auth.ErrInvalidToken), errors.Is(err, domain.ErrUnauthorized):
		return "Invalid or missing authentication"
	default:
		return "An internal error occurred"
	}
}

// isValidationError reports whether err is any of the domain-level
// validation failures.
func isValidationError(err error) bool {
	for _, target := range []error{
		domain.ErrValidation,
		domain.ErrInvalidEmail,
		domain.ErrInvalidID,
		domain.ErrInvalidPassword,
		domain.ErrNameTooShort,
		domain.ErrNameTooLong,
		domain.ErrEmptyEmail,
		domain.ErrEmailTooLong,
		domain.ErrPasswordTooShort,
		domain.ErrPasswordTooLong,
		domain.ErrEmptyPassword,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// sanitizeValidationError exposes the field-level detail of a validation
// failure, which is safe to show, without the wrapped cause chain.
func sanitizeValidationError(err error) string {
	var valErr *domain.ValidationError
	if errors.As(err, &valErr) {
		return valErr.Message
	}
	return err.Error()
}

// RespondWithMappedError is a convenience combining status mapping and safe
// message selection.
func RespondWithMappedError(err error) (int, string) {
	return MapErrorToStatusCode(err), GetSafeErrorMessage(err)
}
