// Package apperr defines the sentinel errors shared across the service
// layers. Callers match them with errors.Is; the handler layer is the only
// place they are translated to HTTP status codes.
package apperr

import "errors"

var (
	// Repository-level errors.
	ErrNotFound         = errors.New("not found")
	ErrDuplicateEmail   = errors.New("email already registered")
	ErrStoreUnavailable = errors.New("store unavailable")

	// Credential errors. Expired and invalid are distinct on purpose: they
	// are logged and messaged differently even though both map to 401.
	ErrTokenInvalid       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token expired")
	ErrInvalidCredentials = errors.New("invalid credentials")

	// Authorization errors.
	ErrUnauthenticated = errors.New("authentication required")
	ErrForbidden       = errors.New("forbidden")

	// Input validation errors.
	ErrValidation = errors.New("validation failed")
)
