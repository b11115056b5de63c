// Package common defines shared constants and sentinel errors used across
// client and server layers of Culinary Share. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors.
	ErrorUnauthorized = errors.New("unauthorized")
	ErrForbidden      = errors.New("forbidden")
	ErrConflict       = errors.New("conflict")

	// Validation errors (missing or malformed input).
	ErrValidation = errors.New("validation error")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")

	// Token lifecycle errors.
	ErrTokenExpired = errors.New("token expired")
)

// PublicError pairs a sentinel with a message that is safe to show to API
// clients. errors.Is matches the sentinel.
type PublicError struct {
	Err     error
	Message string
}

func (e *PublicError) Error() string { return e.Message }
func (e *PublicError) Unwrap() error { return e.Err }

// WithMessage wraps sentinel in a PublicError carrying msg.
func WithMessage(sentinel error, msg string) error {
	return &PublicError{Err: sentinel, Message: msg}
}
