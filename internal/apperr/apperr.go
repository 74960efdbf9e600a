package apperr

import (
	"errors"
	"fmt"
)

// Kinds. Every error returned by a service wraps exactly one of these so the
// transport layer can pick a status code and callers can decide on retries.
var (
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrNotFound        = errors.New("not found")
	ErrValidation      = errors.New("validation failed")
	ErrConflict        = errors.New("conflict")
	ErrUnavailable     = errors.New("temporarily unavailable")
)

// ValidationError names the offending field. Message is shown to the user as is.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

func Validation(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// Error carries a kind plus the message shown to the caller.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Kind
}

func NotFound(what string) error {
	return &Error{Kind: ErrNotFound, Message: what + " not found"}
}

func Unauthenticated(reason string) error {
	return &Error{Kind: ErrUnauthenticated, Message: reason}
}

func Unauthorized(reason string) error {
	return &Error{Kind: ErrUnauthorized, Message: reason}
}

func Conflict(reason string) error {
	return &Error{Kind: ErrConflict, Message: reason}
}

// Unavailable wraps a transient cause. The cause stays in the chain for logging.
func Unavailable(cause error) error {
	return fmt.Errorf("%w: %w", ErrUnavailable, cause)
}

// Retryable reports whether the failure is transient.
func Retryable(err error) bool {
	return errors.Is(err, ErrUnavailable)
}
