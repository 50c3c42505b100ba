package errx

import (
	"errors"
	"fmt"
	"net/http"
)

const (
	// SystemErrorMessage is the user-facing fallback for unexpected failures.
	SystemErrorMessage = "internal server error"
	// PersonaNotFoundMessage describes an unknown agent identifier.
	PersonaNotFoundMessage = "persona not found"
	// ProviderErrorMessage describes completion-provider failures.
	ProviderErrorMessage = "ai provider unavailable"
	// RedisErrorMessage describes Redis related failures.
	RedisErrorMessage = "redis operation failed"
	// RedisNotFoundMessage describes a missing Redis key.
	RedisNotFoundMessage = "not found"
)

// Sentinel conditions the conversation layer reports to the transport.
var (
	ErrPersonaNotFound     = errors.New(PersonaNotFoundMessage)
	ErrProviderUnavailable = errors.New(ProviderErrorMessage)
)

// Error wraps an underlying error with an HTTP status and a safe message.
type Error struct {
	Err     error
	Status  int
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

// Unwrap exposes the underlying error for errors.Is / errors.As support.
func (e *Error) Unwrap() error {
	return e.Err
}

// New creates a new Error with the provided information.
func New(err error, status int, message string) *Error {
	return &Error{
		Err:     err,
		Status:  status,
		Message: message,
	}
}

// StatusOf maps an error chain to the HTTP status the transport should use.
func StatusOf(err error) int {
	if err == nil {
		return http.StatusOK
	}
	var e *Error
	if errors.As(err, &e) && e.Status != 0 {
		return e.Status
	}
	if errors.Is(err, ErrPersonaNotFound) {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}
