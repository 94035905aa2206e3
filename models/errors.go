package models

import (
	"errors"
	"fmt"

	pkgerrors "github.com/pkg/errors"
)

// Error is the JSON error body returned to clients.
type Error struct {
	Message string `json:"message"`
}

// ErrUnauthenticated means the session credentials are missing, invalid or
// expired. Callers must treat the presented credentials as revoked.
var ErrUnauthenticated = errors.New("unauthenticated")

// ValidationError is a caller error detected before any store access.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// StoreError wraps an opaque backend failure. The underlying message is
// preserved and surfaced to the caller verbatim.
type StoreError struct {
	Err error
}

func (e *StoreError) Error() string {
	return e.Err.Error()
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// WrapStore tags a backend error with context without hiding its message.
func WrapStore(err error, op string) error {
	if err == nil {
		return nil
	}
	return &StoreError{Err: pkgerrors.Wrap(err, op)}
}
