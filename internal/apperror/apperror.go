// Package apperror defines the error taxonomy shared by every layer.
//
// Services return these errors; the HTTP layer maps them to status codes with
// errors.Is. Anything that is not an *AppError is treated as an internal
// failure and its text never reaches the client.
package apperror

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound    = errors.New("not found")
	ErrValidation  = errors.New("validation error")
	ErrConflict    = errors.New("conflict")
	ErrTransaction = errors.New("transaction failed")
)

type AppError struct {
	Err     error  // sentinel, one of the Err* values above
	Message string // Human-readable error message
	Field   string // Optional: field causing the error
	Cause   error  // Optional: underlying storage error, for logs only
}

func (e *AppError) Error() string {
	return e.Message
}

// Unwrap exposes both the sentinel and the cause, so errors.Is matches either.
func (e *AppError) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Err}
	}
	return []error{e.Err, e.Cause}
}

func NotFound(resource, id string) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: fmt.Sprintf("%s not found with id %s", resource, id),
	}
}

func ValidationFailed(field, message string) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Message: message,
		Field:   field,
	}
}

func Conflict(resource, id string) *AppError {
	return &AppError{
		Err:     ErrConflict,
		Message: fmt.Sprintf("%s %s already exists", resource, id),
	}
}

// TransactionFailed reports a rolled-back multi-statement operation.
// HTTP handlers map this to 500 without exposing the cause.
func TransactionFailed(op string, cause error) *AppError {
	return &AppError{
		Err:     ErrTransaction,
		Message: fmt.Sprintf("%s failed and was rolled back", op),
		Cause:   cause,
	}
}
