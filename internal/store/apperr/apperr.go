package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError is a business error carrying the HTTP status it should surface
// with. Services raise it; the handler boundary serializes it once.
type AppError struct {
	Status  int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates an AppError with an explicit status.
func New(status int, message string) *AppError {
	return &AppError{Status: status, Message: message}
}

// Validation marks client input that failed shape or range checks.
func Validation(message string) *AppError {
	return &AppError{Status: http.StatusBadRequest, Message: message}
}

// Validationf is Validation with formatting.
func Validationf(format string, args ...interface{}) *AppError {
	return Validation(fmt.Sprintf(format, args...))
}

// Unauthorized marks a missing or invalid identity.
func Unauthorized(message string) *AppError {
	return &AppError{Status: http.StatusUnauthorized, Message: message}
}

// Forbidden marks a valid identity with the wrong role.
func Forbidden(message string) *AppError {
	return &AppError{Status: http.StatusForbidden, Message: message}
}

// NotFound covers both a missing document and a mutation attempted on an
// already-approved one. The two cases are deliberately conflated into a
// single message and status, matching the external contract.
func NotFound(message string) *AppError {
	return &AppError{Status: http.StatusNotFound, Message: message}
}

// Conflict marks a state-machine precondition failure.
func Conflict(message string) *AppError {
	return &AppError{Status: http.StatusConflict, Message: message}
}

// Upstream wraps a failure from an external store, keeping its status code.
func Upstream(status int, message string, err error) *AppError {
	if status < 400 || status > 599 {
		status = http.StatusBadGateway
	}
	return &AppError{Status: status, Message: message, Err: err}
}

// From extracts an *AppError from err, if there is one in its chain.
func From(err error) (*AppError, bool) {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}
