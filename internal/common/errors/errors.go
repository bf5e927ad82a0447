// Package errors provides the structured error taxonomy surfaced by the
// mock API: every failure maps to an HTTP status and an {error: string}
// wire body.
package errors

import (
	"fmt"
	"net/http"
	"time"
)

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeUnauthorized  ErrorCode = "UNAUTHORIZED"    // bad credentials or missing session
	ErrCodeConflict      ErrorCode = "CONFLICT"        // duplicate registration
	ErrCodeNotFound      ErrorCode = "NOT_FOUND"       // unknown id
	ErrCodeUnprocessable ErrorCode = "UNPROCESSABLE"   // update lost a required field
	ErrCodeBadRequest    ErrorCode = "BAD_REQUEST"     // malformed body
	ErrCodeUnhandled     ErrorCode = "UNHANDLED_ROUTE" // no routing rule matched
)

// APIError is a structured application error with an HTTP status attached.
type APIError struct {
	Code      ErrorCode `json:"code"`
	Status    int       `json:"-"`
	Message   string    `json:"message"`
	Details   string    `json:"details,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("APIError[%s]: %s", e.Code, e.Message)
}

// Body returns the wire shape every mock handler responds with on failure.
func (e *APIError) Body() map[string]string {
	return map[string]string{"error": e.Message}
}

func NewUnauthorizedError(details string) *APIError {
	return &APIError{
		Code:      ErrCodeUnauthorized,
		Status:    http.StatusUnauthorized,
		Message:   "Unauthorized",
		Details:   details,
		Timestamp: time.Now().UTC(),
	}
}

func NewConflictError(message, details string) *APIError {
	return &APIError{
		Code:      ErrCodeConflict,
		Status:    http.StatusConflict,
		Message:   message,
		Details:   details,
		Timestamp: time.Now().UTC(),
	}
}

func NewNotFoundError(message string) *APIError {
	return &APIError{
		Code:      ErrCodeNotFound,
		Status:    http.StatusNotFound,
		Message:   message,
		Timestamp: time.Now().UTC(),
	}
}

// NewUnprocessableError reports an update that dropped a required field.
// The UI under test expects status 418 for this case.
func NewUnprocessableError(details string) *APIError {
	return &APIError{
		Code:      ErrCodeUnprocessable,
		Status:    http.StatusTeapot,
		Message:   "an unexpected error occurred",
		Details:   details,
		Timestamp: time.Now().UTC(),
	}
}

func NewBadRequestError(message, details string) *APIError {
	return &APIError{
		Code:      ErrCodeBadRequest,
		Status:    http.StatusBadRequest,
		Message:   message,
		Details:   details,
		Timestamp: time.Now().UTC(),
	}
}

func NewUnhandledRouteError(method, path string) *APIError {
	return &APIError{
		Code:      ErrCodeUnhandled,
		Status:    http.StatusNotFound,
		Message:   fmt.Sprintf("unhandled request: %s %s", method, path),
		Timestamp: time.Now().UTC(),
	}
}
