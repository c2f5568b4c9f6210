package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Standard sentinel errors for common cases.
var (
	ErrNotFound     = errors.New("resource not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrConflict     = errors.New("conflict")
	ErrRemote       = errors.New("remote server error")
)

// APIError represents a structured error produced by a remote API call, with
// the HTTP status that triggered it preserved.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"-"`
	Err     error  `json:"-"`
}

func (e *APIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// NotFound creates an error for a 404 response.
func NotFound(message string) *APIError {
	return &APIError{
		Code:    "NOT_FOUND",
		Message: message,
		Status:  http.StatusNotFound,
		Err:     ErrNotFound,
	}
}

// InvalidInput creates an error for a 400 response or a failed local check.
func InvalidInput(message string) *APIError {
	return &APIError{
		Code:    "INVALID_INPUT",
		Message: message,
		Status:  http.StatusBadRequest,
		Err:     ErrInvalidInput,
	}
}

// Unauthorized creates an error for a 401 response. Callers treat this as
// session-fatal: errors.Is(err, ErrUnauthorized) holds.
func Unauthorized(message string) *APIError {
	return &APIError{
		Code:    "UNAUTHORIZED",
		Message: message,
		Status:  http.StatusUnauthorized,
		Err:     ErrUnauthorized,
	}
}

// Forbidden creates an error for a 403 response.
func Forbidden(message string) *APIError {
	return &APIError{
		Code:    "FORBIDDEN",
		Message: message,
		Status:  http.StatusForbidden,
		Err:     ErrForbidden,
	}
}

// Conflict creates an error for a 409 response.
func Conflict(message string) *APIError {
	return &APIError{
		Code:    "CONFLICT",
		Message: message,
		Status:  http.StatusConflict,
		Err:     ErrConflict,
	}
}

// Remote creates an error for a 5xx or otherwise unclassified response.
func Remote(status int, message string) *APIError {
	return &APIError{
		Code:    "REMOTE_ERROR",
		Message: message,
		Status:  status,
		Err:     ErrRemote,
	}
}

// FromStatus maps an HTTP status code and message onto the matching APIError
// constructor. Statuses without a dedicated constructor fall through to Remote.
func FromStatus(status int, message string) *APIError {
	switch status {
	case http.StatusNotFound:
		return NotFound(message)
	case http.StatusBadRequest:
		return InvalidInput(message)
	case http.StatusUnauthorized:
		return Unauthorized(message)
	case http.StatusForbidden:
		return Forbidden(message)
	case http.StatusConflict:
		return Conflict(message)
	default:
		return Remote(status, message)
	}
}

// Wrap wraps an error with additional context.
func Wrap(err error, message string) error {
	return fmt.Errorf("%s: %w", message, err)
}

// HTTPStatus returns the HTTP status code associated with the given error.
func HTTPStatus(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}

	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
