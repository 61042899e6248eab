// Package controller provides the shared request/response conventions for
// HTTP handlers: a single application error contract and its mapping to
// HTTP status codes and response bodies.
package controller

import (
	"context"
	"errors"
	"net/http"

	"github.com/grcledger/grcledger/pkg/middleware/requestid"
	"github.com/grcledger/grcledger/pkg/record"
)

// AppError is the single application error contract shared across layers.
type AppError struct {
	Code       string
	Message    string
	HTTPStatus int
	Details    map[string]interface{}
	Cause      error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Cause }

// ErrorResponse represents the consistent error response format.
type ErrorResponse struct {
	Error     string                 `json:"error"`
	Code      string                 `json:"code,omitempty"`
	Message   string                 `json:"message,omitempty"`
	RequestID string                 `json:"request_id,omitempty"`
	Details   map[string]interface{} `json:"details,omitempty"`
}

// MapError maps application errors to HTTP responses. Record-protocol
// sentinels are classified first, then explicit AppErrors; anything else is
// an internal server error.
func MapError(ctx context.Context, err error) (int, ErrorResponse) {
	reqID := requestid.GetRequestID(ctx)

	switch {
	case errors.Is(err, record.ErrNotFound):
		return http.StatusNotFound, ErrorResponse{
			Error:     "not_found",
			Code:      "resource.not_found",
			Message:   "resource not found",
			RequestID: reqID,
		}
	case errors.Is(err, record.ErrUpdateFailed):
		return http.StatusInternalServerError, ErrorResponse{
			Error:     "internal_server_error",
			Code:      "resource.update_failed",
			Message:   "the store reported no modification for a known record",
			RequestID: reqID,
		}
	case errors.Is(err, record.ErrStoreUnavailable):
		return http.StatusInternalServerError, ErrorResponse{
			Error:     "internal_server_error",
			Code:      "store.unavailable",
			Message:   "the record store is unavailable",
			RequestID: reqID,
		}
	}

	var appErr *AppError
	if !errors.As(err, &appErr) {
		return http.StatusInternalServerError, ErrorResponse{
			Error:     "internal_server_error",
			Message:   "an unexpected error occurred",
			RequestID: reqID,
		}
	}

	status := appErr.HTTPStatus
	if status == 0 {
		status = http.StatusInternalServerError
	}

	return status, ErrorResponse{
		Error:     errorCategory(status),
		Code:      appErr.Code,
		Message:   appErr.Message,
		RequestID: reqID,
		Details:   appErr.Details,
	}
}

// NewValidationError creates a new validation error.
func NewValidationError(message string, details map[string]interface{}) *AppError {
	return &AppError{
		Code:       "validation.failed",
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
		Details:    details,
	}
}

// NewNotFoundError creates a new not found error.
func NewNotFoundError(message string) *AppError {
	return &AppError{
		Code:       "resource.not_found",
		Message:    message,
		HTTPStatus: http.StatusNotFound,
	}
}

// NewConflictError creates a new conflict error.
func NewConflictError(message string, details map[string]interface{}) *AppError {
	return &AppError{
		Code:       "resource.conflict",
		Message:    message,
		HTTPStatus: http.StatusConflict,
		Details:    details,
	}
}

// NewUnauthorizedError creates a new unauthorized error.
func NewUnauthorizedError(message string) *AppError {
	return &AppError{
		Code:       "auth.unauthorized",
		Message:    message,
		HTTPStatus: http.StatusUnauthorized,
	}
}

// NewInternalError creates a new internal error with optional cause.
func NewInternalError(message string, cause error) *AppError {
	return &AppError{
		Code:       "internal.error",
		Message:    message,
		HTTPStatus: http.StatusInternalServerError,
		Cause:      cause,
	}
}

func errorCategory(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "validation_error"
	case http.StatusUnauthorized:
		return "unauthorized"
	case http.StatusForbidden:
		return "forbidden"
	case http.StatusNotFound:
		return "not_found"
	case http.StatusConflict:
		return "conflict"
	default:
		if status >= 500 {
			return "internal_server_error"
		}
		return "application_error"
	}
}
