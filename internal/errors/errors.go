package errors

import (
	"net/http"
)

// APIError is the error type handlers push into the gin context. The
// error-handler middleware maps it onto the uniform response envelope.
type APIError struct {
	Status   int    `json:"-"`
	Message  string `json:"message"`
	Internal error  `json:"-"`
}

// Error returns the error message
func (e *APIError) Error() string {
	if e.Internal != nil {
		return e.Message + ": " + e.Internal.Error()
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *APIError) Unwrap() error {
	return e.Internal
}

func New(status int, message string, internal error) *APIError {
	return &APIError{
		Status:   status,
		Message:  message,
		Internal: internal,
	}
}

func BadRequest(message string, internal error) *APIError {
	return New(http.StatusBadRequest, message, internal)
}

func Unauthorized(message string, internal error) *APIError {
	return New(http.StatusUnauthorized, message, internal)
}

func Forbidden(message string, internal error) *APIError {
	return New(http.StatusForbidden, message, internal)
}

func NotFound(message string, internal error) *APIError {
	return New(http.StatusNotFound, message, internal)
}

func Conflict(message string, internal error) *APIError {
	return New(http.StatusConflict, message, internal)
}

func UnprocessableEntity(message string, internal error) *APIError {
	return New(http.StatusUnprocessableEntity, message, internal)
}

func Internal(internal error) *APIError {
	return New(http.StatusInternalServerError, "Terjadi kesalahan pada server", internal)
}

// NewValidationError wraps gin binding failures
func NewValidationError(internal error) *APIError {
	return New(http.StatusUnprocessableEntity, "Input tidak valid", internal)
}
