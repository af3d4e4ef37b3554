package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError is a status-coded application error. The handler boundary maps
// Status straight onto the HTTP response; Err carries the underlying cause
// for logging and errors.Is checks but is never serialized to clients.
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

// Unwrap returns the underlying error for errors.Is and errors.As.
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is matches AppErrors by status so sentinel comparisons like
// errors.Is(err, apperrors.ErrUnauthorized) work regardless of message.
func (e *AppError) Is(target error) bool {
	var t *AppError
	if errors.As(target, &t) {
		return e.Status == t.Status
	}
	return false
}

func New(status int, message string) *AppError {
	return &AppError{Status: status, Message: message}
}

// Wrap attaches an underlying cause to a copy of the given AppError.
func Wrap(appErr *AppError, err error) *AppError {
	return &AppError{Status: appErr.Status, Message: appErr.Message, Err: err}
}

// NewBadRequest creates a 400 error with a caller-supplied message.
func NewBadRequest(message string) *AppError {
	return New(http.StatusBadRequest, message)
}

// NewConflict creates a 409 error with a caller-supplied message.
func NewConflict(message string) *AppError {
	return New(http.StatusConflict, message)
}

// NewInternal creates a 500 error with a caller-supplied message.
func NewInternal(message string) *AppError {
	return New(http.StatusInternalServerError, message)
}

// Predefined application errors.
var (
	ErrBadRequest   = New(http.StatusBadRequest, "bad request")
	ErrUnauthorized = New(http.StatusUnauthorized, "unauthorized")
	ErrConflict     = New(http.StatusConflict, "resource already exists")
	ErrNotFound     = New(http.StatusNotFound, "resource not found")
	ErrInternal     = New(http.StatusInternalServerError, "internal server error")
)

// ToHTTPStatus maps an error to the HTTP status code the boundary should
// return. Unknown errors collapse to 500 so internals never leak.
func ToHTTPStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Status
	}
	return http.StatusInternalServerError
}

// PublicMessage returns the client-safe message for an error. Non-AppError
// failures get a generic message instead of their internal detail.
func PublicMessage(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return "internal server error"
}
