package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorType represents different categories of errors
type ErrorType string

const (
	// Validation errors (bad input from the caller)
	ErrTypeValidation ErrorType = "validation"
	// Not-found errors (identifier absent from a collection)
	ErrTypeNotFound ErrorType = "not_found"
	// Generic application errors
	ErrTypeInternal ErrorType = "internal"
)

// AppError represents a structured application error
type AppError struct {
	Type        ErrorType `json:"type"`
	Code        string    `json:"code"`
	Message     string    `json:"message"`
	InternalErr error     `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.InternalErr != nil {
		return fmt.Sprintf("[%s:%s] %s: %v", e.Type, e.Code, e.Message, e.InternalErr)
	}
	return fmt.Sprintf("[%s:%s] %s", e.Type, e.Code, e.Message)
}

// Unwrap exposes the wrapped internal error to errors.Is/As
func (e *AppError) Unwrap() error {
	return e.InternalErr
}

// HTTPStatus maps the error type to an HTTP status code
func (e *AppError) HTTPStatus() int {
	switch e.Type {
	case ErrTypeValidation:
		return http.StatusBadRequest
	case ErrTypeNotFound:
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

// New creates a new AppError
func New(errType ErrorType, code, message string) *AppError {
	return &AppError{
		Type:    errType,
		Code:    code,
		Message: message,
	}
}

// Newf creates a new AppError with a formatted message
func Newf(errType ErrorType, code, format string, args ...interface{}) *AppError {
	return New(errType, code, fmt.Sprintf(format, args...))
}

// Wrap wraps an existing error with additional context
func Wrap(err error, errType ErrorType, code, message string) *AppError {
	return &AppError{
		Type:        errType,
		Code:        code,
		Message:     message,
		InternalErr: err,
	}
}

// AsAppError extracts an *AppError from err, or wraps err as an internal
// error when it is anything else.
func AsAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Wrap(err, ErrTypeInternal, "INTERNAL", "internal server error")
}

// Predefined errors for common scenarios
var (
	ErrNoteNotFound = New(ErrTypeNotFound, "NOTE_NOT_FOUND", "note not found")
	ErrTodoNotFound = New(ErrTypeNotFound, "TODO_NOT_FOUND", "todo not found")
)
