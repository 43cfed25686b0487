package errors

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrInvalidCredentials      = errors.New("invalid email or password")
	ErrInvalidToken            = errors.New("invalid or expired token")
	ErrUnauthorized            = errors.New("unauthorized access")
	ErrInsufficientPermissions = errors.New("insufficient permissions")
)

// Well-known AppError codes. Each maps to exactly one HTTP status at the
// transport boundary.
const (
	CodeValidation      = "VALIDATION_ERROR"
	CodeUnauthenticated = "UNAUTHENTICATED"
	CodeForbidden       = "FORBIDDEN"
	CodeNotFound        = "NOT_FOUND"
	CodeConflict        = "CONFLICT"
	CodeInternal        = "INTERNAL_ERROR"
)

type AppError struct {
	Code    string
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

// StatusCode translates the error code into an HTTP status. Unknown codes
// collapse to 500 so nothing internal leaks by accident.
func (e *AppError) StatusCode() int {
	switch e.Code {
	case CodeValidation:
		return http.StatusBadRequest
	case CodeUnauthenticated:
		return http.StatusUnauthorized
	case CodeForbidden:
		return http.StatusForbidden
	case CodeNotFound:
		return http.StatusNotFound
	case CodeConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func NewAppError(code, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func Validation(message string, err error) *AppError {
	return NewAppError(CodeValidation, message, err)
}

func Unauthenticated(message string) *AppError {
	return NewAppError(CodeUnauthenticated, message, nil)
}

func Forbidden(message string) *AppError {
	return NewAppError(CodeForbidden, message, nil)
}

func NotFound(message string) *AppError {
	return NewAppError(CodeNotFound, message, nil)
}

func Conflict(message string) *AppError {
	return NewAppError(CodeConflict, message, nil)
}

func Internal(err error) *AppError {
	return NewAppError(CodeInternal, "Internal server error", err)
}
