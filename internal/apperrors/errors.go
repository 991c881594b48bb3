package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found or is not owned by the caller.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrInvalidReference indicates that a foreign key target is missing or belongs to another user.
var ErrInvalidReference = errors.New("invalid reference")

// ErrUnauthorized indicates bad credentials or an invalid bearer token.
var ErrUnauthorized = errors.New("unauthorized")

// ErrInternalInconsistency indicates that required bootstrap data (e.g. the currency catalog) is missing.
var ErrInternalInconsistency = errors.New("internal inconsistency")

// AppError wraps an infrastructure failure with the HTTP status it should surface as.
type AppError struct {
	Code    int
	Message string
	Err     error
}

// NewAppError creates a new AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap allows errors.Is / errors.As to see the wrapped error.
func (e *AppError) Unwrap() error {
	return e.Err
}
