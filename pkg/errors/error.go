package errors

import (
	"errors"
	"fmt"
)

// Re-export the standard library helpers so callers only import one package.
var (
	New    = errors.New
	Unwrap = errors.Unwrap
	Is     = errors.Is
	As     = errors.As
)

// Error extends the basic error interface with an application code.
type Error interface {
	error
	Code() string
	Unwrap() error
}

// AppError is the default Error implementation.
type AppError struct {
	code    string
	message string
	err     error
	fields  map[string]string
}

func (e *AppError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %s", e.message, e.err.Error())
	}
	return e.message
}

func (e *AppError) Code() string {
	return e.code
}

func (e *AppError) Message() string {
	return e.message
}

func (e *AppError) Unwrap() error {
	return e.err
}

// Fields returns per-field detail for validation errors, nil otherwise.
func (e *AppError) Fields() map[string]string {
	return e.fields
}

// NewAppError creates a new application error.
func NewAppError(code string, message string, err error) *AppError {
	return &AppError{
		code:    code,
		message: message,
		err:     err,
	}
}

// NotFoundf creates a NOT_FOUND error with a formatted message.
func NotFoundf(format string, args ...any) *AppError {
	return NewAppError(ErrNotFound, fmt.Sprintf(format, args...), nil)
}

// Validationf creates an INVALID_ARGUMENT error with a formatted message.
func Validationf(format string, args ...any) *AppError {
	return NewAppError(ErrInvalidArgument, fmt.Sprintf(format, args...), nil)
}

// ValidationFields creates an INVALID_ARGUMENT error carrying per-field detail.
func ValidationFields(message string, fields map[string]string) *AppError {
	return &AppError{
		code:    ErrInvalidArgument,
		message: message,
		fields:  fields,
	}
}

// Conflictf creates a CONFLICT error with a formatted message.
func Conflictf(format string, args ...any) *AppError {
	return NewAppError(ErrConflict, fmt.Sprintf(format, args...), nil)
}

// Unauthenticatedf creates an UNAUTHENTICATED error with a formatted message.
func Unauthenticatedf(format string, args ...any) *AppError {
	return NewAppError(ErrUnauthenticated, fmt.Sprintf(format, args...), nil)
}

// Unauthorizedf creates an UNAUTHORIZED error with a formatted message.
func Unauthorizedf(format string, args ...any) *AppError {
	return NewAppError(ErrUnauthorized, fmt.Sprintf(format, args...), nil)
}

// Internalf creates an INTERNAL error wrapping the given cause.
func Internalf(err error, format string, args ...any) *AppError {
	return NewAppError(ErrInternal, fmt.Sprintf(format, args...), err)
}

// Wrap wraps an existing error, keeping the code when it already is an AppError.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if As(err, &appErr) {
		return NewAppError(appErr.Code(), message, err)
	}

	return NewAppError(ErrInternal, message, err)
}
