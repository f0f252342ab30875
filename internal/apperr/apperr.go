// Package apperr carries coded application errors for the layers around
// the generator facade (configuration, HTTP surface, CLI). Backend status
// failures keep their own type in domain/rng; this package is for
// everything that fails before a backend call is ever issued.
package apperr

import "fmt"

// Error is a coded application error with an optional cause chain.
type Error struct {
	Code    string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Error codes.
const (
	CodeConfigInvalid = "CONFIG_INVALID"
	CodeInvalidInput  = "INVALID_INPUT"
	CodeBackendError  = "BACKEND_ERROR"
	CodeInternalError = "INTERNAL_ERROR"
)

// New creates a coded error with no cause.
func New(code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap attaches context to an error, preserving an existing code.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	code := CodeInternalError
	if appErr, ok := err.(*Error); ok {
		code = appErr.Code
	}
	return &Error{Code: code, Message: message, Cause: err}
}

// Wrapf is Wrap with a formatted message.
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// Code returns the error's code, or CodeInternalError for foreign errors.
func Code(err error) string {
	if appErr, ok := err.(*Error); ok {
		return appErr.Code
	}
	return CodeInternalError
}

// ConfigInvalid builds a configuration validation error.
func ConfigInvalid(message string) *Error {
	return New(CodeConfigInvalid, message)
}

// InvalidInput builds a caller input validation error.
func InvalidInput(message string) *Error {
	return New(CodeInvalidInput, message)
}
