package rng

import (
	"fmt"

	"devrand/ports"
)

// Error wraps a backend status code with a human-readable description.
// It is immutable once constructed and is raised at every backend call
// boundary that returns a non-success status.
type Error struct {
	code    ports.Status
	message string
}

// NewError builds an Error for the given backend status.
func NewError(code ports.Status) *Error {
	return &Error{code: code, message: statusMessage(code)}
}

// ErrorCode returns the backend status the error wraps.
func (e *Error) ErrorCode() ports.Status {
	return e.code
}

func (e *Error) Error() string {
	return e.message
}

// errorFrom translates a backend status into an error value: nil on
// success, a *Error carrying the status otherwise. Every backend-facing
// operation in this package funnels its status through here.
func errorFrom(status ports.Status) error {
	if status.OK() {
		return nil
	}
	return NewError(status)
}

// statusMessage maps every defined backend status to a description.
// Statuses outside the known taxonomy fall back to a generic message
// carrying the raw code.
func statusMessage(code ports.Status) string {
	switch code {
	case ports.StatusSuccess:
		return "success"
	case ports.StatusVersionMismatch:
		return "header and backend library version mismatch"
	case ports.StatusNotCreated:
		return "generator was not created"
	case ports.StatusAllocationFailed:
		return "memory allocation failed during execution"
	case ports.StatusTypeError:
		return "generator type is wrong for the requested operation"
	case ports.StatusOutOfRange:
		return "argument out of range"
	case ports.StatusLengthNotMultiple:
		return "requested size is not a multiple of the generator's dimension"
	case ports.StatusDoublePrecisionRequired:
		return "backend does not support double precision"
	case ports.StatusLaunchFailure:
		return "kernel launch failure"
	case ports.StatusInternalError:
		return "internal backend error"
	default:
		return fmt.Sprintf("unknown error (code %d)", int32(code))
	}
}
