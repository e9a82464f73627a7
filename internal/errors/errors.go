// Package errors provides standardized domain errors with codes for the
// WaveFM progression core.
//
// Usage:
//
//	// In services - return typed errors
//	if profile.Stats.Points < cost {
//	    return errors.InsufficientPoints("not enough points to unlock theme")
//	}
//
//	// In callers - check with errors.Is
//	if errors.Is(err, errors.ErrInsufficientPoints) {
//	    // surface the rejection, state is untouched
//	}
package errors

import (
	"errors"
	"fmt"
)

// Re-export standard library functions for convenience.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	Join   = errors.Join
)

// Code represents a machine-readable error code.
type Code string

// Error codes used throughout the core. Invalid actions (overspending,
// acting without a user, rating out of range) reject as no-ops carrying
// one of these codes; persistence failures are logged at the call site
// and never surface through timer machinery.
const (
	CodeNotFound           Code = "NOT_FOUND"
	CodeAlreadyExists      Code = "ALREADY_EXISTS"
	CodeUnauthenticated    Code = "UNAUTHENTICATED"
	CodeValidation         Code = "VALIDATION"
	CodeInsufficientPoints Code = "INSUFFICIENT_POINTS"
	CodePersistence        Code = "PERSISTENCE"
	CodeInternal           Code = "INTERNAL"
)

// Error is a domain error with a code, message, and optional details.
type Error struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
	cause   error  // unexported, for wrapping
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.cause
}

// Is reports whether target matches this error.
// Matches if target is an *Error with the same Code.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

// WithDetails returns a new error with additional details.
func (e *Error) WithDetails(details any) *Error {
	return &Error{
		Code:    e.Code,
		Message: e.Message,
		Details: details,
		cause:   e.cause,
	}
}

// WithCause wraps an underlying error.
func (e *Error) WithCause(err error) *Error {
	return &Error{
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
		cause:   err,
	}
}

// WithMessage returns a copy of the error with a more specific message but
// the same code, so errors.Is still matches the sentinel.
func (e *Error) WithMessage(msg string) *Error {
	return &Error{
		Code:    e.Code,
		Message: msg,
		Details: e.Details,
		cause:   e.cause,
	}
}

// Sentinel errors for use with errors.Is().
var (
	ErrNotFound           = &Error{Code: CodeNotFound, Message: "not found"}
	ErrAlreadyExists      = &Error{Code: CodeAlreadyExists, Message: "already exists"}
	ErrUnauthenticated    = &Error{Code: CodeUnauthenticated, Message: "no authenticated user"}
	ErrValidation         = &Error{Code: CodeValidation, Message: "validation error"}
	ErrInsufficientPoints = &Error{Code: CodeInsufficientPoints, Message: "insufficient points"}
	ErrPersistence        = &Error{Code: CodePersistence, Message: "persistence failure"}
	ErrInternal           = &Error{Code: CodeInternal, Message: "internal error"}
)

// Constructor functions for creating errors with custom messages.

// NotFound creates a not found error.
func NotFound(msg string) *Error {
	return &Error{Code: CodeNotFound, Message: msg}
}

// NotFoundf creates a not found error with formatted message.
func NotFoundf(format string, args ...any) *Error {
	return &Error{Code: CodeNotFound, Message: fmt.Sprintf(format, args...)}
}

// AlreadyExists creates an already exists error.
func AlreadyExists(msg string) *Error {
	return &Error{Code: CodeAlreadyExists, Message: msg}
}

// Unauthenticated creates an error for actions that need a signed-in user.
func Unauthenticated(msg string) *Error {
	return &Error{Code: CodeUnauthenticated, Message: msg}
}

// Validation creates a validation error.
func Validation(msg string) *Error {
	return &Error{Code: CodeValidation, Message: msg}
}

// Validationf creates a validation error with formatted message.
func Validationf(format string, args ...any) *Error {
	return &Error{Code: CodeValidation, Message: fmt.Sprintf(format, args...)}
}

// ValidationWithDetails creates a validation error with details.
func ValidationWithDetails(msg string, details any) *Error {
	return &Error{Code: CodeValidation, Message: msg, Details: details}
}

// InsufficientPoints creates a rejected-spend error.
func InsufficientPoints(msg string) *Error {
	return &Error{Code: CodeInsufficientPoints, Message: msg}
}

// Persistence creates a store failure error.
func Persistence(msg string) *Error {
	return &Error{Code: CodePersistence, Message: msg}
}

// Internal creates an internal error.
func Internal(msg string) *Error {
	return &Error{Code: CodeInternal, Message: msg}
}

// Internalf creates an internal error with formatted message.
func Internalf(format string, args ...any) *Error {
	return &Error{Code: CodeInternal, Message: fmt.Sprintf(format, args...)}
}

// Wrap wraps an error with a code and message.
func Wrap(err error, code Code, msg string) *Error {
	return &Error{Code: code, Message: msg, cause: err}
}

// Wrapf wraps an error with a code and formatted message.
func Wrapf(err error, code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), cause: err}
}
