// Package errors provides structured error types for the wordcloud application.
//
// Every failure the editor can surface to a user carries a [Code]. The HTTP
// layer and the CLI branch on the code rather than on message text:
//
//   - VALIDATION: bad user input (empty word, non-positive weight)
//   - INDEX_OUT_OF_RANGE: delete/reorder with an index outside the list
//   - INVALID_CONFIG: cloud settings that violate their invariants
//   - EMPTY_INPUT: a layout pass with zero eligible words (a no-op, never shown)
//
// # Usage
//
//	err := errors.New(errors.ErrCodeValidation, "weight must be positive, got %v", w)
//	if errors.Is(err, errors.ErrCodeValidation) {
//	    // render inline message
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidFormat, origErr, "decode %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// User input errors, recovered at the editor boundary.
	ErrCodeValidation      Code = "VALIDATION"
	ErrCodeIndexOutOfRange Code = "INDEX_OUT_OF_RANGE"
	ErrCodeInvalidConfig   Code = "INVALID_CONFIG"

	// Layout was requested with nothing to lay out.
	ErrCodeEmptyInput Code = "EMPTY_INPUT"

	// File and request decoding errors
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeNotFound      Code = "NOT_FOUND"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// IsUserError reports whether err is caused by user input and should be shown
// inline instead of being treated as a server failure.
func IsUserError(err error) bool {
	switch GetCode(err) {
	case ErrCodeValidation, ErrCodeIndexOutOfRange, ErrCodeInvalidConfig, ErrCodeInvalidFormat:
		return true
	}
	return false
}
