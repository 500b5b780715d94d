// Package apierr provides structured error types for the geoapy client.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the library, CLI, and proxy server
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Input validation failures (bad IPv4, unknown field)
//   - KEY_*: API key configuration failures
//   - NETWORK_*: Transport-level failures
//   - API_*: Non-success responses from the provider
//
// # Usage
//
//	err := apierr.New(apierr.CodeInvalidAddress, "not a dotted-quad IPv4: %q", ip)
//	if apierr.Is(err, apierr.CodeInvalidAddress) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := apierr.Wrap(apierr.CodeNetwork, origErr, "lookup %s", ip)
package apierr

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	CodeInvalidAddress Code = "INVALID_ADDRESS"
	CodeUnknownField   Code = "UNKNOWN_FIELD"
	CodeInvalidInput   Code = "INVALID_INPUT"

	// API key configuration errors
	CodeKeyNotRegistered Code = "KEY_NOT_REGISTERED"

	// Transport errors
	CodeNetwork Code = "NETWORK_ERROR"

	// Provider response errors
	CodeAPI Code = "API_ERROR"

	// Internal errors
	CodeInternal Code = "INTERNAL_ERROR"
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
// StatusError reports CodeAPI. Returns empty string for other error types.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	var se *StatusError
	if errors.As(err, &se) {
		return CodeAPI
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

// StatusError is returned when the provider answers with a non-success
// HTTP status (bad key, rate limit, server-side validation failure).
// It carries the status code and the provider's documented explanation.
type StatusError struct {
	Status  int    // HTTP status code from the provider
	Message string // Provider's documented reason for this status
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: status %d: %s", CodeAPI, e.Status, e.Message)
}
