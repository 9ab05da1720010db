// Package errors provides structured error types for the gostac library.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the object model and the JSON mapping
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Value validation failures at construction or mutation time
//   - SCHEMA: Structural failures while decoding a STAC JSON document
//   - DUPLICATE_ID: Sibling identifier collisions in the catalog tree
//   - NOT_FOUND: Lookup or removal of a nonexistent entity
//   - OBSERVER_NOTIFY: One or more observers failed during a notification
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidValue, "bbox min %f exceeds max %f", min, max)
//	if errors.Is(err, errors.ErrCodeInvalidValue) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeSchema, origErr, "collection %q: extent", id)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Value validation errors
	ErrCodeInvalidValue    Code = "INVALID_VALUE"
	ErrCodeInvalidID       Code = "INVALID_ID"
	ErrCodeInvalidHref     Code = "INVALID_HREF"
	ErrCodeInvalidDatetime Code = "INVALID_DATETIME"
	ErrCodeInvalidBBox     Code = "INVALID_BBOX"
	ErrCodeInvalidGeometry Code = "INVALID_GEOMETRY"

	// Document structure errors during decode
	ErrCodeSchema Code = "SCHEMA"

	// Catalog tree errors
	ErrCodeDuplicateID Code = "DUPLICATE_ID"
	ErrCodeNotFound    Code = "NOT_FOUND"

	// Notification fan-out errors
	ErrCodeObserverNotify Code = "OBSERVER_NOTIFY"

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

// IsValidation reports whether err carries any of the INVALID_* codes.
func IsValidation(err error) bool {
	switch GetCode(err) {
	case ErrCodeInvalidValue, ErrCodeInvalidID, ErrCodeInvalidHref,
		ErrCodeInvalidDatetime, ErrCodeInvalidBBox, ErrCodeInvalidGeometry:
		return true
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
