// Package errors provides custom error types for the tagmatch system.
// These errors enable better error handling, programmatic error checking,
// and improved debugging throughout the application.
package errors

import (
	"errors"
	"fmt"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// Common sentinel errors for the tagmatch system
var (
	// ErrNotFound indicates that a requested resource was not found
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates that provided input was invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrRetrieval indicates that a manifest could not be fetched or parsed
	ErrRetrieval = errors.New("manifest retrieval failed")

	// ErrMalformedItem indicates a manifest item without a usable product name
	ErrMalformedItem = errors.New("malformed manifest item")

	// ErrIndexUnavailable indicates the catalog index is empty or unbuilt
	ErrIndexUnavailable = errors.New("catalog index unavailable")

	// ErrTimeout indicates that an operation timed out
	ErrTimeout = errors.New("operation timed out")

	// ErrCanceled indicates that an operation was canceled
	ErrCanceled = errors.New("operation canceled")
)

// RetrievalError represents a failure to fetch or decode an input manifest.
// No matching is attempted when this error is returned.
type RetrievalError struct {
	Source  string // URL or file path the manifest came from
	Message string
	Err     error
}

// Error implements the error interface
func (e *RetrievalError) Error() string {
	if e.Source != "" {
		return fmt.Sprintf("failed to retrieve manifest from %s: %s", e.Source, e.Message)
	}
	return fmt.Sprintf("failed to retrieve manifest: %s", e.Message)
}

// Unwrap implements errors.Unwrap
func (e *RetrievalError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *RetrievalError) Is(target error) bool {
	return target == ErrRetrieval
}

// NewRetrievalError creates a new RetrievalError
func NewRetrievalError(source string, err error) *RetrievalError {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &RetrievalError{Source: source, Message: message, Err: err}
}

// MalformedItemError represents a manifest item that cannot be matched
// because it lacks a usable product name. The item still produces a
// fallback result; the run continues.
type MalformedItemError struct {
	Index   int // position of the item in the manifest
	Message string
}

// Error implements the error interface
func (e *MalformedItemError) Error() string {
	return fmt.Sprintf("manifest item %d is malformed: %s", e.Index, e.Message)
}

// Is implements errors.Is support
func (e *MalformedItemError) Is(target error) bool {
	return target == ErrMalformedItem
}

// NewMalformedItemError creates a new MalformedItemError
func NewMalformedItemError(index int, message string) *MalformedItemError {
	return &MalformedItemError{Index: index, Message: message}
}

// IndexUnavailableError indicates the catalog index could not serve a run.
// Matching degrades to fallback-only rather than failing.
type IndexUnavailableError struct {
	Version string
	Message string
}

// Error implements the error interface
func (e *IndexUnavailableError) Error() string {
	if e.Version != "" {
		return fmt.Sprintf("catalog index for version %s unavailable: %s", e.Version, e.Message)
	}
	return fmt.Sprintf("catalog index unavailable: %s", e.Message)
}

// Is implements errors.Is support
func (e *IndexUnavailableError) Is(target error) bool {
	return target == ErrIndexUnavailable
}

// NewIndexUnavailableError creates a new IndexUnavailableError
func NewIndexUnavailableError(version, message string) *IndexUnavailableError {
	return &IndexUnavailableError{Version: version, Message: message}
}

// ValidationError represents a validation failure
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// Is implements errors.Is support
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError
func NewValidationError(field string, value interface{}, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

// ParseError represents an error when parsing data formats
type ParseError struct {
	Format  string // "json", "yaml", "csv", etc.
	File    string
	Line    int
	Message string
	Err     error
}

// Error implements the error interface
func (e *ParseError) Error() string {
	if e.File != "" && e.Line > 0 {
		return fmt.Sprintf("parse error in %s at %s:%d: %s", e.Format, e.File, e.Line, e.Message)
	}
	if e.File != "" {
		return fmt.Sprintf("parse error in %s file %s: %s", e.Format, e.File, e.Message)
	}
	return fmt.Sprintf("%s parse error: %s", e.Format, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ParseError) Unwrap() error {
	return e.Err
}

// NewParseError creates a new ParseError
func NewParseError(format, file string, message string, err error) *ParseError {
	return &ParseError{
		Format:  format,
		File:    file,
		Message: message,
		Err:     err,
	}
}

// IOError represents an error during I/O operations
type IOError struct {
	Operation string // "read", "write", "open", "close"
	Path      string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("IO error during %s of %s: %s", e.Operation, e.Path, e.Message)
	}
	return fmt.Sprintf("IO error during %s: %s", e.Operation, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *IOError) Unwrap() error {
	return e.Err
}

// NewIOError creates a new IOError
func NewIOError(operation, path string, err error) *IOError {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &IOError{
		Operation: operation,
		Path:      path,
		Message:   message,
		Err:       err,
	}
}

// Helper functions for error checking

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsRetrieval checks if an error is a manifest retrieval error
func IsRetrieval(err error) bool {
	return errors.Is(err, ErrRetrieval)
}

// IsMalformedItem checks if an error marks an unusable manifest item
func IsMalformedItem(err error) bool {
	return errors.Is(err, ErrMalformedItem)
}

// IsIndexUnavailable checks if an error marks a missing catalog index
func IsIndexUnavailable(err error) bool {
	return errors.Is(err, ErrIndexUnavailable)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsTimeout checks if an error is a timeout error
func IsTimeout(err error) bool {
	return errors.Is(err, ErrTimeout)
}

// IsCanceled checks if an error is a cancellation error
func IsCanceled(err error) bool {
	return errors.Is(err, ErrCanceled)
}

// Helper wrapping functions for common patterns

// WrapIO wraps an error as an IOError
func WrapIO(operation, path string, err error) error {
	if err == nil {
		return nil
	}
	return NewIOError(operation, path, err)
}

// WrapParse wraps an error as a ParseError
func WrapParse(format, file string, err error) error {
	if err == nil {
		return nil
	}
	return NewParseError(format, file, err.Error(), err)
}

// WrapRetrieval wraps an error as a RetrievalError
func WrapRetrieval(source string, err error) error {
	if err == nil {
		return nil
	}
	return NewRetrievalError(source, err)
}
