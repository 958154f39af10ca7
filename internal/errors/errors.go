package errors

import (
	"errors"
	"fmt"
)

// CheckError is the structured error type for compcheck.
// It provides rich context for error handling, logging, and user presentation.
type CheckError struct {
	// Code is the unique error code (e.g., "ERR_301_PROBE_UNAVAILABLE").
	Code string

	// Message is the human-readable error message.
	Message string

	// Category is the error category (Config, IO, Probe, etc.).
	Category Category

	// Severity is the error severity level.
	Severity Severity

	// Details contains additional context as key-value pairs.
	Details map[string]string

	// Cause is the underlying error that caused this error.
	Cause error

	// Retryable indicates if the operation can be retried.
	Retryable bool

	// Suggestion is an actionable suggestion for the user.
	Suggestion string
}

// Error implements the error interface.
func (e *CheckError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for error chain support.
func (e *CheckError) Unwrap() error {
	return e.Cause
}

// Is checks if this error matches the target error by code.
// This enables errors.Is() to work with CheckError.
func (e *CheckError) Is(target error) bool {
	if t, ok := target.(*CheckError); ok {
		return e.Code == t.Code
	}
	return false
}

// WithDetail adds a key-value detail to the error.
// Returns the error for method chaining.
func (e *CheckError) WithDetail(key, value string) *CheckError {
	if e.Details == nil {
		e.Details = make(map[string]string)
	}
	e.Details[key] = value
	return e
}

// WithSuggestion adds an actionable suggestion for the user.
// Returns the error for method chaining.
func (e *CheckError) WithSuggestion(suggestion string) *CheckError {
	e.Suggestion = suggestion
	return e
}

// New creates a new CheckError with the given code and message.
// Category, severity, and retryable flag are derived from the code.
func New(code string, message string, cause error) *CheckError {
	return &CheckError{
		Code:      code,
		Message:   message,
		Category:  categoryFromCode(code),
		Severity:  severityFromCode(code),
		Cause:     cause,
		Retryable: isRetryableCode(code),
	}
}

// Wrap creates a CheckError from an existing error.
// The error's message becomes the CheckError message.
func Wrap(code string, err error) *CheckError {
	if err == nil {
		return nil
	}
	return New(code, err.Error(), err)
}

// ConfigError creates a configuration-related error.
func ConfigError(message string, cause error) *CheckError {
	return New(ErrCodeConfigInvalid, message, cause)
}

// ProbeError creates a probe failure for the named OS facility.
func ProbeError(code, facility, message string, cause error) *CheckError {
	return New(code, message, cause).WithDetail("facility", facility)
}

// ExportError creates a report export failure.
func ExportError(path string, cause error) *CheckError {
	msg := "failed to export report"
	if cause != nil {
		msg = fmt.Sprintf("failed to export report: %v", cause)
	}
	return New(ErrCodeExportFailed, msg, cause).WithDetail("path", path)
}

// ValidationError creates a validation-related error.
func ValidationError(message string, cause error) *CheckError {
	return New(ErrCodeInvalidInput, message, cause)
}

// InternalError creates an internal error.
func InternalError(message string, cause error) *CheckError {
	return New(ErrCodeInternal, message, cause)
}

// IsRetryable checks if an error is retryable.
// Returns true if the error chain holds a CheckError with Retryable set.
func IsRetryable(err error) bool {
	var ce *CheckError
	if errors.As(err, &ce) {
		return ce.Retryable
	}
	return false
}

// IsProbe reports whether err is a probe failure.
func IsProbe(err error) bool {
	return GetCategory(err) == CategoryProbe
}

// GetCode extracts the error code from a CheckError.
// Returns empty string if err holds no CheckError.
func GetCode(err error) string {
	var ce *CheckError
	if errors.As(err, &ce) {
		return ce.Code
	}
	return ""
}

// GetCategory extracts the category from a CheckError.
// Returns empty string if err holds no CheckError.
func GetCategory(err error) Category {
	var ce *CheckError
	if errors.As(err, &ce) {
		return ce.Category
	}
	return ""
}
