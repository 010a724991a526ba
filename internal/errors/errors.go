package errors

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// Exit codes for CLI applications.
const (
	// ExitSuccess indicates validation ran and produced no blocking findings.
	ExitSuccess = 0

	// ExitFindings indicates validation ran and produced blocking findings.
	ExitFindings = 1

	// ExitUser indicates a user-related error (invalid input, configuration, etc.).
	ExitUser = 2

	// ExitSystem indicates a system-related error (I/O, permissions, etc.).
	ExitSystem = 3
)

// Sentinel errors for common failure conditions.
var (
	// ErrUnknownValidator indicates a validator name in config that is not registered.
	ErrUnknownValidator = errors.New("unknown validator")

	// ErrInvalidConfig indicates configuration validation failed.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrNoDocuments indicates path discovery matched no documents.
	ErrNoDocuments = errors.New("no documents found")

	// ErrValidationFailed indicates one or more documents had blocking findings.
	ErrValidationFailed = errors.New("validation failed")
)

// ExitError wraps an error with an exit code and optional suggestion for CLI applications.
// It implements the error interface and supports unwrapping via errors.Unwrap.
type ExitError struct {
	// Err is the underlying error that caused the exit.
	Err error

	// Code is the exit code to return to the operating system.
	Code int

	// Suggestion is an optional actionable suggestion for the user.
	Suggestion string
}

// NewExitError creates an ExitError with the given underlying error and exit code.
// If err is nil, the returned ExitError will have a nil Err field.
func NewExitError(err error, code int) *ExitError {
	return &ExitError{
		Err:  err,
		Code: code,
	}
}

// NewUserError creates an ExitError with ExitUser code and a suggestion.
func NewUserError(err error, suggestion string) *ExitError {
	return &ExitError{
		Err:        err,
		Code:       ExitUser,
		Suggestion: suggestion,
	}
}

// NewSystemError creates an ExitError with ExitSystem code and a suggestion.
func NewSystemError(err error, suggestion string) *ExitError {
	return &ExitError{
		Err:        err,
		Code:       ExitSystem,
		Suggestion: suggestion,
	}
}

// NewFindingsError creates an ExitError with ExitFindings code.
// Used when validation completed but blocking findings exist.
func NewFindingsError(err error) *ExitError {
	return &ExitError{
		Err:  err,
		Code: ExitFindings,
	}
}

// Error returns the error message from the underlying error.
// If the underlying error is nil, it returns a generic message with the exit code.
func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit code %d", e.Code)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error, enabling errors.Is and errors.As
// to examine the error chain.
func (e *ExitError) Unwrap() error {
	return e.Err
}
