package errors

import (
	"errors"
	"strconv"
)

// Exit codes returned by the refig CLI.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitGeneralError indicates an unspecified error occurred.
	ExitGeneralError = 1

	// ExitFormatError indicates an unreadable container or unsupported extension.
	ExitFormatError = 2

	// ExitConfigurationError indicates no figure or renderer was available.
	ExitConfigurationError = 3

	// ExitMetadataError indicates metadata could not be embedded or loaded.
	ExitMetadataError = 4

	// ExitNotFound indicates a figure or file was not found.
	ExitNotFound = 5
)

// ExitError wraps an error with an exit code.
type ExitError struct {
	// Err is the underlying error.
	Err error

	// Code is the process exit code.
	Code int

	// Printed is true when the command already reported the error to the user.
	Printed bool
}

// Error implements the error interface.
func (e *ExitError) Error() string {
	if e.Err == nil {
		return "exit status " + strconv.Itoa(e.Code)
	}
	return e.Err.Error()
}

// Unwrap returns the wrapped error.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates a new ExitError with the given error and exit code.
func NewExitError(err error, code int) *ExitError {
	return &ExitError{Err: err, Code: code}
}

// ExitCodeFromError determines the appropriate exit code for an error.
func ExitCodeFromError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	// Embedding and load failures wrap a format error, so check them first.
	switch {
	case errors.Is(err, ErrEmbedding), errors.Is(err, ErrLoad):
		return ExitMetadataError
	case errors.Is(err, ErrFormat), errors.Is(err, ErrUnsupportedFormat):
		return ExitFormatError
	case errors.Is(err, ErrConfiguration):
		return ExitConfigurationError
	case errors.Is(err, ErrNotFound):
		return ExitNotFound
	default:
		return ExitGeneralError
	}
}

