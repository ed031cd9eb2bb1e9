// Package errors provides the error taxonomy shared by the refig library and CLI.
package errors

import (
	"fmt"
	"strings"
)

// FormatError reports a malformed or unrecognized image container: a
// missing signature, a missing root element, undecodable text, broken
// block framing, or a missing or empty metadata block.
type FormatError struct {
	// Format is the container kind being processed ("png" or "svg").
	Format string

	// Message is the specific description.
	Message string

	// Err is the underlying error (optional).
	Err error
}

// NewFormatError creates a FormatError for the given container kind.
func NewFormatError(format, message string, cause error) *FormatError {
	return &FormatError{Format: format, Message: message, Err: cause}
}

// Error implements the error interface.
func (e *FormatError) Error() string {
	msg := e.Format + ": " + e.Message
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying error.
func (e *FormatError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrFormat.
func (e *FormatError) Is(target error) bool {
	return target == ErrFormat
}

// UnsupportedFormatError reports a figure name whose extension is not one
// of the supported image kinds.
type UnsupportedFormatError struct {
	// Ext is the lower-cased extension that was rejected, including the dot.
	Ext string

	// Supported lists the accepted extensions.
	Supported []string
}

// Error implements the error interface.
func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported file extension %q. Supported: %s", e.Ext, strings.Join(e.Supported, ", "))
}

// Is reports whether target is ErrUnsupportedFormat.
func (e *UnsupportedFormatError) Is(target error) bool {
	return target == ErrUnsupportedFormat
}

// ConfigurationError reports that no figure was supplied and none could be
// obtained from a rendering engine.
type ConfigurationError struct {
	Message string
}

// Error implements the error interface.
func (e *ConfigurationError) Error() string {
	return e.Message
}

// Is reports whether target is ErrConfiguration.
func (e *ConfigurationError) Is(target error) bool {
	return target == ErrConfiguration
}

// EmbeddingError wraps a codec failure raised while saving a figure.
type EmbeddingError struct {
	Format string
	Err    error
}

// Error implements the error interface.
func (e *EmbeddingError) Error() string {
	return fmt.Sprintf("failed to embed metadata into %s output: %v", e.Format, e.Err)
}

// Unwrap returns the codec error.
func (e *EmbeddingError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrEmbedding.
func (e *EmbeddingError) Is(target error) bool {
	return target == ErrEmbedding
}

// LoadError wraps a codec failure raised while reading metadata from Path.
type LoadError struct {
	Path string
	Err  error
}

// Error implements the error interface.
func (e *LoadError) Error() string {
	return fmt.Sprintf("unable to read refig metadata from %s: %v", e.Path, e.Err)
}

// Unwrap returns the codec error.
func (e *LoadError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrLoad.
func (e *LoadError) Is(target error) bool {
	return target == ErrLoad
}

// Wrap wraps an error with a sentinel error type.
func Wrap(sentinel error, message string) error {
	return fmt.Errorf("%s: %w", message, sentinel)
}
