package errors

import "errors"

// Sentinel errors for known conditions.
var (
	// ErrFormat indicates a malformed or unrecognized image container.
	ErrFormat = errors.New("format error")

	// ErrUnsupportedFormat indicates a file extension outside the supported set.
	ErrUnsupportedFormat = errors.New("unsupported format")

	// ErrConfiguration indicates that no figure could be obtained for rendering.
	ErrConfiguration = errors.New("configuration error")

	// ErrEmbedding indicates that metadata could not be embedded during a save.
	ErrEmbedding = errors.New("embedding failed")

	// ErrLoad indicates that metadata could not be read back from a file.
	ErrLoad = errors.New("load failed")

	// ErrNotFound indicates a figure or file was not found.
	ErrNotFound = errors.New("not found")
)
