//nolint:revive // Package name matches the package it tests
package errors

import (
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSentinelErrors(t *testing.T) {
	all := []error{ErrFormat, ErrUnsupportedFormat, ErrConfiguration, ErrEmbedding, ErrLoad, ErrNotFound}
	for i := range all {
		for j := range all {
			if i != j {
				assert.NotEqual(t, all[i], all[j])
			}
		}
	}
}

func TestFormatError(t *testing.T) {
	err := NewFormatError("png", "input does not look like a PNG image", nil)

	assert.True(t, errors.Is(err, ErrFormat))
	assert.False(t, errors.Is(err, ErrLoad))
	assert.Equal(t, "png: input does not look like a PNG image", err.Error())

	withCause := NewFormatError("svg", "invalid metadata payload", io.ErrUnexpectedEOF)
	assert.True(t, errors.Is(withCause, io.ErrUnexpectedEOF))
	assert.Contains(t, withCause.Error(), "unexpected EOF")
}

func TestUnsupportedFormatError(t *testing.T) {
	err := &UnsupportedFormatError{Ext: ".jpg", Supported: []string{".png", ".svg"}}

	assert.True(t, errors.Is(err, ErrUnsupportedFormat))
	assert.Contains(t, err.Error(), `".jpg"`)
	assert.Contains(t, err.Error(), ".png, .svg")
}

func TestEmbeddingErrorUnwrap(t *testing.T) {
	cause := NewFormatError("svg", "no root element", nil)
	err := &EmbeddingError{Format: "svg", Err: cause}

	assert.True(t, errors.Is(err, ErrEmbedding))
	assert.True(t, errors.Is(err, ErrFormat))

	var formatErr *FormatError
	require.True(t, errors.As(err, &formatErr))
	assert.Equal(t, "svg", formatErr.Format)
}

func TestLoadErrorUnwrap(t *testing.T) {
	cause := NewFormatError("png", "no refig metadata found", nil)
	err := fmt.Errorf("meta: %w", &LoadError{Path: "figures/latest/plot.png", Err: cause})

	assert.True(t, errors.Is(err, ErrLoad))
	assert.True(t, errors.Is(err, ErrFormat))

	var loadErr *LoadError
	require.True(t, errors.As(err, &loadErr))
	assert.Equal(t, "figures/latest/plot.png", loadErr.Path)
	assert.Contains(t, err.Error(), "figures/latest/plot.png")
}

func TestConfigurationError(t *testing.T) {
	err := &ConfigurationError{Message: "no current figure"}
	assert.True(t, errors.Is(err, ErrConfiguration))
	assert.Equal(t, "no current figure", err.Error())
}

func TestWrap(t *testing.T) {
	wrapped := Wrap(ErrNotFound, "figure plot.png")

	assert.True(t, errors.Is(wrapped, ErrNotFound))
	assert.Contains(t, wrapped.Error(), "figure plot.png")
}

func TestExitCodeFromError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{name: "nil error returns success", err: nil, wantCode: ExitSuccess},
		{name: "format error", err: NewFormatError("png", "bad", nil), wantCode: ExitFormatError},
		{name: "unsupported format", err: &UnsupportedFormatError{Ext: ".gif"}, wantCode: ExitFormatError},
		{name: "configuration error", err: &ConfigurationError{Message: "x"}, wantCode: ExitConfigurationError},
		{
			name:     "embedding error wins over wrapped format error",
			err:      &EmbeddingError{Format: "png", Err: NewFormatError("png", "bad", nil)},
			wantCode: ExitMetadataError,
		},
		{
			name:     "load error wins over wrapped format error",
			err:      &LoadError{Path: "a.svg", Err: NewFormatError("svg", "bad", nil)},
			wantCode: ExitMetadataError,
		},
		{name: "not found", err: Wrap(ErrNotFound, "missing"), wantCode: ExitNotFound},
		{name: "explicit exit error", err: NewExitError(errors.New("differs"), 7), wantCode: 7},
		{name: "unknown error returns general error", err: errors.New("boom"), wantCode: ExitGeneralError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantCode, ExitCodeFromError(tt.err))
		})
	}
}

func TestExitErrorMessage(t *testing.T) {
	assert.Equal(t, "exit status 1", (&ExitError{Code: 1}).Error())
	assert.Equal(t, "boom", NewExitError(errors.New("boom"), 1).Error())
}
