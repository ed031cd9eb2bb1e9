// Package render defines the rendering collaborators used when saving a
// figure: a Figure produces image bytes for a requested format and an
// Engine supplies the current figure when the caller does not pass one.
package render

import (
	"context"
	"maps"
	"unicode/utf8"

	"github.com/refig/refig/internal/pngmeta"
)

// Supported output formats.
const (
	FormatPNG = "png"
	FormatSVG = "svg"
)

// FormatKey is the RenderConfig key holding the output format.
const FormatKey = "format"

// Figure renders itself into image bytes.
type Figure interface {
	Render(ctx context.Context, cfg RenderConfig) ([]byte, error)
}

// Engine supplies the current figure. CurrentFigure returns nil when there
// is nothing to render.
type Engine interface {
	CurrentFigure() Figure
}

// RenderConfig is the option bag passed to Figure.Render.
type RenderConfig map[string]any

// Format returns the requested output format, or "" when unset.
func (c RenderConfig) Format() string {
	s, _ := c[FormatKey].(string)
	return s
}

// WithDefaultFormat returns a copy of c with format set when c has none.
// The receiver is never modified.
func (c RenderConfig) WithDefaultFormat(format string) RenderConfig {
	out := make(RenderConfig, len(c)+1)
	maps.Copy(out, c)
	if _, ok := out[FormatKey]; !ok {
		out[FormatKey] = format
	}
	return out
}

// StaticEngine always returns the same figure.
type StaticEngine struct {
	Figure Figure
}

// CurrentFigure implements Engine.
func (e StaticEngine) CurrentFigure() Figure {
	return e.Figure
}

// BytesFigure is an already-rendered image held in memory.
type BytesFigure []byte

// Render implements Figure. The returned slice is a copy.
func (b BytesFigure) Render(context.Context, RenderConfig) ([]byte, error) {
	return append([]byte(nil), b...), nil
}

// Sniff reports the image kind of data: FormatPNG for a PNG stream,
// FormatSVG for UTF-8 text, or "" otherwise.
func Sniff(data []byte) string {
	switch {
	case pngmeta.IsPNGHeader(data):
		return FormatPNG
	case len(data) > 0 && utf8.Valid(data):
		return FormatSVG
	default:
		return ""
	}
}
