package refig

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	rerrors "github.com/refig/refig/internal/errors"
	"github.com/refig/refig/internal/layout"
	"github.com/refig/refig/internal/pngmeta"
	"github.com/refig/refig/internal/record"
	"github.com/refig/refig/internal/render"
	"github.com/refig/refig/internal/svgmeta"
)

type saveOptions struct {
	figure   Figure
	metadata map[string]any
	config   RenderConfig
}

// SaveOption configures a single Save call.
type SaveOption func(*saveOptions)

// WithFigure renders fig instead of the engine's current figure.
func WithFigure(fig Figure) SaveOption {
	return func(o *saveOptions) { o.figure = fig }
}

// WithMetadata adds keys to the record. They override default keys.
func WithMetadata(extra map[string]any) SaveOption {
	return func(o *saveOptions) { o.metadata = extra }
}

// WithRenderConfig passes options to Figure.Render. The format option is
// filled from the name's extension when absent.
func WithRenderConfig(cfg RenderConfig) SaveOption {
	return func(o *saveOptions) { o.config = cfg }
}

// Save renders a figure, embeds a metadata record and writes it to
// <root>/latest/<name> and <root>/history/<stem>/_<timestamp>_<revision><ext>.
//
// The extension of name selects the format and must be .png or .svg.
// Nothing is written when rendering or embedding fails. The two writes are
// independent: if the history write fails the latest copy stays in place.
func (c *Client) Save(ctx context.Context, name string, opts ...SaveOption) (SaveResult, error) {
	ext := strings.ToLower(layout.Ext(name))
	format, ok := formats[ext]
	if !ok {
		return SaveResult{}, &UnsupportedFormatError{Ext: ext, Supported: SupportedExtensions}
	}

	var o saveOptions
	for _, opt := range opts {
		opt(&o)
	}

	fig, err := c.resolveFigure(o.figure)
	if err != nil {
		return SaveResult{}, err
	}

	logger := c.logger.With("figure", filepath.Base(name))
	logger.Debug("rendering", "format", format)

	data, err := fig.Render(ctx, o.config.WithDefaultFormat(format))
	if err != nil {
		return SaveResult{}, fmt.Errorf("rendering %s: %w", name, err)
	}

	rec := c.composer.Compose(ctx, name, o.metadata)

	if hasMetadata(format, data) {
		logger.Debug("replacing embedded metadata", "format", format)
	}
	embedded, err := embed(format, data, rec)
	if err != nil {
		return SaveResult{}, &EmbeddingError{Format: format, Err: err}
	}

	latest := c.layout.LatestPath(name)
	history := c.layout.HistoryPath(name,
		layout.TimestampToken(rec[record.KeyCreatedAt], c.now()),
		layout.RevisionToken(rec[record.KeyGitCommit]),
	)

	if err := writeFile(latest, embedded); err != nil {
		return SaveResult{}, err
	}
	if err := writeFile(history, embedded); err != nil {
		return SaveResult{}, err
	}

	logger.Info("saved figure", "latest", latest, "history", history)
	return SaveResult{latestPath: latest, historyPath: history, metadata: rec}, nil
}

func (c *Client) resolveFigure(fig Figure) (Figure, error) {
	if fig != nil {
		return fig, nil
	}
	if c.engine == nil {
		return nil, &ConfigurationError{Message: "no figure to save: pass one with WithFigure or configure an Engine"}
	}
	fig = c.engine.CurrentFigure()
	if fig == nil {
		return nil, &ConfigurationError{Message: "the rendering engine has no current figure"}
	}
	return fig, nil
}

func embed(format string, data []byte, rec record.Record) ([]byte, error) {
	switch format {
	case render.FormatPNG:
		return pngmeta.Embed(data, rec)
	case render.FormatSVG:
		return svgmeta.Embed(data, rec)
	default:
		return nil, rerrors.NewFormatError(format, "no codec for format", nil)
	}
}

// hasMetadata reports whether the rendered data already carries a record.
func hasMetadata(format string, data []byte) bool {
	switch format {
	case render.FormatPNG:
		return pngmeta.Has(data)
	case render.FormatSVG:
		return svgmeta.Count(data) > 0
	default:
		return false
	}
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// Save saves a figure with a default Client.
func Save(ctx context.Context, name string, opts ...SaveOption) (SaveResult, error) {
	return New().Save(ctx, name, opts...)
}
