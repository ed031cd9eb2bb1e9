// Package refig saves rendered figures with embedded provenance metadata.
//
// Each save writes two copies of the image: a mutable one under
// <root>/latest and an immutable snapshot under <root>/history/<stem>.
// Both carry a JSON record (creation time, calling source file, execution
// counter, git revision and refig version) stored inside the image itself,
// in a PNG tEXt chunk or an SVG <metadata> element. Load reads it back.
package refig

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/refig/refig/internal/compose"
	rerrors "github.com/refig/refig/internal/errors"
	"github.com/refig/refig/internal/layout"
	"github.com/refig/refig/internal/record"
	"github.com/refig/refig/internal/render"
)

// Record is a provenance metadata record.
type Record = record.Record

// Rendering collaborators.
type (
	Figure       = render.Figure
	Engine       = render.Engine
	RenderConfig = render.RenderConfig
)

// Errors returned by Save and Load.
type (
	FormatError            = rerrors.FormatError
	UnsupportedFormatError = rerrors.UnsupportedFormatError
	ConfigurationError     = rerrors.ConfigurationError
	EmbeddingError         = rerrors.EmbeddingError
	LoadError              = rerrors.LoadError
)

// Sentinels matched by the error types above through errors.Is.
var (
	ErrFormat            = rerrors.ErrFormat
	ErrUnsupportedFormat = rerrors.ErrUnsupportedFormat
	ErrConfiguration     = rerrors.ErrConfiguration
	ErrEmbedding         = rerrors.ErrEmbedding
	ErrLoad              = rerrors.ErrLoad
	ErrNotFound          = rerrors.ErrNotFound
)

// SupportedExtensions lists the figure extensions Save accepts.
var SupportedExtensions = []string{".png", ".svg"}

var formats = map[string]string{
	".png": render.FormatPNG,
	".svg": render.FormatSVG,
}

// Client saves figures below a root directory.
type Client struct {
	engine   Engine
	layout   layout.Layout
	composer *compose.Composer
	logger   *log.Logger
	now      func() time.Time
}

// Option configures a Client.
type Option func(*Client)

// WithEngine sets the engine that supplies the current figure when Save
// is called without WithFigure.
func WithEngine(e Engine) Option {
	return func(c *Client) { c.engine = e }
}

// WithRoot sets the figures root directory. The default is "figures"
// relative to the working directory.
func WithRoot(root string) Option {
	return func(c *Client) { c.layout = layout.New(root) }
}

// WithComposer replaces the metadata composer.
func WithComposer(comp *compose.Composer) Option {
	return func(c *Client) { c.composer = comp }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *log.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithClock sets the time source used for created_at and history names.
func WithClock(now func() time.Time) Option {
	return func(c *Client) { c.now = now }
}

// New returns a Client. Without options it writes below ./figures and
// fills metadata from the call stack, the environment and git.
func New(opts ...Option) *Client {
	c := &Client{
		layout: layout.New(""),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = log.New(io.Discard)
	}
	if c.now == nil {
		c.now = time.Now
	}
	if c.composer == nil {
		c.composer = compose.New(
			compose.WithClock(c.now),
			compose.WithRevision(compose.GitRevision{Logger: c.logger}),
			compose.WithLogger(c.logger),
		)
	}
	return c
}

// Root returns the figures root directory.
func (c *Client) Root() string {
	return c.layout.Root
}

// SaveResult describes a completed save.
type SaveResult struct {
	latestPath  string
	historyPath string
	metadata    Record
}

// LatestPath is the path of the mutable copy.
func (r SaveResult) LatestPath() string { return r.latestPath }

// HistoryPath is the path of the timestamped snapshot.
func (r SaveResult) HistoryPath() string { return r.historyPath }

// Metadata returns a copy of the record embedded in both files.
func (r SaveResult) Metadata() Record { return r.metadata.Clone() }
