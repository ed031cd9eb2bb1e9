// Package compose assembles the provenance record stored in each figure.
package compose

import (
	"context"
	"io"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/refig/refig/internal/record"
)

const (
	timestampLayout      = "2006-01-02T15:04:05-07:00"
	timestampMicroLayout = "2006-01-02T15:04:05.000000-07:00"
)

// Composer builds metadata records from its providers. The zero value is
// not usable; construct one with New.
type Composer struct {
	clock    func() time.Time
	source   SourceProvider
	cell     CellProvider
	revision RevisionProvider
	version  VersionProvider
	logger   *log.Logger
}

// Option configures a Composer.
type Option func(*Composer)

// WithClock sets the time source for created_at.
func WithClock(clock func() time.Time) Option {
	return func(c *Composer) { c.clock = clock }
}

// WithSource sets the provider for the source key.
func WithSource(p SourceProvider) Option {
	return func(c *Composer) { c.source = p }
}

// WithCell sets the provider for the cell_number key.
func WithCell(p CellProvider) Option {
	return func(c *Composer) { c.cell = p }
}

// WithRevision sets the provider for the git_commit key.
func WithRevision(p RevisionProvider) Option {
	return func(c *Composer) { c.revision = p }
}

// WithVersion sets the provider for the refig_version key.
func WithVersion(p VersionProvider) Option {
	return func(c *Composer) { c.version = p }
}

// WithLogger sets the logger used to report absent values.
func WithLogger(l *log.Logger) Option {
	return func(c *Composer) { c.logger = l }
}

// New returns a Composer using the process defaults: the call stack for
// source, REFIG_CELL_NUMBER for the cell counter, git for the revision
// and the build info for the version.
func New(opts ...Option) *Composer {
	c := &Composer{
		clock:    time.Now,
		source:   CallerSource{},
		cell:     EnvCell{},
		revision: GitRevision{},
		version:  BuildVersion{},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = log.New(io.Discard)
	}
	if c.clock == nil {
		c.clock = time.Now
	}
	return c
}

// Compose returns a record for the figure called name. Every default key
// is present; values a provider could not supply are nil. Keys in extra
// are merged last and win over defaults.
func (c *Composer) Compose(ctx context.Context, name string, extra map[string]any) record.Record {
	rec := record.Record{
		record.KeyFigure:       filepath.Base(name),
		record.KeyCreatedAt:    FormatTimestamp(c.clock()),
		record.KeySource:       nil,
		record.KeyCellNumber:   nil,
		record.KeyGitCommit:    nil,
		record.KeyRefigVersion: nil,
	}

	if c.source != nil {
		if src, ok := c.source.Source(); ok {
			rec[record.KeySource] = src
		} else {
			c.logger.Debug("source file unavailable")
		}
	}
	if c.cell != nil {
		if n, ok := c.cell.Cell(); ok {
			rec[record.KeyCellNumber] = n
		} else {
			c.logger.Debug("execution counter unavailable")
		}
	}
	if c.revision != nil {
		if rev, ok := c.revision.Revision(ctx); ok {
			rec[record.KeyGitCommit] = rev
		} else {
			c.logger.Debug("git revision unavailable")
		}
	}
	if c.version != nil {
		if v, ok := c.version.Version(); ok {
			rec[record.KeyRefigVersion] = v
		} else {
			c.logger.Debug("refig version unavailable")
		}
	}

	return rec.Merge(extra)
}

// FormatTimestamp renders t in UTC with an explicit +00:00 offset.
// Fractional seconds appear at microsecond precision only when non-zero.
func FormatTimestamp(t time.Time) string {
	t = t.UTC().Truncate(time.Microsecond)
	if t.Nanosecond() == 0 {
		return t.Format(timestampLayout)
	}
	return t.Format(timestampMicroLayout)
}
