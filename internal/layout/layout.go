// Package layout computes where figures are written on disk.
//
//	<root>/latest/<name>
//	<root>/history/<stem>/_<timestamp>_<revision><ext>
package layout

import (
	"path/filepath"
	"strings"
	"time"
	"unicode"
)

// DefaultRoot is the figures directory relative to the working directory.
const DefaultRoot = "figures"

const (
	latestDir  = "latest"
	historyDir = "history"

	// TokenLayout is the timestamp layout used in history file names.
	TokenLayout = "20060102T150405"

	// NoRevision replaces the revision token when none is known.
	NoRevision = "nogit"

	revisionLength = 7
)

// Layout resolves figure paths below Root.
type Layout struct {
	Root string
}

// New returns a Layout rooted at root, or at DefaultRoot when root is empty.
func New(root string) Layout {
	if root == "" {
		root = DefaultRoot
	}
	return Layout{Root: root}
}

func (l Layout) root() string {
	if l.Root == "" {
		return DefaultRoot
	}
	return l.Root
}

// LatestDir is the directory holding the mutable copies.
func (l Layout) LatestDir() string {
	return filepath.Join(l.root(), latestDir)
}

// LatestPath is the mutable copy of the figure called name.
func (l Layout) LatestPath(name string) string {
	return filepath.Join(l.LatestDir(), filepath.Base(name))
}

// HistoryDir is the directory holding the snapshots of name.
func (l Layout) HistoryDir(name string) string {
	return filepath.Join(l.root(), historyDir, Stem(name))
}

// HistoryPath is the snapshot of name for the given tokens.
func (l Layout) HistoryPath(name, timestamp, revision string) string {
	return filepath.Join(l.HistoryDir(name), HistoryName(name, timestamp, revision))
}

// HistoryName is "_<timestamp>_<revision><ext>" with the extension lowercased.
func HistoryName(name, timestamp, revision string) string {
	return "_" + timestamp + "_" + revision + strings.ToLower(Ext(name))
}

// Ext is the extension of the base name of name. A base name made only of
// dots before its last dot, like ".png" or "..svg", has no extension.
func Ext(name string) string {
	base := filepath.Base(name)
	ext := filepath.Ext(base)
	if strings.Trim(strings.TrimSuffix(base, ext), ".") == "" {
		return ""
	}
	return ext
}

// Stem is the base name of name without its extension.
func Stem(name string) string {
	base := filepath.Base(name)
	return strings.TrimSuffix(base, Ext(base))
}

// isoLayouts are the ISO-8601 forms accepted for created_at values: basic
// or extended dates, a T or space separator, hour to nanosecond precision,
// and an optional Z, ±hh:mm, ±hhmm or ±hh offset. Layouts without a zone
// are interpreted as UTC.
var isoLayouts = func() []string {
	dates := []string{"2006-01-02", "20060102"}
	times := []string{"15:04:05.999999999", "15:04", "150405.999999999", "1504", "15"}
	zones := []string{"Z07:00", "Z0700", "Z07", ""}

	layouts := make([]string, 0, len(dates)*(2*len(times)*len(zones)+1))
	for _, date := range dates {
		for _, sep := range []string{"T", " "} {
			for _, clock := range times {
				for _, zone := range zones {
					layouts = append(layouts, date+sep+clock+zone)
				}
			}
		}
		layouts = append(layouts, date)
	}
	return layouts
}()

// TimestampToken turns a created_at value into the history file timestamp.
// Strings are parsed as ISO-8601; strings that do not parse keep only their
// letters and digits. Everything else, including empty results, uses now.
func TimestampToken(v any, now time.Time) string {
	switch value := v.(type) {
	case time.Time:
		return value.UTC().Format(TokenLayout)
	case string:
		if t, ok := parseISO(value); ok {
			return t.UTC().Format(TokenLayout)
		}
		if cleaned := alnum(value); cleaned != "" {
			return cleaned
		}
	}
	return now.UTC().Format(TokenLayout)
}

func parseISO(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func alnum(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return -1
	}, s)
}

// RevisionToken shortens a revision to its first seven characters, or
// returns NoRevision when v is not a non-empty string.
func RevisionToken(v any) string {
	s, ok := v.(string)
	if !ok {
		return NoRevision
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return NoRevision
	}
	runes := []rune(s)
	if len(runes) > revisionLength {
		runes = runes[:revisionLength]
	}
	return string(runes)
}
