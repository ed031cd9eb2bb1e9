package layout

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/zeebo/blake3"

	rerrors "github.com/refig/refig/internal/errors"
)

// Snapshot describes one file in a figure's history directory.
type Snapshot struct {
	Path string
	// Timestamp is the raw token from the file name. Time is set when the
	// token parses with TokenLayout.
	Timestamp string
	Time      time.Time
	Revision  string
	Size      int64
	// Digest is the hex BLAKE3 hash of the file contents.
	Digest string
	// Latest is true when the snapshot matches the current latest copy.
	Latest bool
}

// ShortDigest returns the first 12 hex characters of the digest.
func (s Snapshot) ShortDigest() string {
	if len(s.Digest) <= 12 {
		return s.Digest
	}
	return s.Digest[:12]
}

// ParseHistoryName splits "_<timestamp>_<revision><ext>" into its tokens.
func ParseHistoryName(base string) (timestamp, revision string, ok bool) {
	rest, found := strings.CutPrefix(base, "_")
	if !found {
		return "", "", false
	}
	rest = strings.TrimSuffix(rest, filepath.Ext(rest))
	timestamp, revision, found = strings.Cut(rest, "_")
	if !found || timestamp == "" || revision == "" {
		return "", "", false
	}
	return timestamp, revision, true
}

// Snapshots lists the history of name, oldest first. Files that do not
// follow the history naming scheme are skipped. A missing history
// directory is reported as not found.
func (l Layout) Snapshots(name string) ([]Snapshot, error) {
	dir := l.HistoryDir(name)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, rerrors.Wrap(rerrors.ErrNotFound, fmt.Sprintf("no history for %s in %s", filepath.Base(name), dir))
		}
		return nil, fmt.Errorf("reading history directory %s: %w", dir, err)
	}

	latest, err := Digest(l.LatestPath(name))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	var snapshots []Snapshot
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ts, rev, ok := ParseHistoryName(entry.Name())
		if !ok {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", entry.Name(), err)
		}
		path := filepath.Join(dir, entry.Name())
		digest, err := Digest(path)
		if err != nil {
			return nil, err
		}
		s := Snapshot{
			Path:      path,
			Timestamp: ts,
			Revision:  rev,
			Size:      info.Size(),
			Digest:    digest,
			Latest:    latest != "" && digest == latest,
		}
		if t, err := time.Parse(TokenLayout, ts); err == nil {
			s.Time = t
		}
		snapshots = append(snapshots, s)
	}

	sort.Slice(snapshots, func(i, j int) bool {
		return snapshots[i].Path < snapshots[j].Path
	})
	return snapshots, nil
}

// Digest returns the hex BLAKE3 hash of the file at path.
func Digest(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	hasher := blake3.New()
	if _, err := io.Copy(hasher, f); err != nil {
		return "", fmt.Errorf("hashing %s: %w", path, err)
	}
	return hex.EncodeToString(hasher.Sum(nil)), nil
}
