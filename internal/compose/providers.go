package compose

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/refig/refig/internal/version"
)

// SourceProvider reports the file that requested the save.
type SourceProvider interface {
	Source() (string, bool)
}

// CellProvider reports the execution counter of an interactive host.
type CellProvider interface {
	Cell() (int, bool)
}

// RevisionProvider reports the full version-control revision of the
// working tree.
type RevisionProvider interface {
	Revision(ctx context.Context) (string, bool)
}

// VersionProvider reports the installed refig version.
type VersionProvider interface {
	Version() (string, bool)
}

// SourceFunc adapts a function to SourceProvider.
type SourceFunc func() (string, bool)

// Source implements SourceProvider.
func (f SourceFunc) Source() (string, bool) { return f() }

// CellFunc adapts a function to CellProvider.
type CellFunc func() (int, bool)

// Cell implements CellProvider.
func (f CellFunc) Cell() (int, bool) { return f() }

// RevisionFunc adapts a function to RevisionProvider.
type RevisionFunc func(ctx context.Context) (string, bool)

// Revision implements RevisionProvider.
func (f RevisionFunc) Revision(ctx context.Context) (string, bool) { return f(ctx) }

// VersionFunc adapts a function to VersionProvider.
type VersionFunc func() (string, bool)

// Version implements VersionProvider.
func (f VersionFunc) Version() (string, bool) { return f() }

// None is a provider that never has a value. It satisfies every provider
// interface.
type None struct{}

func (None) Source() (string, bool) { return "", false }
func (None) Cell() (int, bool) { return 0, false }
func (None) Revision(context.Context) (string, bool) { return "", false }
func (None) Version() (string, bool) { return "", false }

// DefaultCellEnv is the environment variable an interactive host sets to
// the current execution counter.
const DefaultCellEnv = "REFIG_CELL_NUMBER"

// EnvCell reads the execution counter from an environment variable. It has
// no value outside an interactive host or when the variable is not an
// integer.
type EnvCell struct {
	// Name is the variable to read. Empty means DefaultCellEnv.
	Name string
}

// Cell implements CellProvider.
func (e EnvCell) Cell() (int, bool) {
	name := e.Name
	if name == "" {
		name = DefaultCellEnv
	}
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return 0, false
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return n, true
}

// GitRevision asks git for the commit checked out in Dir. A missing
// binary, a non-zero exit, or empty output means no revision.
type GitRevision struct {
	// Dir is the working directory for git. Empty means the process
	// working directory.
	Dir string

	// Command is the git executable. Empty means "git" from PATH.
	Command string

	// Logger receives debug output when the lookup fails. Optional.
	Logger *log.Logger
}

// Revision implements RevisionProvider.
func (g GitRevision) Revision(ctx context.Context) (string, bool) {
	command := g.Command
	if command == "" {
		command = "git"
	}
	cmd := exec.CommandContext(ctx, command, "rev-parse", "HEAD")
	cmd.Dir = g.Dir
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		if g.Logger != nil {
			g.Logger.Debug("git revision unavailable", "error", err, "stderr", strings.TrimSpace(stderr.String()))
		}
		return "", false
	}
	rev := strings.TrimSpace(string(out))
	if rev == "" {
		return "", false
	}
	return rev, true
}

// BuildVersion reports the refig module version recorded in the running
// binary. The lookup happens once per process.
type BuildVersion struct{}

// Version implements VersionProvider.
func (BuildVersion) Version() (string, bool) {
	return version.Module()
}
