// Package version provides version information for refig.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"sync"
)

// ModulePath is the import path of this module.
const ModulePath = "github.com/refig/refig"

// devVersion is the placeholder used when no version was linked in.
const devVersion = "v0.0.0-dev"

// Build-time variables set via ldflags.
var (
	// Version is the refig version (set via ldflags).
	Version = devVersion

	// GitCommit is the git commit hash.
	GitCommit = "unknown"

	// BuildDate is the build timestamp.
	BuildDate = "unknown"
)

// Info contains version information.
type Info struct {
	// Version is the refig version.
	Version string `json:"version"`

	// GitCommit is the git commit hash.
	GitCommit string `json:"gitCommit"`

	// BuildDate is the build timestamp.
	BuildDate string `json:"buildDate"`

	// GoVersion is the Go version used to build.
	GoVersion string `json:"goVersion"`
}

// GetInfo returns the current version information. When no version was
// linked in, the module version from the build info is used if known.
func GetInfo() Info {
	v := Version
	if v == devVersion {
		if mv, ok := Module(); ok {
			v = mv
		}
	}
	return Info{
		Version:   v,
		GitCommit: GitCommit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
	}
}

// String returns a human-readable version string.
func (i Info) String() string {
	return fmt.Sprintf("refig:\n  Version:    %s\n  Build ID:   %s/%s\n  Go Version: %s",
		i.Version, i.BuildDate, i.GitCommit, i.GoVersion)
}

// moduleVersion is resolved on first use and never changes afterwards.
var moduleVersion = sync.OnceValues(func() (string, bool) {
	return lookupModule(Version, debug.ReadBuildInfo)
})

// Module returns the installed refig version, or false when it cannot be
// discovered. The lookup runs once per process.
func Module() (string, bool) {
	return moduleVersion()
}

// lookupModule prefers a linked-in version, then the main module version
// when refig is the main module, then the version recorded for refig as a
// dependency of the running binary.
func lookupModule(linked string, read func() (*debug.BuildInfo, bool)) (string, bool) {
	if linked != "" && linked != devVersion {
		return linked, true
	}
	bi, ok := read()
	if !ok || bi == nil {
		return "", false
	}
	if bi.Main.Path == ModulePath && usable(bi.Main.Version) {
		return bi.Main.Version, true
	}
	for _, dep := range bi.Deps {
		if dep.Path != ModulePath {
			continue
		}
		if dep.Replace != nil && usable(dep.Replace.Version) {
			return dep.Replace.Version, true
		}
		if usable(dep.Version) {
			return dep.Version, true
		}
	}
	return "", false
}

func usable(v string) bool {
	return v != "" && v != "(devel)"
}
