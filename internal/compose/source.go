package compose

import (
	"path"
	"path/filepath"
	"reflect"
	"runtime"
	"strings"
)

// CallerSource finds the first stack frame outside the library's own
// source tree and reports its file as an absolute path.
type CallerSource struct {
	// LibraryDirs are directories whose frames are skipped. Nil means
	// the internal and pkg trees of this module.
	LibraryDirs []string
}

// libraryDirs is derived from this file's location:
// <module>/internal/compose/source.go.
var libraryDirs = func() []string {
	_, file, _, ok := runtime.Caller(0)
	if !ok || !filepath.IsAbs(file) {
		return nil
	}
	root := filepath.Dir(filepath.Dir(filepath.Dir(file)))
	return []string{filepath.Join(root, "internal"), filepath.Join(root, "pkg")}
}()

// Source implements SourceProvider.
func (c CallerSource) Source() (string, bool) {
	dirs := c.LibraryDirs
	if dirs == nil {
		dirs = libraryDirs
	}

	pcs := make([]uintptr, 64)
	// Skip runtime.Callers and this method.
	n := runtime.Callers(2, pcs)
	frames := runtime.CallersFrames(pcs[:n])
	for {
		frame, more := frames.Next()
		if !isStdlib(frame) && !within(frame.File, dirs) {
			return absolute(frame.File), true
		}
		if !more {
			return "", false
		}
	}
}

func within(file string, dirs []string) bool {
	clean := filepath.Clean(file)
	for _, dir := range dirs {
		rel, err := filepath.Rel(dir, clean)
		if err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

// stdlibSrc is the GOROOT/src directory as it appears in frame file
// names, found from the location of the runtime package's own code.
var stdlibSrc = goSrcDir(reflect.ValueOf(runtime.GC).Pointer())

func goSrcDir(pc uintptr) string {
	fn := runtime.FuncForPC(pc)
	if fn == nil {
		return ""
	}
	file, _ := fn.FileLine(fn.Entry())
	// <GOROOT>/src/runtime/<file>.go
	dir := path.Dir(path.Dir(file))
	if dir == "." || dir == "/" {
		return ""
	}
	return dir + "/"
}

// isStdlib reports whether a frame belongs to the standard library or the
// runtime. Frame file names use forward slashes on every platform.
func isStdlib(frame runtime.Frame) bool {
	if frame.File == "" {
		return true
	}
	if stdlibSrc != "" {
		return strings.HasPrefix(frame.File, stdlibSrc)
	}
	return dotlessPackage(frame.Function)
}

// dotlessPackage is the fallback when GOROOT cannot be located: standard
// packages have no dot in the first path element, and main is not one.
func dotlessPackage(function string) bool {
	if function == "" {
		return true
	}
	if first, _, found := strings.Cut(function, "/"); found {
		return !strings.Contains(first, ".")
	}
	pkg, _, _ := strings.Cut(function, ".")
	return pkg != "main"
}

func absolute(file string) string {
	if filepath.IsAbs(file) {
		return filepath.Clean(file)
	}
	abs, err := filepath.Abs(file)
	if err != nil {
		return file
	}
	return abs
}
