package compose

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/refig/refig/internal/record"
)

var fixedTime = time.Date(2026, 10, 16, 12, 34, 56, 0, time.UTC)

func stubComposer(opts ...Option) *Composer {
	base := []Option{
		WithClock(func() time.Time { return fixedTime }),
		WithSource(SourceFunc(func() (string, bool) { return "/work/analysis.go", true })),
		WithCell(CellFunc(func() (int, bool) { return 7, true })),
		WithRevision(RevisionFunc(func(context.Context) (string, bool) {
			return "0123456789abcdef0123456789abcdef01234567", true
		})),
		WithVersion(VersionFunc(func() (string, bool) { return "v1.2.3", true })),
	}
	return New(append(base, opts...)...)
}

func TestCompose_AllProviders(t *testing.T) {
	rec := stubComposer().Compose(context.Background(), "plots/plot.png", nil)

	assert.Equal(t, record.Record{
		"figure":        "plot.png",
		"created_at":    "2026-10-16T12:34:56+00:00",
		"source":        "/work/analysis.go",
		"cell_number":   7,
		"git_commit":    "0123456789abcdef0123456789abcdef01234567",
		"refig_version": "v1.2.3",
	}, rec)
}

func TestCompose_AbsentProvidersAreNull(t *testing.T) {
	c := stubComposer(
		WithSource(None{}),
		WithCell(None{}),
		WithRevision(None{}),
		WithVersion(None{}),
	)
	rec := c.Compose(context.Background(), "plot.svg", nil)

	for _, key := range record.DefaultKeys {
		assert.Contains(t, rec, key)
	}
	assert.Nil(t, rec[record.KeySource])
	assert.Nil(t, rec[record.KeyCellNumber])
	assert.Nil(t, rec[record.KeyGitCommit])
	assert.Nil(t, rec[record.KeyRefigVersion])

	data, err := rec.Marshal()
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"cell_number": null,
		"created_at": "2026-10-16T12:34:56+00:00",
		"figure": "plot.svg",
		"git_commit": null,
		"refig_version": null,
		"source": null
	}`, string(data))
}

func TestCompose_ExtrasOverrideDefaults(t *testing.T) {
	rec := stubComposer().Compose(context.Background(), "plot.svg", map[string]any{
		"note":       "x",
		"git_commit": "override",
	})

	assert.Equal(t, "x", rec["note"])
	assert.Equal(t, "override", rec[record.KeyGitCommit])
	assert.Len(t, rec, len(record.DefaultKeys)+1)
}

func TestCompose_PassesContextToRevision(t *testing.T) {
	type key struct{}
	ctx := context.WithValue(context.Background(), key{}, "marker")

	var seen any
	c := stubComposer(WithRevision(RevisionFunc(func(ctx context.Context) (string, bool) {
		seen = ctx.Value(key{})
		return "", false
	})))
	c.Compose(ctx, "plot.png", nil)

	assert.Equal(t, "marker", seen)
}

func TestFormatTimestamp(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want string
	}{
		{name: "whole seconds", in: fixedTime, want: "2026-10-16T12:34:56+00:00"},
		{name: "microseconds", in: fixedTime.Add(123456 * time.Microsecond), want: "2026-10-16T12:34:56.123456+00:00"},
		{name: "nanoseconds truncated", in: fixedTime.Add(999), want: "2026-10-16T12:34:56+00:00"},
		{
			name: "converted to utc",
			in:   time.Date(2026, 10, 16, 14, 0, 0, 0, time.FixedZone("CEST", 2*60*60)),
			want: "2026-10-16T12:00:00+00:00",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatTimestamp(tt.in))
		})
	}
}

func TestEnvCell(t *testing.T) {
	tests := []struct {
		name   string
		value  string
		want   int
		wantOK bool
	}{
		{name: "integer", value: "42", want: 42, wantOK: true},
		{name: "padded", value: " 3 ", want: 3, wantOK: true},
		{name: "empty", value: "", wantOK: false},
		{name: "not a number", value: "abc", wantOK: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TEST_REFIG_CELL", tt.value)
			got, ok := EnvCell{Name: "TEST_REFIG_CELL"}.Cell()
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEnvCell_DefaultName(t *testing.T) {
	t.Setenv(DefaultCellEnv, "5")
	got, ok := EnvCell{}.Cell()
	assert.True(t, ok)
	assert.Equal(t, 5, got)
}

func TestGitRevision_MissingBinary(t *testing.T) {
	rev, ok := GitRevision{Command: filepath.Join(t.TempDir(), "no-such-git")}.Revision(context.Background())
	assert.False(t, ok)
	assert.Empty(t, rev)
}

func TestGitRevision_Script(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell script stand-in for git")
	}

	tests := []struct {
		name   string
		script string
		want   string
		wantOK bool
	}{
		{name: "hash", script: "#!/bin/sh\necho '  abcdef0123456789  '\n", want: "abcdef0123456789", wantOK: true},
		{name: "empty output", script: "#!/bin/sh\necho ''\n", wantOK: false},
		{name: "non-zero exit", script: "#!/bin/sh\necho 'fatal: not a git repository' >&2\nexit 128\n", wantOK: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			bin := filepath.Join(dir, "git")
			require.NoError(t, os.WriteFile(bin, []byte(tt.script), 0o755))

			rev, ok := GitRevision{Command: bin, Dir: dir}.Revision(context.Background())
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, rev)
		})
	}
}

func TestCallerSource(t *testing.T) {
	t.Run("skips library frames", func(t *testing.T) {
		// Every frame is either inside this module's internal tree or the
		// standard library's test runner.
		_, ok := CallerSource{}.Source()
		assert.False(t, ok)
	})

	t.Run("reports first outside frame", func(t *testing.T) {
		src, ok := CallerSource{LibraryDirs: []string{}}.Source()
		require.True(t, ok)
		assert.True(t, filepath.IsAbs(src))
		assert.Equal(t, "compose_test.go", filepath.Base(src))
	})
}

func TestIsStdlib(t *testing.T) {
	if stdlibSrc == "" {
		t.Skip("GOROOT/src not visible in frame file names")
	}

	tests := []struct {
		name  string
		frame runtime.Frame
		want  bool
	}{
		{name: "runtime", frame: runtime.Frame{Function: "runtime.goexit", File: stdlibSrc + "runtime/asm_amd64.s"}, want: true},
		{name: "nested std package", frame: runtime.Frame{Function: "net/http.(*Server).Serve", File: stdlibSrc + "net/http/server.go"}, want: true},
		{name: "dotless module path", frame: runtime.Frame{Function: "myproj/plots.Render", File: "/home/user/myproj/plots/render.go"}},
		{name: "dotless single-element module", frame: runtime.Frame{Function: "plots.Render", File: "/home/user/plots/render.go"}},
		{name: "main package", frame: runtime.Frame{Function: "main.main", File: "/home/user/plots/main.go"}},
		{name: "dotted module path", frame: runtime.Frame{Function: "github.com/acme/plots.Render", File: "/src/plots/render.go"}},
		{name: "no file", frame: runtime.Frame{Function: "plots.Render"}, want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isStdlib(tt.frame))
		})
	}
}

func TestIsStdlib_LiveFrames(t *testing.T) {
	pcs := make([]uintptr, 32)
	frames := runtime.CallersFrames(pcs[:runtime.Callers(1, pcs)])
	seen := map[string]bool{}
	for {
		frame, more := frames.Next()
		switch frame.Function {
		case "testing.tRunner":
			seen["testing"] = isStdlib(frame)
		case "github.com/refig/refig/internal/compose.TestIsStdlib_LiveFrames":
			seen["test"] = isStdlib(frame)
		}
		if !more {
			break
		}
	}
	assert.Equal(t, map[string]bool{"testing": true, "test": false}, seen)
}

func TestDotlessPackage(t *testing.T) {
	tests := []struct {
		function string
		want     bool
	}{
		{"runtime.goexit", true},
		{"net/http.(*Server).Serve", true},
		{"main.main", false},
		{"github.com/acme/plots.Render", false},
		{"", true},
	}
	for _, tt := range tests {
		t.Run(tt.function, func(t *testing.T) {
			assert.Equal(t, tt.want, dotlessPackage(tt.function))
		})
	}
}
