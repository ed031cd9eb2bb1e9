package render

import (
	"context"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	rerrors "github.com/refig/refig/internal/errors"
	"github.com/refig/refig/internal/testutil"
)

func TestRenderConfig_WithDefaultFormat(t *testing.T) {
	t.Run("sets missing format", func(t *testing.T) {
		base := RenderConfig{"dpi": 300}
		got := base.WithDefaultFormat("png")

		assert.Equal(t, "png", got.Format())
		assert.Equal(t, 300, got["dpi"])
		assert.NotContains(t, base, FormatKey, "receiver is not modified")
	})

	t.Run("keeps explicit format", func(t *testing.T) {
		got := RenderConfig{FormatKey: "svg"}.WithDefaultFormat("png")
		assert.Equal(t, "svg", got.Format())
	})

	t.Run("nil config", func(t *testing.T) {
		var cfg RenderConfig
		assert.Equal(t, "", cfg.Format())
		assert.Equal(t, "svg", cfg.WithDefaultFormat("svg").Format())
	})
}

func TestStaticEngine(t *testing.T) {
	fig := BytesFigure("x")
	assert.Equal(t, fig, StaticEngine{Figure: fig}.CurrentFigure())
	assert.Nil(t, StaticEngine{}.CurrentFigure())
}

func TestBytesFigure_ReturnsCopy(t *testing.T) {
	fig := BytesFigure("abc")
	out, err := fig.Render(context.Background(), nil)
	require.NoError(t, err)
	out[0] = 'z'
	assert.Equal(t, BytesFigure("abc"), fig)
}

func TestSniff(t *testing.T) {
	assert.Equal(t, FormatPNG, Sniff(testutil.PNG(t)))
	assert.Equal(t, FormatSVG, Sniff([]byte(testutil.SVG)))
	assert.Equal(t, "", Sniff(nil))
	assert.Equal(t, "", Sniff([]byte{0xff, 0xfe, 0x00}))
}

func TestFileFigure(t *testing.T) {
	dir := t.TempDir()
	pngPath := testutil.WriteFile(t, dir, "plot.png", testutil.PNG(t))
	svgPath := testutil.WriteFile(t, dir, "plot.svg", []byte(testutil.SVG))

	tests := []struct {
		name    string
		path    string
		format  string
		wantErr error
	}{
		{name: "png as png", path: pngPath, format: "png"},
		{name: "svg as svg", path: svgPath, format: "svg"},
		{name: "no format requested", path: pngPath},
		{name: "png as svg", path: pngPath, format: "svg", wantErr: rerrors.ErrFormat},
		{name: "svg as png", path: svgPath, format: "png", wantErr: rerrors.ErrFormat},
		{name: "missing", path: filepath.Join(dir, "missing.png"), format: "png", wantErr: rerrors.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := RenderConfig{}
			if tt.format != "" {
				cfg[FormatKey] = tt.format
			}
			data, err := FileFigure{Path: tt.path}.Render(context.Background(), cfg)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, testutil.ReadFile(t, tt.path), data)
		})
	}
}

func TestFileFigure_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := FileFigure{Path: "whatever.png"}.Render(ctx, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCommandFigure(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses /bin/sh")
	}

	t.Run("exports format and options", func(t *testing.T) {
		fig := CommandFigure{
			Name: "/bin/sh",
			Args: []string{"-c", `printf '%s|%s|%s' "$REFIG_FORMAT" "$REFIG_OPT_DPI" "$REFIG_OPT_LINE_WIDTH"`},
		}
		out, err := fig.Render(context.Background(), RenderConfig{
			FormatKey:    "svg",
			"dpi":        150,
			"line-width": 1.5,
		})
		require.NoError(t, err)
		assert.Equal(t, "svg|150|1.5", string(out))
	})

	t.Run("runs in dir", func(t *testing.T) {
		dir := t.TempDir()
		testutil.WriteFile(t, dir, "out.svg", []byte(testutil.SVG))
		out, err := CommandFigure{Name: "/bin/sh", Args: []string{"-c", "cat out.svg"}, Dir: dir}.
			Render(context.Background(), nil)
		require.NoError(t, err)
		assert.Equal(t, testutil.SVG, string(out))
	})

	t.Run("failure includes stderr", func(t *testing.T) {
		_, err := CommandFigure{Name: "/bin/sh", Args: []string{"-c", "echo boom >&2; exit 3"}}.
			Render(context.Background(), nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "boom")
	})

	t.Run("empty output", func(t *testing.T) {
		_, err := CommandFigure{Name: "/bin/sh", Args: []string{"-c", "true"}}.
			Render(context.Background(), nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no output")
	})

	t.Run("empty name", func(t *testing.T) {
		_, err := CommandFigure{}.Render(context.Background(), nil)
		require.Error(t, err)
	})
}

func TestEnvName(t *testing.T) {
	assert.Equal(t, "DPI", envName("dpi"))
	assert.Equal(t, "LINE_WIDTH", envName("line-width"))
	assert.Equal(t, "A_B_C1", envName("a.b c1"))
}
