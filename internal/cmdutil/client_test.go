package cmdutil

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/refig/refig/internal/cmdtypes"
	"github.com/refig/refig/internal/config"
	rerrors "github.com/refig/refig/internal/errors"
	"github.com/refig/refig/internal/record"
	"github.com/refig/refig/internal/render"
	"github.com/refig/refig/internal/testutil"
	"github.com/refig/refig/pkg/refig"
)

func TestNewClient(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("TEST_REFIG_CMDUTIL_CELL", "7")

	disabled := false
	gc := &cmdtypes.GlobalConfig{
		Config: &config.Config{
			Git:  config.GitConfig{Enabled: &disabled},
			Cell: config.CellConfig{Env: "TEST_REFIG_CMDUTIL_CELL"},
		},
		Root: "out",
	}

	client := NewClient(gc, ClientOpts{Source: "/work/plot.py"})
	assert.Equal(t, "out", client.Root())

	result, err := client.Save(context.Background(), "plot.png",
		refig.WithFigure(render.BytesFigure(testutil.PNG(t))))
	require.NoError(t, err)

	assert.Equal(t, filepath.Join("out", "latest", "plot.png"), result.LatestPath())
	meta := result.Metadata()
	assert.Equal(t, "/work/plot.py", meta[record.KeySource])
	assert.Nil(t, meta[record.KeyGitCommit])
	n, ok := meta.Int(record.KeyCellNumber)
	require.True(t, ok)
	assert.Equal(t, int64(7), n)
}

func TestNewClient_RootFallsBackToConfig(t *testing.T) {
	gc := &cmdtypes.GlobalConfig{Config: &config.Config{Root: "plots"}}
	assert.Equal(t, "plots", NewClient(gc, ClientOpts{}).Root())

	gc = &cmdtypes.GlobalConfig{}
	assert.Equal(t, "figures", NewClient(gc, ClientOpts{}).Root())
}

func TestResolveRoot(t *testing.T) {
	t.Setenv(config.EnvRoot, "")

	t.Run("flag wins over config", func(t *testing.T) {
		gc := &cmdtypes.GlobalConfig{Config: &config.Config{Root: "plots"}}
		ResolveRoot(gc, "flagged")
		assert.Equal(t, "flagged", gc.Root)
		assert.Equal(t, config.SourceFlag, gc.RootSource)
	})

	t.Run("config without flag", func(t *testing.T) {
		gc := &cmdtypes.GlobalConfig{Config: &config.Config{Root: "plots"}}
		ResolveRoot(gc, "")
		assert.Equal(t, "plots", gc.Root)
		assert.Equal(t, config.SourceConfig, gc.RootSource)
	})

	t.Run("default", func(t *testing.T) {
		gc := &cmdtypes.GlobalConfig{}
		ResolveRoot(gc, "")
		assert.Equal(t, "figures", gc.Root)
		assert.Equal(t, config.SourceDefault, gc.RootSource)
	})
}

func TestFail(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "unsupported format", err: &rerrors.UnsupportedFormatError{Ext: ".jpg"}, want: cmdtypes.ExitFormatError},
		{name: "configuration", err: &rerrors.ConfigurationError{Message: "no figure"}, want: cmdtypes.ExitConfigurationError},
		{name: "load", err: &rerrors.LoadError{Path: "a.png", Err: errors.New("bad")}, want: cmdtypes.ExitMetadataError},
		{name: "embedding", err: &rerrors.EmbeddingError{Format: "svg", Err: errors.New("bad")}, want: cmdtypes.ExitMetadataError},
		{name: "not found", err: rerrors.Wrap(rerrors.ErrNotFound, "plot.png"), want: cmdtypes.ExitNotFound},
		{name: "other", err: errors.New("boom"), want: cmdtypes.ExitGeneralError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Fail("failed", tt.err)

			var exitErr *cmdtypes.ExitError
			require.True(t, errors.As(err, &exitErr))
			assert.Equal(t, tt.want, exitErr.Code)
			assert.True(t, exitErr.Printed)
			assert.ErrorIs(t, err, tt.err)
		})
	}
}
