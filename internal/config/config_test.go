// Package config provides configuration loading and management.
package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	require.NotNil(t, cfg)
	assert.Equal(t, "figures", cfg.Root)
	require.NotNil(t, cfg.Git.Enabled)
	assert.True(t, *cfg.Git.Enabled)
	assert.Empty(t, cfg.Git.Dir) // runs in the working directory
	assert.Equal(t, "REFIG_CELL_NUMBER", cfg.Cell.Env)
	require.NotNil(t, cfg.Log.Timestamps)
	assert.True(t, *cfg.Log.Timestamps)
}

func TestConfig_WithDefaults(t *testing.T) {
	disabled := false
	cfg := (&Config{Root: "out", Git: GitConfig{Enabled: &disabled}}).WithDefaults()

	assert.Equal(t, "out", cfg.Root)
	assert.False(t, cfg.GitEnabled())
	assert.Equal(t, "REFIG_CELL_NUMBER", cfg.Cell.Env)
	require.NotNil(t, cfg.Log.Timestamps)

	var nilCfg *Config
	assert.Equal(t, DefaultConfig(), nilCfg.WithDefaults())
}

func TestConfig_GitEnabled(t *testing.T) {
	enabled, disabled := true, false

	assert.True(t, (&Config{}).GitEnabled())
	assert.True(t, (&Config{Git: GitConfig{Enabled: &enabled}}).GitEnabled())
	assert.False(t, (&Config{Git: GitConfig{Enabled: &disabled}}).GitEnabled())

	var nilCfg *Config
	assert.True(t, nilCfg.GitEnabled())
}
