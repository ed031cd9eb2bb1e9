// Package config provides configuration loading and management.
package config

import (
	"github.com/refig/refig/internal/compose"
	"github.com/refig/refig/internal/layout"
)

// GitConfig controls revision lookup.
type GitConfig struct {
	// Enabled turns the git_commit lookup on or off.
	// Env: REFIG_GIT_ENABLED, Default: true
	Enabled *bool `mapstructure:"enabled" yaml:"enabled"`

	// Dir is the working directory git runs in.
	// Env: REFIG_GIT_DIR, Default: current directory
	Dir string `mapstructure:"dir" yaml:"dir,omitempty"`
}

// CellConfig controls the execution counter lookup.
type CellConfig struct {
	// Env is the environment variable holding the counter.
	// Env: REFIG_CELL_ENV, Default: REFIG_CELL_NUMBER
	Env string `mapstructure:"env" yaml:"env"`
}

// LogConfig contains logging-related settings.
type LogConfig struct {
	// Timestamps controls whether timestamps are shown in log output.
	// Default: true. Override with --timestamps flag.
	Timestamps *bool `mapstructure:"timestamps" yaml:"timestamps"`
}

// Config represents the refig CLI configuration.
// Loaded from ./.refig.yaml or ~/.refig/config.yaml.
type Config struct {
	// Root is the figures directory.
	// Env: REFIG_ROOT, Default: figures
	Root string `mapstructure:"root" yaml:"root"`

	Git  GitConfig  `mapstructure:"git" yaml:"git"`
	Cell CellConfig `mapstructure:"cell" yaml:"cell"`
	Log  LogConfig  `mapstructure:"log" yaml:"log"`
}

// DefaultConfig returns a Config with all default values populated.
// Used by `refig config init` to generate the initial config file.
func DefaultConfig() *Config {
	enabled := true
	timestamps := true
	return &Config{
		Root: layout.DefaultRoot,
		Git:  GitConfig{Enabled: &enabled},
		Cell: CellConfig{Env: compose.DefaultCellEnv},
		Log:  LogConfig{Timestamps: &timestamps},
	}
}

// WithDefaults returns a copy of c with unset fields filled from
// DefaultConfig.
func (c *Config) WithDefaults() *Config {
	def := DefaultConfig()
	if c == nil {
		return def
	}
	out := *c
	if out.Root == "" {
		out.Root = def.Root
	}
	if out.Git.Enabled == nil {
		out.Git.Enabled = def.Git.Enabled
	}
	if out.Cell.Env == "" {
		out.Cell.Env = def.Cell.Env
	}
	if out.Log.Timestamps == nil {
		out.Log.Timestamps = def.Log.Timestamps
	}
	return &out
}

// GitEnabled reports whether git_commit should be looked up.
func (c *Config) GitEnabled() bool {
	return c == nil || c.Git.Enabled == nil || *c.Git.Enabled
}

// ResolvedValue records the final value of a setting and where it came from.
type ResolvedValue struct {
	Key      string
	Value    any
	Source   ConfigSource
	Shadowed map[ConfigSource]any
}
