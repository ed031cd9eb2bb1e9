package config

import (
	"os"

	"github.com/charmbracelet/log"

	"github.com/refig/refig/internal/layout"
)

// ConfigSource indicates where a configuration value came from.
type ConfigSource string

const (
	// SourceFlag indicates value came from command-line flag.
	SourceFlag ConfigSource = "flag"
	// SourceEnv indicates value came from environment variable.
	SourceEnv ConfigSource = "env"
	// SourceConfig indicates value came from config file.
	SourceConfig ConfigSource = "config"
	// SourceLocal indicates the project config file in the working directory.
	SourceLocal ConfigSource = "local"
	// SourceDefault indicates value is the built-in default.
	SourceDefault ConfigSource = "default"
)

// EnvRoot names the environment variable overriding the figures root.
const EnvRoot = "REFIG_ROOT"

// ResolveRootOptions contains options for figures root resolution.
type ResolveRootOptions struct {
	// FlagValue is the --root flag value (empty if not set).
	FlagValue string
	// ConfigValue is the root value from the config file (empty if not set).
	ConfigValue string
}

// ResolveRootResult contains the resolved root and its source.
type ResolveRootResult struct {
	Root   string
	Source ConfigSource
	// Shadowed contains values that were overridden by higher precedence.
	Shadowed map[ConfigSource]string
}

// ResolveRoot resolves the figures root using precedence:
// (1) --root flag, (2) REFIG_ROOT env, (3) config root, (4) "figures".
func ResolveRoot(opts ResolveRootOptions) ResolveRootResult {
	result := ResolveRootResult{
		Shadowed: make(map[ConfigSource]string),
	}

	envValue := os.Getenv(EnvRoot)

	candidates := []struct {
		source ConfigSource
		value  string
	}{
		{SourceFlag, opts.FlagValue},
		{SourceEnv, envValue},
		{SourceConfig, opts.ConfigValue},
		{SourceDefault, layout.DefaultRoot},
	}
	for _, c := range candidates {
		if c.value == "" {
			continue
		}
		if result.Source == "" {
			result.Root = c.value
			result.Source = c.source
			continue
		}
		result.Shadowed[c.source] = c.value
	}

	return result
}

// ResolveConfigPathOptions contains options for config path resolution.
type ResolveConfigPathOptions struct {
	// FlagValue is the --config flag value (empty if not set).
	FlagValue string
}

// ResolveConfigPathResult contains the resolved config path and its source.
type ResolveConfigPathResult struct {
	// ConfigPath is the resolved config file path.
	ConfigPath string
	// Source indicates where the config path came from.
	Source ConfigSource
	// Shadowed contains values that were overridden by higher precedence.
	Shadowed map[ConfigSource]string
}

// ResolveConfigPath resolves the config file path using precedence:
// (1) --config flag, (2) REFIG_CONFIG env, (3) ./.refig.yaml when present,
// (4) ~/.refig/config.yaml.
func ResolveConfigPath(opts ResolveConfigPathOptions) (ResolveConfigPathResult, error) {
	result := ResolveConfigPathResult{
		Shadowed: make(map[ConfigSource]string),
	}

	paths, err := DefaultPaths()
	if err != nil {
		return result, err
	}

	var local string
	if fileExists(LocalConfigFile) {
		local = LocalConfigFile
	}

	candidates := []struct {
		source ConfigSource
		value  string
	}{
		{SourceFlag, opts.FlagValue},
		{SourceEnv, os.Getenv(EnvConfig)},
		{SourceLocal, local},
		{SourceDefault, paths.ConfigFile},
	}
	for _, c := range candidates {
		if c.value == "" {
			continue
		}
		if result.Source == "" {
			result.ConfigPath = c.value
			result.Source = c.source
			continue
		}
		result.Shadowed[c.source] = c.value
	}

	return result, nil
}

// LogResolvedValues logs configuration resolution at DEBUG level.
func LogResolvedValues(logger *log.Logger, values []ResolvedValue) {
	for _, v := range values {
		logger.Debug("config value resolved",
			"key", v.Key,
			"value", v.Value,
			"source", v.Source,
		)
		for source, shadowed := range v.Shadowed {
			logger.Debug("  shadowed by higher precedence",
				"key", v.Key,
				"shadowed_source", source,
				"shadowed_value", shadowed,
			)
		}
	}
}
