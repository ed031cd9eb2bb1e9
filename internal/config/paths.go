package config

import (
	"os"
	"path/filepath"
)

// LocalConfigFile is the project-level config file looked up in the
// working directory.
const LocalConfigFile = ".refig.yaml"

// EnvConfig names the environment variable that points at a config file.
const EnvConfig = "REFIG_CONFIG"

// Paths contains standard filesystem paths for refig.
type Paths struct {
	// ConfigFile is the path to the user config file (~/.refig/config.yaml).
	ConfigFile string

	// HomeDir is the refig home directory (~/.refig).
	HomeDir string
}

// DefaultPaths returns the default paths for refig.
func DefaultPaths() (*Paths, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	refigHome := filepath.Join(homeDir, ".refig")

	return &Paths{
		ConfigFile: filepath.Join(refigHome, "config.yaml"),
		HomeDir:    refigHome,
	}, nil
}

// GetConfigFile returns the config file path.
// REFIG_CONFIG takes precedence, then ./.refig.yaml when it exists, then
// the user config file.
func GetConfigFile() (string, error) {
	result, err := ResolveConfigPath(ResolveConfigPathOptions{})
	if err != nil {
		return "", err
	}
	return result.ConfigPath, nil
}

// EnsureHomeDir creates the refig home directory if it doesn't exist.
func EnsureHomeDir() error {
	paths, err := DefaultPaths()
	if err != nil {
		return err
	}

	return os.MkdirAll(paths.HomeDir, 0o755)
}

// ExpandPath expands ~ to the user's home directory.
func ExpandPath(path string) (string, error) {
	if len(path) == 0 {
		return path, nil
	}

	if path[0] != '~' {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	if len(path) == 1 {
		return homeDir, nil
	}

	// Handle ~/path/to/something
	if path[1] == '/' || path[1] == filepath.Separator {
		return filepath.Join(homeDir, path[2:]), nil
	}

	// Handle ~username (not supported, return as-is)
	return path, nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
