package config

import (
	"os"
	"path/filepath"
)

const (
	// EnvConfigPath is the environment variable for explicit config path
	EnvConfigPath = "HOSTIDENT_CONFIG"
	// ConfigFileName is the default config file name
	ConfigFileName = "hostident.yaml"
	// ConfigDirName is the config directory name under XDG
	ConfigDirName = "hostident"
)

// SearchPaths lists the config file locations in the order Load tries them.
// $HOSTIDENT_CONFIG comes first when set; relative entries are resolved
// against the working directory.
func SearchPaths() []string {
	var paths []string
	if env := os.Getenv(EnvConfigPath); env != "" {
		paths = append(paths, env)
	}
	paths = append(paths, ConfigFileName)
	if xdgHome := os.Getenv("XDG_CONFIG_HOME"); xdgHome != "" {
		paths = append(paths, filepath.Join(xdgHome, ConfigDirName, "config.yaml"))
	}
	if home := os.Getenv("HOME"); home != "" {
		paths = append(paths, filepath.Join(home, ".config", ConfigDirName, "config.yaml"))
	}
	return append(paths, filepath.Join("/etc", ConfigDirName, "config.yaml"))
}

// FindConfigPath returns the first existing entry of SearchPaths as an
// absolute path, or "" when there is none. Running without a file is normal:
// every identity setting has a default.
func FindConfigPath() string {
	for _, path := range SearchPaths() {
		if !fileExists(path) {
			continue
		}
		if abs, err := filepath.Abs(path); err == nil {
			return abs
		}
		return path
	}
	return ""
}

// DefaultDatabasePath returns where snapshots are kept when the config does
// not say: XDG state home, then ~/.local/state, then the working directory.
func DefaultDatabasePath() string {
	if stateHome := os.Getenv("XDG_STATE_HOME"); stateHome != "" {
		return filepath.Join(stateHome, ConfigDirName, "snapshots.db")
	}
	if home := os.Getenv("HOME"); home != "" {
		return filepath.Join(home, ".local", "state", ConfigDirName, "snapshots.db")
	}
	return "./hostident.db"
}

// EnsureDir creates the parent directory of path if it doesn't exist
func EnsureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0755)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
