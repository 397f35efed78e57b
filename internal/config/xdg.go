package config

import (
	"os"
	"path/filepath"
)

const appName = "tagcloud"

// XDGConfigHome returns $XDG_CONFIG_HOME, falling back to ~/.config.
func XDGConfigHome() string {
	return xdgDir("XDG_CONFIG_HOME", ".config")
}

// XDGDataHome returns $XDG_DATA_HOME, falling back to ~/.local/share.
func XDGDataHome() string {
	return xdgDir("XDG_DATA_HOME", ".local", "share")
}

// xdgDir resolves env or joins fallback under the home directory. Without
// a home directory the current directory is used.
func xdgDir(env string, fallback ...string) string {
	if v := os.Getenv(env); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(append([]string{home}, fallback...)...)
}

// DefaultDBPath returns the default path for the SQLite database.
func DefaultDBPath() string {
	return filepath.Join(XDGDataHome(), appName, appName+".db")
}

// DefaultConfigPath returns the default TOML config path.
func DefaultConfigPath() string {
	return filepath.Join(XDGConfigHome(), appName, "config.toml")
}

// DefaultDenyListPath returns the deny list read when no other is given.
func DefaultDenyListPath() string {
	return filepath.Join(XDGConfigHome(), appName, "deny.txt")
}

// DefaultOutputDir is where the editor saves images.
func DefaultOutputDir() string {
	return filepath.Join(XDGDataHome(), appName, "renders")
}
