// Package config provides XDG path helpers.
package config

import (
	"os"
	"path/filepath"
)

const appName = "kanjicurve"

// XDGConfigHome returns the XDG config home or a default fallback.
func XDGConfigHome() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".config")
}

// XDGDataHome returns the XDG data home or a default fallback.
func XDGDataHome() string {
	if v := os.Getenv("XDG_DATA_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".local", "share")
}

// DefaultDataDir returns the directory holding reference data files.
func DefaultDataDir() string {
	return filepath.Join(XDGConfigHome(), appName, "data")
}

// DefaultKanjiPath returns the default kanji membership list path.
func DefaultKanjiPath() string {
	return filepath.Join(DefaultDataDir(), "kanji.txt")
}

// DefaultLevelsPath returns the default level table path.
func DefaultLevelsPath() string {
	return filepath.Join(DefaultDataDir(), "levels.json")
}

// DefaultDBPath returns the default path for the SQLite database.
func DefaultDBPath() string {
	return filepath.Join(XDGDataHome(), appName, appName+".db")
}

// DefaultConfigPath returns the default TOML config path.
func DefaultConfigPath() string {
	return filepath.Join(XDGConfigHome(), appName, "config.toml")
}
