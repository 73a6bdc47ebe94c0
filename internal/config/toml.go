// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Data    DataConfig    `toml:"data"`
	Analyze AnalyzeConfig `toml:"analyze"`
	Chart   ChartConfig   `toml:"chart"`
}

// DataConfig maps reference data locations.
type DataConfig struct {
	Kanji     *string `toml:"kanji"`
	Levels    *string `toml:"levels"`
	KanjiURL  *string `toml:"kanji-url"`
	LevelsURL *string `toml:"levels-url"`
}

// AnalyzeConfig maps analysis and text output settings.
type AnalyzeConfig struct {
	Level  *int  `toml:"level"`
	Width  *int  `toml:"width"`
	Height *int  `toml:"height"`
	Color  *bool `toml:"color"`
}

// ChartConfig maps chart settings.
type ChartConfig struct {
	Title      *string    `toml:"title"`
	Legend     *bool      `toml:"legend"`
	PerLevel   AxisConfig `toml:"per-level"`
	Cumulative AxisConfig `toml:"cumulative"`
}

// AxisConfig maps settings for one chart dataset.
type AxisConfig struct {
	Enabled  *bool   `toml:"enabled"`
	Position *string `toml:"position"`
	Unit     *string `toml:"unit"`
	Display  *string `toml:"display"`
	Color    *string `toml:"color"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return FileConfig{}, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	return cfg, nil
}
