package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/verte-zerg/kanjicurve/internal/kanji"
	"github.com/verte-zerg/kanjicurve/internal/model"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "config.toml"))
	if err != nil {
		t.Fatalf("expected missing config to be ignored: %v", err)
	}
	if cfg.Analyze.Level != nil || cfg.Data.Levels != nil {
		t.Fatalf("expected empty config, got %+v", cfg)
	}
}

func TestLoadConfigAndApplyChart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[data]
levels = "/tmp/levels.yaml"

[analyze]
level = 12

[chart]
title = "Novel"
legend = false

[chart.cumulative]
unit = "total-percent"
position = "left"

[chart.per-level]
enabled = false
display = "bar"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Data.Levels == nil || *cfg.Data.Levels != "/tmp/levels.yaml" {
		t.Fatalf("unexpected levels path: %v", cfg.Data.Levels)
	}
	if cfg.Analyze.Level == nil || *cfg.Analyze.Level != 12 {
		t.Fatalf("unexpected level: %v", cfg.Analyze.Level)
	}

	settings, err := cfg.Chart.ApplyChart(model.DefaultChartSettings())
	if err != nil {
		t.Fatalf("apply chart: %v", err)
	}
	if settings.Title != "Novel" || settings.DisplayLegend {
		t.Fatalf("unexpected general settings: %+v", settings)
	}
	if settings.Cumulative.Unit != kanji.UnitOccurrencesPercent || settings.Cumulative.Position != model.PositionLeft {
		t.Fatalf("unexpected cumulative settings: %+v", settings.Cumulative)
	}
	if settings.PerLevel.Enabled || settings.PerLevel.Display != model.DisplayBar {
		t.Fatalf("unexpected per-level settings: %+v", settings.PerLevel)
	}
	if settings.PerLevel.Color != "#ff6384" {
		t.Fatalf("expected default color to survive, got %q", settings.PerLevel.Color)
	}
}

func TestApplyChartRejectsUnknownUnit(t *testing.T) {
	unit := "percent"
	cfg := ChartConfig{Cumulative: AxisConfig{Unit: &unit}}
	if _, err := cfg.ApplyChart(model.DefaultChartSettings()); err == nil {
		t.Fatalf("expected error for unknown unit")
	}
}

func TestApplyChartValidatesColor(t *testing.T) {
	color := " #36A2EB "
	cfg := ChartConfig{Cumulative: AxisConfig{Color: &color}}
	settings, err := cfg.ApplyChart(model.DefaultChartSettings())
	if err != nil {
		t.Fatalf("apply chart: %v", err)
	}
	if settings.Cumulative.Color != "#36a2eb" {
		t.Fatalf("expected normalized color, got %q", settings.Cumulative.Color)
	}

	short := "f00"
	cfg = ChartConfig{PerLevel: AxisConfig{Color: &short}}
	if settings, err = cfg.ApplyChart(model.DefaultChartSettings()); err != nil || settings.PerLevel.Color != "#f00" {
		t.Fatalf("expected short color to be accepted, got %q, %v", settings.PerLevel.Color, err)
	}

	for _, bad := range []string{"zzz", "#12345", "", "#ff63840"} {
		value := bad
		cfg := ChartConfig{PerLevel: AxisConfig{Color: &value}}
		if _, err := cfg.ApplyChart(model.DefaultChartSettings()); err == nil {
			t.Fatalf("expected error for color %q", bad)
		}
	}
}

func TestLoadConfigRejectsUnknownKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[analyze]\nlevle = 3\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Fatalf("expected error for misspelled key")
	}
}

func TestDefaultPathsFollowXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/cfg")
	t.Setenv("XDG_DATA_HOME", "/data")
	if got := DefaultConfigPath(); got != filepath.Join("/cfg", "kanjicurve", "config.toml") {
		t.Fatalf("unexpected config path %q", got)
	}
	if got := DefaultLevelsPath(); got != filepath.Join("/cfg", "kanjicurve", "data", "levels.json") {
		t.Fatalf("unexpected levels path %q", got)
	}
	if got := DefaultDBPath(); got != filepath.Join("/data", "kanjicurve", "kanjicurve.db") {
		t.Fatalf("unexpected db path %q", got)
	}
}
