// Package model defines shared data structures.
package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/verte-zerg/kanjicurve/internal/kanji"
)

// ScalePosition places a y scale on the chart.
type ScalePosition string

const (
	PositionNone  ScalePosition = "none"
	PositionLeft  ScalePosition = "left"
	PositionRight ScalePosition = "right"
)

// ParseScalePosition validates a scale position name.
func ParseScalePosition(s string) (ScalePosition, error) {
	switch p := ScalePosition(strings.ToLower(strings.TrimSpace(s))); p {
	case PositionNone, PositionLeft, PositionRight:
		return p, nil
	}
	return "", fmt.Errorf("unknown scale position %q (expected none, left or right)", s)
}

// DisplayType selects how a dataset is drawn.
type DisplayType string

const (
	DisplayBar  DisplayType = "bar"
	DisplayLine DisplayType = "line"
)

// ParseDisplayType validates a display type name.
func ParseDisplayType(s string) (DisplayType, error) {
	switch d := DisplayType(strings.ToLower(strings.TrimSpace(s))); d {
	case DisplayBar, DisplayLine:
		return d, nil
	}
	return "", fmt.Errorf("unknown display type %q (expected bar or line)", s)
}

// ParseColor validates a "#rgb" or "#rrggbb" hex color. The leading '#' is
// optional; the result is lower-case with the '#'.
func ParseColor(s string) (string, error) {
	hex := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), "#"))
	if len(hex) != 3 && len(hex) != 6 {
		return "", fmt.Errorf("invalid color %q (expected #rgb or #rrggbb)", s)
	}
	for _, r := range hex {
		if !strings.ContainsRune("0123456789abcdef", r) {
			return "", fmt.Errorf("invalid color %q (expected #rgb or #rrggbb)", s)
		}
	}
	return "#" + hex, nil
}

// AxisSettings configures one of the two chart datasets.
type AxisSettings struct {
	Enabled  bool
	Position ScalePosition
	Unit     kanji.Unit
	Display  DisplayType
	Color    string
}

// ChartSettings configures chart rendering and export. It is passed by value.
type ChartSettings struct {
	Title         string
	DisplayLegend bool
	PerLevel      AxisSettings
	Cumulative    AxisSettings
}

// Axis returns the settings for the given axis type.
func (s ChartSettings) Axis(axis kanji.AxisType) AxisSettings {
	if axis == kanji.AxisCumulative {
		return s.Cumulative
	}
	return s.PerLevel
}

// DefaultChartSettings returns the stock chart layout: per-level unique kanji as a
// red line on the left, cumulative unique percent as blue bars on the right.
func DefaultChartSettings() ChartSettings {
	return ChartSettings{
		Title:         "",
		DisplayLegend: true,
		PerLevel: AxisSettings{
			Enabled:  true,
			Position: PositionLeft,
			Unit:     kanji.UnitUnique,
			Display:  DisplayLine,
			Color:    "#ff6384",
		},
		Cumulative: AxisSettings{
			Enabled:  true,
			Position: PositionRight,
			Unit:     kanji.UnitUniquePercent,
			Display:  DisplayBar,
			Color:    "#36a2eb",
		},
	}
}

// AnalyzeConfig defines options for a text analysis run.
type AnalyzeConfig struct {
	KanjiPath  string
	LevelsPath string
	UserLevel  int
	Width      int
	Height     int
	Color      bool
	Chart      ChartSettings
}

// AnalysisSummary describes a stored analysis.
type AnalysisSummary struct {
	ID               int64
	CreatedAt        time.Time
	Source           string
	TotalOccurrences int
	TotalUniqueKanji int
}
