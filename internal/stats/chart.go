package stats

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/verte-zerg/kanjicurve/internal/kanji"
	"github.com/verte-zerg/kanjicurve/internal/model"
)

// Dataset is one derived series ready for rendering.
type Dataset struct {
	Axis     kanji.AxisType
	Label    string
	Settings model.AxisSettings
	Values   []float64
}

// Chart holds the datasets enabled by a ChartSettings value.
type Chart struct {
	Title    string
	Legend   bool
	Datasets []Dataset
}

// BuildChart derives the enabled datasets, cumulative first.
func BuildChart(a kanji.TextAnalysis, settings model.ChartSettings) Chart {
	chart := Chart{Title: settings.Title, Legend: settings.DisplayLegend}
	for _, axis := range []kanji.AxisType{kanji.AxisCumulative, kanji.AxisPerLevel} {
		axisSettings := settings.Axis(axis)
		if !axisSettings.Enabled {
			continue
		}
		chart.Datasets = append(chart.Datasets, Dataset{
			Axis:     axis,
			Label:    DatasetLabel(axis, axisSettings.Unit),
			Settings: axisSettings,
			Values:   kanji.DeriveSeries(a, axisSettings.Unit, axis),
		})
	}
	return chart
}

// DatasetLabel names a dataset for legends.
func DatasetLabel(axis kanji.AxisType, unit kanji.Unit) string {
	if axis == kanji.AxisCumulative {
		switch unit {
		case kanji.UnitUnique:
			return "Total known unique kanji"
		case kanji.UnitOccurrences:
			return "Total familiar kanji occurrences"
		case kanji.UnitUniquePercent:
			return "Total % of known unique kanji"
		case kanji.UnitOccurrencesPercent:
			return "Total % of familiar kanji occurrences"
		}
		return "Total"
	}
	switch unit {
	case kanji.UnitUnique:
		return "New unique kanji learned"
	case kanji.UnitOccurrences:
		return "New unique kanji learned (all occurrences)"
	case kanji.UnitUniquePercent:
		return "% of new unique kanji learned"
	case kanji.UnitOccurrencesPercent:
		return "% of new unique kanji learned (all occurrences)"
	}
	return "Contribution"
}

// AxisTitle names the y axis of a dataset.
func AxisTitle(axis kanji.AxisType) string {
	if axis == kanji.AxisCumulative {
		return "Total kanji axis"
	}
	return "Contribution kanji axis"
}

// UnitSuffix is the suffix shown after values of the given axis and unit.
// Per-level percentages are percentage points of the grand total.
func UnitSuffix(axis kanji.AxisType, unit kanji.Unit) string {
	if !unit.IsPercent() {
		return ""
	}
	if axis == kanji.AxisPerLevel {
		return " pp"
	}
	return "%"
}

// RenderChart plots the chart datasets as a text chart.
func RenderChart(w io.Writer, chart Chart, width, height int, useColor bool) error {
	if len(chart.Datasets) == 0 {
		_, err := fmt.Fprintln(w, "No chart axes enabled.")
		return err
	}
	series := make([]Series, 0, len(chart.Datasets))
	for _, ds := range chart.Datasets {
		series = append(series, Series{
			Name:   ds.Label,
			Values: ds.Values,
			Bars:   ds.Settings.Display == model.DisplayBar,
			Suffix: UnitSuffix(ds.Axis, ds.Settings.Unit),
		})
	}
	title := chart.Title
	if title == "" {
		title = "Kanji by level"
	}
	plotWidth := 0
	if width > 0 {
		plotWidth = PlotWidthFor(width)
	}
	return PlotSeriesWithColor(w, title, series, plotWidth, height, useColor)
}

// RenderChartString is RenderChart into a string, for embedding in other views.
func RenderChartString(chart Chart, width, height int, useColor bool) string {
	var buf bytes.Buffer
	if err := RenderChart(&buf, chart, width, height, useColor); err != nil {
		return fmt.Sprintf("Failed to render chart: %v", err)
	}
	return strings.TrimRight(buf.String(), "\n")
}
