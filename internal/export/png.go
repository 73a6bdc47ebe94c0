package export

import (
	"io"
	"log/slog"
	"math"
	"strconv"
	"strings"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/verte-zerg/kanjicurve/internal/kanji"
	"github.com/verte-zerg/kanjicurve/internal/model"
	"github.com/verte-zerg/kanjicurve/internal/stats"
)

const (
	defaultPNGWidth  = 1200
	defaultPNGHeight = 600
	barFillAlpha     = 96
)

// WritePNG renders the enabled datasets of the chart settings as a PNG image.
// The primary y axis is drawn on the right, the secondary one on the left.
func WritePNG(w io.Writer, a kanji.TextAnalysis, settings model.ChartSettings, width, height int) error {
	if width <= 0 {
		width = defaultPNGWidth
	}
	if height <= 0 {
		height = defaultPNGHeight
	}

	built := stats.BuildChart(a, settings)
	xs := levelValues()
	var series []chart.Series
	primaryMax, secondaryMax := 0.0, 0.0
	primary := chart.YAxis{Style: chart.Style{Hidden: true}}
	secondary := chart.YAxis{Style: chart.Style{Hidden: true}}
	for _, ds := range built.Datasets {
		if allNaN(ds.Values) {
			slog.Debug("skip empty dataset", "label", ds.Label)
			continue
		}
		axis := chart.YAxisPrimary
		if ds.Settings.Position == model.PositionLeft {
			axis = chart.YAxisSecondary
		}
		peak := maxValue(ds.Values)
		yAxis := chart.YAxis{
			Name:           stats.AxisTitle(ds.Axis),
			ValueFormatter: valueFormatter(stats.UnitSuffix(ds.Axis, ds.Settings.Unit)),
		}
		if ds.Settings.Position == model.PositionNone {
			yAxis.Style = chart.Style{Hidden: true}
		}
		if axis == chart.YAxisPrimary {
			primaryMax = math.Max(primaryMax, peak)
			primary = yAxis
		} else {
			secondaryMax = math.Max(secondaryMax, peak)
			secondary = yAxis
		}
		series = append(series, chart.ContinuousSeries{
			Name:    ds.Label,
			YAxis:   axis,
			XValues: xs,
			YValues: ds.Values,
			Style:   seriesStyle(ds.Settings),
		})
	}
	if len(series) == 0 {
		return ErrNoData
	}
	primary.Range = &chart.ContinuousRange{Min: 0, Max: niceMax(primaryMax)}
	secondary.Range = &chart.ContinuousRange{Min: 0, Max: niceMax(secondaryMax)}

	title := built.Title
	if title == "" {
		title = "Kanji by level"
	}
	graph := chart.Chart{
		Title:      title,
		Width:      width,
		Height:     height,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20}},
		XAxis: chart.XAxis{
			Name:  "Level",
			Range: &chart.ContinuousRange{Min: 1, Max: kanji.NumLevels},
			Ticks: levelTicks(),
		},
		YAxis:          primary,
		YAxisSecondary: secondary,
		Series:         series,
	}
	if built.Legend {
		graph.Elements = []chart.Renderable{chart.Legend(&graph)}
	}
	slog.Debug("render png", "series", len(series), "width", width, "height", height)
	return graph.Render(chart.PNG, w)
}

func seriesStyle(settings model.AxisSettings) chart.Style {
	color := parseColor(settings.Color)
	style := chart.Style{StrokeColor: color, StrokeWidth: 2}
	if settings.Display == model.DisplayBar {
		style.FillColor = color.WithAlpha(barFillAlpha)
	}
	return style
}

func parseColor(s string) drawing.Color {
	hex, err := model.ParseColor(s)
	if err != nil {
		return chart.ColorBlue
	}
	return drawing.ColorFromHex(strings.TrimPrefix(hex, "#"))
}

func valueFormatter(suffix string) chart.ValueFormatter {
	return func(v interface{}) string {
		f, ok := v.(float64)
		if !ok {
			return ""
		}
		if f == math.Trunc(f) {
			return strconv.FormatFloat(f, 'f', 0, 64) + suffix
		}
		return strconv.FormatFloat(f, 'f', 1, 64) + suffix
	}
}

func levelValues() []float64 {
	xs := make([]float64, kanji.NumLevels)
	for i := range xs {
		xs[i] = float64(i + 1)
	}
	return xs
}

func levelTicks() []chart.Tick {
	ticks := []chart.Tick{{Value: 1, Label: "1"}}
	for level := 10; level <= kanji.NumLevels; level += 10 {
		ticks = append(ticks, chart.Tick{Value: float64(level), Label: strconv.Itoa(level)})
	}
	return ticks
}

func allNaN(values []float64) bool {
	for _, v := range values {
		if !math.IsNaN(v) {
			return false
		}
	}
	return true
}

func maxValue(values []float64) float64 {
	peak := 0.0
	for _, v := range values {
		if !math.IsNaN(v) && v > peak {
			peak = v
		}
	}
	return peak
}

// niceMax rounds a positive maximum up to 1, 2 or 5 times a power of ten.
func niceMax(v float64) float64 {
	if v <= 0 {
		return 1
	}
	exp := math.Floor(math.Log10(v))
	base := math.Pow(10, exp)
	for _, m := range []float64{1, 2, 5, 10} {
		if v <= m*base {
			return m * base
		}
	}
	return 10 * base
}
