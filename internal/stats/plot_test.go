package stats

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/verte-zerg/kanjicurve/internal/kanji"
)

func levelSeries(f func(level int) float64) []float64 {
	values := make([]float64, kanji.NumLevels)
	for i := range values {
		values[i] = f(i + 1)
	}
	return values
}

func TestPlotSeriesLevels(t *testing.T) {
	cumulative := levelSeries(func(level int) float64 { return float64(level) * 100 / kanji.NumLevels })
	perLevel := levelSeries(func(level int) float64 { return float64(level % 3) })
	missing := levelSeries(func(int) float64 { return math.NaN() })

	var buf bytes.Buffer
	err := PlotSeries(&buf, "Kanji curve", []Series{
		{Name: "Known unique %", Values: cumulative, Suffix: "%"},
		{Name: "New unique", Values: perLevel, Bars: true},
		{Name: "Occurrence %", Values: missing, Suffix: "%"},
	}, kanji.NumLevels, 6)
	if err != nil {
		t.Fatalf("PlotSeries failed: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"Kanji curve",
		"Occurrence %: no data",
		scaleNote,
		"Known unique %: 0% to 100%",
		"New unique: 0 to 2",
		"Known unique % (line, solid)",
		"New unique (bars)",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Occurrence % (") {
		t.Fatalf("expected NaN series to stay out of the legend:\n%s", out)
	}

	rows := 0
	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(line, axisSeparator) {
			rows++
		}
	}
	if rows != 6 {
		t.Fatalf("expected 6 plot rows, got %d:\n%s", rows, out)
	}
}

func TestPlotSeriesOnlyNaN(t *testing.T) {
	var buf bytes.Buffer
	missing := levelSeries(func(int) float64 { return math.NaN() })
	if err := PlotSeries(&buf, "", []Series{{Name: "Unique %", Values: missing}}, 40, 4); err != nil {
		t.Fatalf("PlotSeries failed: %v", err)
	}
	if got := strings.TrimSpace(buf.String()); got != "Unique %: no data" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestDrawBarsFillsToBaseline(t *testing.T) {
	cells := makeCells(1, 2)
	drawBars(cells, []float64{0, 2}, baselineRange([]float64{0, 2}), 1)
	if cells[0][0] != 0x40 {
		t.Fatalf("expected a zero bar to mark the baseline only, got %#x", cells[0][0])
	}
	if cells[0][1] != 0x01|0x02|0x04|0x40 {
		t.Fatalf("expected a full left dot column, got %#x", cells[0][1])
	}
}

func TestLevelAxis(t *testing.T) {
	axis := levelAxis(kanji.NumLevels, kanji.NumLevels)
	if !strings.HasPrefix(axis, "1 ") || !strings.HasSuffix(axis, "60") {
		t.Fatalf("unexpected axis %q", axis)
	}
	if axis[9:11] != "10" || axis[49:51] != "50" {
		t.Fatalf("expected decade labels at their columns, got %q", axis)
	}
	if levelAxis(0, 10) != "" {
		t.Fatalf("expected empty axis without levels")
	}
}
