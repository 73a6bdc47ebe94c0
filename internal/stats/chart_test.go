package stats

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/verte-zerg/kanjicurve/internal/kanji"
	"github.com/verte-zerg/kanjicurve/internal/model"
)

func TestBuildChartDefault(t *testing.T) {
	a := testAnalysis(t, "一水水山")
	chart := BuildChart(a, model.DefaultChartSettings())
	if len(chart.Datasets) != 2 {
		t.Fatalf("expected 2 datasets, got %d", len(chart.Datasets))
	}
	cumulative := chart.Datasets[0]
	if cumulative.Axis != kanji.AxisCumulative || cumulative.Label != "Total % of known unique kanji" {
		t.Fatalf("unexpected cumulative dataset: %+v", cumulative)
	}
	if len(cumulative.Values) != kanji.NumLevels || math.Abs(cumulative.Values[kanji.NumLevels-1]-100) > 1e-9 {
		t.Fatalf("expected cumulative percent to end at 100, got %v", cumulative.Values[kanji.NumLevels-1])
	}
	perLevel := chart.Datasets[1]
	if perLevel.Axis != kanji.AxisPerLevel || perLevel.Values[1] != 1 || perLevel.Values[2] != 1 {
		t.Fatalf("unexpected per-level dataset: %+v", perLevel)
	}
}

func TestBuildChartSkipsDisabledAxes(t *testing.T) {
	settings := model.DefaultChartSettings()
	settings.Cumulative.Enabled = false
	settings.PerLevel.Enabled = false
	chart := BuildChart(testAnalysis(t, "一"), settings)
	if len(chart.Datasets) != 0 {
		t.Fatalf("expected no datasets, got %d", len(chart.Datasets))
	}
	var buf bytes.Buffer
	if err := RenderChart(&buf, chart, 80, 5, false); err != nil {
		t.Fatalf("RenderChart failed: %v", err)
	}
	if strings.TrimSpace(buf.String()) != "No chart axes enabled." {
		t.Fatalf("unexpected output %q", buf.String())
	}
}

func TestRenderChartWithoutKanji(t *testing.T) {
	settings := model.DefaultChartSettings()
	settings.PerLevel.Unit = kanji.UnitOccurrencesPercent
	chart := BuildChart(testAnalysis(t, ""), settings)
	var buf bytes.Buffer
	if err := RenderChart(&buf, chart, 80, 5, false); err != nil {
		t.Fatalf("RenderChart failed: %v", err)
	}
	out := buf.String()
	if strings.Count(out, "no data") != 2 {
		t.Fatalf("expected both percent series marked as no data:\n%s", out)
	}
	if strings.Contains(out, "Legend:") {
		t.Fatalf("expected no plot when every series is empty:\n%s", out)
	}
}

func TestUnitSuffix(t *testing.T) {
	if got := UnitSuffix(kanji.AxisCumulative, kanji.UnitUniquePercent); got != "%" {
		t.Fatalf("unexpected cumulative suffix %q", got)
	}
	if got := UnitSuffix(kanji.AxisPerLevel, kanji.UnitOccurrencesPercent); got != " pp" {
		t.Fatalf("unexpected per-level suffix %q", got)
	}
	if got := UnitSuffix(kanji.AxisPerLevel, kanji.UnitUnique); got != "" {
		t.Fatalf("expected no suffix for counts, got %q", got)
	}
}

func TestRenderChartStringTitle(t *testing.T) {
	settings := model.DefaultChartSettings()
	settings.Title = "My Novel"
	out := RenderChartString(BuildChart(testAnalysis(t, "一水"), settings), 80, 6, false)
	if !strings.HasPrefix(out, "My Novel") {
		t.Fatalf("expected custom title first, got:\n%s", out)
	}
}
