package stats

import (
	"testing"

	"github.com/mattn/go-runewidth"
)

func TestPlotWidthFor(t *testing.T) {
	axisWidth := runewidth.StringWidth(axisLabelTop) + runewidth.StringWidth(axisSeparator)
	total := 80
	if got := PlotWidthFor(total); got != total-axisWidth {
		t.Fatalf("expected width %d, got %d", total-axisWidth, got)
	}
	if got := PlotWidthFor(axisWidth + 3); got != minPlotWidth {
		t.Fatalf("expected narrow terminals to get min width %d, got %d", minPlotWidth, got)
	}
	if got := PlotWidthFor(0); got != minPlotWidth {
		t.Fatalf("expected min width %d, got %d", minPlotWidth, got)
	}
}
