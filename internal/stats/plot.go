package stats

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/term"
)

// Series represents a named data series for plotting.
type Series struct {
	Name   string
	Values []float64
	// Bars fills each column down to the baseline instead of joining points.
	Bars bool
	// Suffix is appended to the min/max readout, e.g. "%".
	Suffix string
}

type seriesRange struct {
	min float64
	max float64
}

type lineStyle struct {
	name   string
	period int
	on     int
}

type ansiColor struct {
	name string
	code string
}

const (
	defaultPlotHeight   = 10
	minPlotWidth        = 10
	axisLabelTop        = "max"
	axisLabelBottom     = "0"
	axisSeparator       = " │ "
	scaleNote           = "Scaled per series; see ranges below."
	noDataNote          = "no data"
	colorReset          = "\x1b[0m"
	terminalWidthBackup = 80
)

var lineStyles = []lineStyle{
	{name: "solid", period: 1, on: 1},
	{name: "dashed", period: 6, on: 3},
	{name: "dotted", period: 4, on: 1},
}

var colorPalette = []ansiColor{
	{name: "blue", code: "\x1b[34m"},
	{name: "red", code: "\x1b[31m"},
	{name: "cyan", code: "\x1b[36m"},
	{name: "yellow", code: "\x1b[33m"},
}

// PlotSeries renders a multi-line text plot for the provided series.
func PlotSeries(w io.Writer, title string, series []Series, width, height int) error {
	return plotSeries(w, title, series, width, height, false)
}

// PlotSeriesWithColor renders a multi-line text plot with optional forced color output.
func PlotSeriesWithColor(w io.Writer, title string, series []Series, width, height int, forceColor bool) error {
	return plotSeries(w, title, series, width, height, forceColor)
}

func plotSeries(w io.Writer, title string, series []Series, width, height int, forceColor bool) error {
	plotted, skipped := filterSeries(series)
	if title != "" {
		if _, err := fmt.Fprintln(w, title); err != nil {
			return err
		}
	}
	for _, s := range skipped {
		if _, err := fmt.Fprintf(w, "%s: %s\n", s.Name, noDataNote); err != nil {
			return err
		}
	}
	if len(plotted) == 0 {
		return nil
	}
	levels := maxSeriesLen(plotted)

	if height <= 0 {
		height = defaultPlotHeight
	}
	if width <= 0 {
		width = autoPlotWidth()
	}
	if width < minPlotWidth {
		width = minPlotWidth
	}

	ranges := make([]seriesRange, 0, len(plotted))
	for _, s := range plotted {
		ranges = append(ranges, baselineRange(s.Values))
	}

	seriesCells := make([][][]uint8, 0, len(plotted))
	for si, s := range plotted {
		cells := makeCells(height, width)
		values := resampleSeries(s.Values, width)
		if s.Bars {
			drawBars(cells, values, ranges[si], height)
		} else {
			drawPolyline(cells, values, ranges[si], height, lineStyles[si%len(lineStyles)])
		}
		seriesCells = append(seriesCells, cells)
	}

	useColor := shouldUseColor(w, forceColor)
	leftAxisWidth := runewidth.StringWidth(axisLabelTop)

	if _, err := fmt.Fprintln(w, scaleNote); err != nil {
		return err
	}
	for i, s := range plotted {
		if _, err := fmt.Fprintf(w, "%s: %s%s to %s%s\n", s.Name,
			formatValue(ranges[i].min), s.Suffix, formatValue(ranges[i].max), s.Suffix); err != nil {
			return err
		}
	}
	axisLabels := makeAxisLabels(height)
	for y := 0; y < height; y++ {
		var row strings.Builder
		row.WriteString(fmt.Sprintf("%*s%s", leftAxisWidth, axisLabels[y], axisSeparator))
		for x := 0; x < width; x++ {
			mask, colorIdx := composeCell(seriesCells, x, y)
			ch := brailleFromMask(mask)
			if useColor && colorIdx >= 0 {
				row.WriteString(colorPalette[colorIdx%len(colorPalette)].code)
				row.WriteRune(ch)
				row.WriteString(colorReset)
			} else {
				row.WriteRune(ch)
			}
		}
		if _, err := fmt.Fprintln(w, row.String()); err != nil {
			return err
		}
	}
	prefix := strings.Repeat(" ", leftAxisWidth+runewidth.StringWidth(axisSeparator))
	if _, err := fmt.Fprintln(w, prefix+levelAxis(levels, width)); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, renderLegend(plotted, useColor)); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, ""); err != nil {
		return err
	}
	return nil
}

// filterSeries splits off series that are empty or hold only NaN values.
func filterSeries(series []Series) (plotted, skipped []Series) {
	for _, s := range series {
		if allNaN(s.Values) {
			skipped = append(skipped, s)
			continue
		}
		plotted = append(plotted, s)
	}
	return plotted, skipped
}

func allNaN(values []float64) bool {
	for _, v := range values {
		if !math.IsNaN(v) {
			return false
		}
	}
	return true
}

func maxSeriesLen(series []Series) int {
	maxLen := 0
	for _, s := range series {
		if len(s.Values) > maxLen {
			maxLen = len(s.Values)
		}
	}
	return maxLen
}

func autoPlotWidth() int {
	return PlotWidthFor(terminalWidth())
}

// PlotWidthFor computes a plot width that fits within the total available width.
func PlotWidthFor(totalWidth int) int {
	if totalWidth <= 0 {
		return minPlotWidth
	}
	axisWidth := runewidth.StringWidth(axisLabelTop) + runewidth.StringWidth(axisSeparator)
	plotWidth := totalWidth - axisWidth
	if plotWidth < minPlotWidth {
		plotWidth = minPlotWidth
	}
	return plotWidth
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}

func shouldUseColor(w io.Writer, force bool) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if force {
		return true
	}
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}

func makeAxisLabels(height int) []string {
	labels := make([]string, height)
	if height <= 0 {
		return labels
	}
	labels[0] = axisLabelTop
	if height > 1 {
		labels[height-1] = axisLabelBottom
	}
	return labels
}

// levelAxis labels the first level, the last level and a few in between.
func levelAxis(levels, width int) string {
	if levels <= 0 || width <= 0 {
		return ""
	}
	axis := []rune(strings.Repeat(" ", width))
	place := func(level int) {
		label := fmt.Sprintf("%d", level)
		x := 0
		if levels > 1 {
			x = int(math.Round(float64(level-1) * float64(width-1) / float64(levels-1)))
		}
		if x+len(label) > width {
			x = width - len(label)
		}
		if x < 0 {
			return
		}
		for i, r := range label {
			axis[x+i] = r
		}
	}
	place(1)
	for level := 10; level < levels; level += 10 {
		place(level)
	}
	place(levels)
	return strings.TrimRight(string(axis), " ")
}

// baselineRange anchors the scale at zero so bars and counts read naturally.
func baselineRange(values []float64) seriesRange {
	minVal, maxVal := 0.0, 0.0
	for _, v := range values {
		if math.IsNaN(v) {
			continue
		}
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		maxVal = minVal + 1
	}
	return seriesRange{min: minVal, max: maxVal}
}

func makeCells(height, width int) [][]uint8 {
	cells := make([][]uint8, height)
	for y := 0; y < height; y++ {
		cells[y] = make([]uint8, width)
	}
	return cells
}

func drawPolyline(cells [][]uint8, values []float64, r seriesRange, height int, style lineStyle) {
	dotRows := height * 4
	prevX, prevY := -1, -1
	for x, v := range values {
		if math.IsNaN(v) {
			prevX, prevY = -1, -1
			continue
		}
		px := x * 2
		py := valueToRow(v, r.min, r.max, dotRows)
		if prevX >= 0 {
			drawLine(prevX, prevY, px, py, func(dx, dy int) {
				if style.shouldPlot(dx) {
					setBrailleDot(cells, dx, dy)
				}
			})
		} else if style.shouldPlot(px) {
			setBrailleDot(cells, px, py)
		}
		prevX, prevY = px, py
	}
}

func drawBars(cells [][]uint8, values []float64, r seriesRange, height int) {
	dotRows := height * 4
	baseline := valueToRow(0, r.min, r.max, dotRows)
	for x, v := range values {
		if math.IsNaN(v) {
			continue
		}
		top := valueToRow(v, r.min, r.max, dotRows)
		lo, hi := top, baseline
		if lo > hi {
			lo, hi = hi, lo
		}
		// Left dot column only, so adjacent bars stay visually separate.
		for y := lo; y <= hi; y++ {
			setBrailleDot(cells, x*2, y)
		}
	}
}

func composeCell(seriesCells [][][]uint8, x, y int) (uint8, int) {
	var mask uint8
	colorIdx := -1
	for i, cells := range seriesCells {
		if y < 0 || y >= len(cells) {
			continue
		}
		if x < 0 || x >= len(cells[y]) {
			continue
		}
		cellMask := cells[y][x]
		if cellMask == 0 {
			continue
		}
		if colorIdx == -1 {
			colorIdx = i
		}
		mask |= cellMask
	}
	return mask, colorIdx
}

func (ls lineStyle) shouldPlot(x int) bool {
	if ls.period <= 1 {
		return true
	}
	if x < 0 {
		x = -x
	}
	return x%ls.period < ls.on
}

// resampleSeries stretches values across width columns by nearest sample, which
// keeps each level's value as a flat step rather than interpolating between levels.
func resampleSeries(values []float64, width int) []float64 {
	if len(values) == 0 || width <= 0 {
		return nil
	}
	out := make([]float64, width)
	for i := range out {
		idx := int(float64(i) * float64(len(values)) / float64(width))
		if idx >= len(values) {
			idx = len(values) - 1
		}
		out[i] = values[idx]
	}
	return out
}

func valueToRow(v, minVal, maxVal float64, height int) int {
	if height <= 1 {
		return 0
	}
	pos := (v - minVal) / (maxVal - minVal)
	row := int(math.Round((1 - pos) * float64(height-1)))
	if row < 0 {
		row = 0
	}
	if row >= height {
		row = height - 1
	}
	return row
}

func renderLegend(series []Series, useColor bool) string {
	parts := make([]string, 0, len(series))
	for i, s := range series {
		marker := "line, " + lineStyles[i%len(lineStyles)].name
		if s.Bars {
			marker = "bars"
		}
		label := fmt.Sprintf("%c %s (%s)", brailleFromMask(0x01), s.Name, marker)
		if useColor {
			label = colorPalette[i%len(colorPalette)].code + label + colorReset
		}
		parts = append(parts, label)
	}
	return "Legend: " + strings.Join(parts, "  ")
}

func formatValue(v float64) string {
	if v == math.Trunc(v) {
		return fmt.Sprintf("%.0f", v)
	}
	return fmt.Sprintf("%.1f", v)
}

func drawLine(x0, y0, x1, y1 int, plot func(x, y int)) {
	dx := int(math.Abs(float64(x1 - x0)))
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -int(math.Abs(float64(y1 - y0)))
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		plot(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			if x0 == x1 {
				break
			}
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			if y0 == y1 {
				break
			}
			err += dx
			y0 += sy
		}
	}
}

func setBrailleDot(cells [][]uint8, x, y int) {
	if y < 0 || x < 0 {
		return
	}
	cellY := y / 4
	cellX := x / 2
	if cellY >= len(cells) || cellX >= len(cells[cellY]) {
		return
	}
	cells[cellY][cellX] |= brailleDotMask(x%2, y%4)
}

var brailleDots = [2][4]uint8{
	{0x01, 0x02, 0x04, 0x40},
	{0x08, 0x10, 0x20, 0x80},
}

func brailleDotMask(x, y int) uint8 {
	if x < 0 || x > 1 || y < 0 || y > 3 {
		return 0
	}
	return brailleDots[x][y]
}

func brailleFromMask(mask uint8) rune {
	return rune(0x2800 + int(mask))
}
