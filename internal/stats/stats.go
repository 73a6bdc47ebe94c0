// Package stats contains kanji statistics rendering and reporting.
package stats

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/kanjicurve/internal/kanji"
)

const topKanjiCount = 10

// FormatPercent formats a percentage, or "-" when it is NaN.
func FormatPercent(v float64) string {
	if math.IsNaN(v) {
		return "-"
	}
	return fmt.Sprintf("%.1f%%", v)
}

// RenderSummary prints totals and level progress for an analysis.
func RenderSummary(w io.Writer, a kanji.TextAnalysis, userLevel int) error {
	if a.TotalOccurrences == 0 {
		_, err := fmt.Fprintln(w, "No kanji in the input.")
		return err
	}
	p := a.Progress(userLevel)
	lines := []string{
		"Summary",
		fmt.Sprintf("Total kanji: %d", a.TotalOccurrences),
		fmt.Sprintf("Total unique kanji: %d", a.TotalUniqueKanji),
		fmt.Sprintf("Your level: %d", p.UserLevel),
		fmt.Sprintf("Learned kanji: %d (%s)", p.Learned, FormatPercent(p.LearnedPercent)),
		fmt.Sprintf("Kanji above level: %d (%s)", p.AboveLevel, FormatPercent(p.AboveLevelPercent)),
		fmt.Sprintf("Kanji outside levels: %d (%s)", p.Outside, FormatPercent(p.OutsidePercent)),
	}
	if top := TopKanji(a, topKanjiCount); len(top) > 0 {
		lines = append(lines, "Most frequent: "+formatKanjiCounts(a, top))
	}
	if next := NextToLearn(a, userLevel, topKanjiCount); len(next) > 0 {
		lines = append(lines, "Learn next: "+formatKanjiCounts(a, next))
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w, ""); err != nil {
		return err
	}
	return nil
}

func formatKanjiCounts(a kanji.TextAnalysis, list []rune) string {
	parts := make([]string, 0, len(list))
	for _, r := range list {
		parts = append(parts, fmt.Sprintf("%c×%d", r, a.Frequency[r].Occurrences))
	}
	return strings.Join(parts, " ")
}

// RenderLevelTable prints one row per level with counts and cumulative percentages.
func RenderLevelTable(w io.Writer, a kanji.TextAnalysis, kanjiWidth int) error {
	if _, err := fmt.Fprintln(w, "Per-Level"); err != nil {
		return err
	}
	headers, rows := LevelTableRows(a, kanjiWidth)
	rightAlign := map[int]bool{1: true, 2: true, 3: true, 4: true, 5: true}
	for _, line := range formatTable(headers, rows, rightAlign) {
		if _, err := fmt.Fprintln(w, strings.TrimRight(line, " ")); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w, ""); err != nil {
		return err
	}
	return nil
}

// LevelTableRows builds the per-level table cells. Kanji lists longer than
// kanjiWidth cells are truncated; kanjiWidth <= 0 disables truncation.
func LevelTableRows(a kanji.TextAnalysis, kanjiWidth int) ([]string, [][]string) {
	headers := []string{"Level", "Unique", "Total %", "Occurrences", "Occ. Total %", "New", "Kanji"}
	unique := kanji.DeriveSeries(a, kanji.UnitUnique, kanji.AxisPerLevel)
	uniquePct := kanji.DeriveSeries(a, kanji.UnitUniquePercent, kanji.AxisCumulative)
	occ := kanji.DeriveSeries(a, kanji.UnitOccurrences, kanji.AxisPerLevel)
	occPct := kanji.DeriveSeries(a, kanji.UnitOccurrencesPercent, kanji.AxisCumulative)
	newPct := kanji.DeriveSeries(a, kanji.UnitUniquePercent, kanji.AxisPerLevel)

	rows := make([][]string, 0, kanji.NumLevels)
	for i := 0; i < kanji.NumLevels; i++ {
		list := string(a.PerLevel[i])
		if kanjiWidth > 0 {
			list = runewidth.Truncate(list, kanjiWidth, "…")
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			fmt.Sprintf("%.0f", unique[i]),
			FormatPercent(uniquePct[i]),
			fmt.Sprintf("%.0f", occ[i]),
			FormatPercent(occPct[i]),
			formatPoints(newPct[i]),
			list,
		})
	}
	return headers, rows
}

func formatPoints(v float64) string {
	if math.IsNaN(v) {
		return "-"
	}
	return fmt.Sprintf("%.1f pp", v)
}

// RenderOutside prints the kanji that belong to no level, wrapped to width cells.
func RenderOutside(w io.Writer, a kanji.TextAnalysis, width int) error {
	if _, err := fmt.Fprintf(w, "Kanji outside levels (%d)\n", len(a.OutsideLevels)); err != nil {
		return err
	}
	if len(a.OutsideLevels) == 0 {
		_, err := fmt.Fprintln(w, "None.")
		return err
	}
	for _, line := range WrapKanji(a.OutsideLevels, width) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w, ""); err != nil {
		return err
	}
	return nil
}

// WrapKanji joins kanji with the ideographic comma and wraps at width cells.
func WrapKanji(list []rune, width int) []string {
	const sep = "、"
	var lines []string
	var line strings.Builder
	lineWidth := 0
	for i, r := range list {
		item := string(r)
		if i < len(list)-1 {
			item += sep
		}
		itemWidth := runewidth.StringWidth(item)
		if width > 0 && lineWidth > 0 && lineWidth+itemWidth > width {
			lines = append(lines, line.String())
			line.Reset()
			lineWidth = 0
		}
		line.WriteString(item)
		lineWidth += itemWidth
	}
	if line.Len() > 0 {
		lines = append(lines, line.String())
	}
	return lines
}
