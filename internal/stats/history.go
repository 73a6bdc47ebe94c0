package stats

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/kanjicurve/internal/model"
)

const historySourceWidth = 40

// RenderHistory prints saved analyses, newest first.
func RenderHistory(w io.Writer, analyses []model.AnalysisSummary) error {
	if len(analyses) == 0 {
		_, err := fmt.Fprintln(w, "No saved analyses.")
		return err
	}
	headers := []string{"ID", "Created", "Kanji", "Unique", "Source"}
	rows := make([][]string, 0, len(analyses))
	for _, a := range analyses {
		rows = append(rows, []string{
			fmt.Sprintf("%d", a.ID),
			a.CreatedAt.Local().Format("2006-01-02 15:04"),
			fmt.Sprintf("%d", a.TotalOccurrences),
			fmt.Sprintf("%d", a.TotalUniqueKanji),
			runewidth.Truncate(a.Source, historySourceWidth, "…"),
		})
	}
	rightAlign := map[int]bool{0: true, 2: true, 3: true}
	for _, line := range formatTable(headers, rows, rightAlign) {
		if _, err := fmt.Fprintln(w, strings.TrimRight(line, " ")); err != nil {
			return err
		}
	}
	return nil
}
