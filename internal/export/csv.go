// Package export writes analyses to CSV and PNG files.
package export

import (
	"encoding/csv"
	"errors"
	"io"
	"math"
	"strconv"

	"github.com/verte-zerg/kanjicurve/internal/kanji"
)

// ErrNoData is returned when every series to export is empty.
var ErrNoData = errors.New("no data to export")

var csvHeader = []string{"level", "totalKanji", "totalPercentage", "uniqueKanji", "uniquePercentage"}

// WriteCSV writes one row per level with occurrence and unique-kanji counts and
// percentages along the given axis.
func WriteCSV(w io.Writer, a kanji.TextAnalysis, axis kanji.AxisType) error {
	total := kanji.DeriveSeries(a, kanji.UnitOccurrences, axis)
	totalPct := kanji.DeriveSeries(a, kanji.UnitOccurrencesPercent, axis)
	unique := kanji.DeriveSeries(a, kanji.UnitUnique, axis)
	uniquePct := kanji.DeriveSeries(a, kanji.UnitUniquePercent, axis)

	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for i := 0; i < kanji.NumLevels; i++ {
		record := []string{
			strconv.Itoa(i + 1),
			formatCount(total[i]),
			formatPercent(totalPct[i]),
			formatCount(unique[i]),
			formatPercent(uniquePct[i]),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatCount(v float64) string {
	return strconv.FormatFloat(v, 'f', 0, 64)
}

func formatPercent(v float64) string {
	if math.IsNaN(v) {
		return "NaN"
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}
