package kanji

import (
	"fmt"
	"strings"
)

// Unit selects what a chart series counts.
type Unit int

const (
	// UnitUnique counts distinct kanji per level.
	UnitUnique Unit = iota
	// UnitOccurrences counts every occurrence of the kanji in a level.
	UnitOccurrences
	// UnitUniquePercent is UnitUnique as a percentage of all distinct kanji.
	UnitUniquePercent
	// UnitOccurrencesPercent is UnitOccurrences as a percentage of all occurrences.
	UnitOccurrencesPercent
)

// Units lists every unit in display order.
var Units = []Unit{UnitUnique, UnitOccurrences, UnitUniquePercent, UnitOccurrencesPercent}

// String returns the config/CLI name of the unit.
func (u Unit) String() string {
	switch u {
	case UnitUnique:
		return "unique"
	case UnitOccurrences:
		return "total"
	case UnitUniquePercent:
		return "unique-percent"
	case UnitOccurrencesPercent:
		return "total-percent"
	default:
		return fmt.Sprintf("Unit(%d)", int(u))
	}
}

// IsPercent reports whether the unit is expressed as a percentage.
func (u Unit) IsPercent() bool {
	return u == UnitUniquePercent || u == UnitOccurrencesPercent
}

// ParseUnit parses a unit name as produced by Unit.String.
func ParseUnit(s string) (Unit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "unique":
		return UnitUnique, nil
	case "total", "occurrences":
		return UnitOccurrences, nil
	case "unique-percent":
		return UnitUniquePercent, nil
	case "total-percent", "occurrences-percent":
		return UnitOccurrencesPercent, nil
	}
	return 0, fmt.Errorf("unknown unit %q (expected unique, total, unique-percent or total-percent)", s)
}

// AxisType selects whether a series is per level or a running total.
type AxisType int

const (
	// AxisPerLevel reports each level on its own.
	AxisPerLevel AxisType = iota
	// AxisCumulative reports the running total up to each level.
	AxisCumulative
)

// String returns the config/CLI name of the axis type.
func (t AxisType) String() string {
	switch t {
	case AxisPerLevel:
		return "per-level"
	case AxisCumulative:
		return "cumulative"
	default:
		return fmt.Sprintf("AxisType(%d)", int(t))
	}
}

// ParseAxisType parses an axis type name.
func ParseAxisType(s string) (AxisType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "per-level", "delta":
		return AxisPerLevel, nil
	case "cumulative", "total":
		return AxisCumulative, nil
	}
	return 0, fmt.Errorf("unknown axis type %q (expected per-level or cumulative)", s)
}

// DeriveSeries turns an analysis into NumLevels values ordered by level.
//
// Percent units divide by the matching grand total. When that total is zero the
// values are NaN rather than 0, so callers can tell "no data" apart from "none".
// An unknown unit or axis type is a programming error and panics.
func DeriveSeries(a TextAnalysis, unit Unit, axis AxisType) []float64 {
	out := make([]float64, NumLevels)
	var total int
	switch unit {
	case UnitUnique, UnitUniquePercent:
		total = a.TotalUniqueKanji
		for i := range out {
			out[i] = float64(len(a.PerLevel[i]))
		}
	case UnitOccurrences, UnitOccurrencesPercent:
		total = a.TotalOccurrences
		for i := range out {
			out[i] = float64(a.LevelOccurrences(Level(i)))
		}
	default:
		panic(fmt.Sprintf("kanji: unknown unit %d", int(unit)))
	}

	switch axis {
	case AxisPerLevel:
	case AxisCumulative:
		for i := 1; i < len(out); i++ {
			out[i] += out[i-1]
		}
	default:
		panic(fmt.Sprintf("kanji: unknown axis type %d", int(axis)))
	}

	if unit.IsPercent() {
		// 0/0 is NaN in IEEE arithmetic, which is the intended "no data" value.
		den := float64(total)
		for i := range out {
			out[i] = out[i] / den * 100
		}
	}
	return out
}
