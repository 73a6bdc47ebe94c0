package stats

import (
	"context"
	"fmt"
	"io"

	"github.com/verte-zerg/kanjicurve/internal/kanji"
	"github.com/verte-zerg/kanjicurve/internal/model"
	"github.com/verte-zerg/kanjicurve/internal/store"
)

// Report contains precomputed data for analysis rendering.
type Report struct {
	Summary  model.AnalysisSummary
	Analysis kanji.TextAnalysis
	Progress kanji.Progress
	Chart    Chart
}

// Sections selects the optional parts of a rendered report.
type Sections struct {
	Table   bool
	Outside bool
}

// BuildReport prepares an in-memory analysis for rendering.
func BuildReport(summary model.AnalysisSummary, a kanji.TextAnalysis, cfg model.AnalyzeConfig) Report {
	return Report{
		Summary:  summary,
		Analysis: a,
		Progress: a.Progress(cfg.UserLevel),
		Chart:    BuildChart(a, cfg.Chart),
	}
}

// LoadReport loads a saved analysis and prepares it for rendering.
func LoadReport(ctx context.Context, st *store.Store, id int64, cfg model.AnalyzeConfig) (Report, error) {
	summary, a, err := st.LoadAnalysis(ctx, id)
	if err != nil {
		return Report{}, err
	}
	return BuildReport(summary, a, cfg), nil
}

// RenderReport prints the summary, the chart and any requested sections.
func RenderReport(w io.Writer, report Report, cfg model.AnalyzeConfig, sections Sections) error {
	if report.Summary.ID > 0 {
		if _, err := fmt.Fprintf(w, "Analysis #%d (%s, %s)\n\n", report.Summary.ID, report.Summary.Source,
			report.Summary.CreatedAt.Local().Format("2006-01-02 15:04")); err != nil {
			return err
		}
	}
	if err := RenderSummary(w, report.Analysis, cfg.UserLevel); err != nil {
		return err
	}
	if report.Analysis.TotalOccurrences == 0 {
		return nil
	}
	if err := RenderChart(w, report.Chart, cfg.Width, cfg.Height, cfg.Color); err != nil {
		return err
	}
	if sections.Table {
		if _, err := fmt.Fprintln(w, ""); err != nil {
			return err
		}
		if err := RenderLevelTable(w, report.Analysis, levelTableKanjiWidth(cfg.Width)); err != nil {
			return err
		}
	}
	if sections.Outside {
		width := cfg.Width
		if width <= 0 {
			width = terminalWidth()
		}
		if err := RenderOutside(w, report.Analysis, width); err != nil {
			return err
		}
	}
	return nil
}

func levelTableKanjiWidth(totalWidth int) int {
	if totalWidth <= 0 {
		totalWidth = terminalWidth()
	}
	// Level, count and percentage columns take roughly this many cells.
	const fixed = 70
	if totalWidth-fixed < 10 {
		return 10
	}
	return totalWidth - fixed
}
