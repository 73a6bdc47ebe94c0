package config

import (
	"fmt"

	"github.com/verte-zerg/kanjicurve/internal/kanji"
	"github.com/verte-zerg/kanjicurve/internal/model"
)

// ApplyChart overlays the values set in the config file onto base.
func (c ChartConfig) ApplyChart(base model.ChartSettings) (model.ChartSettings, error) {
	out := base
	if c.Title != nil {
		out.Title = *c.Title
	}
	if c.Legend != nil {
		out.DisplayLegend = *c.Legend
	}
	var err error
	if out.PerLevel, err = c.PerLevel.apply(out.PerLevel); err != nil {
		return base, fmt.Errorf("chart.per-level: %w", err)
	}
	if out.Cumulative, err = c.Cumulative.apply(out.Cumulative); err != nil {
		return base, fmt.Errorf("chart.cumulative: %w", err)
	}
	return out, nil
}

func (a AxisConfig) apply(base model.AxisSettings) (model.AxisSettings, error) {
	out := base
	if a.Enabled != nil {
		out.Enabled = *a.Enabled
	}
	if a.Position != nil {
		pos, err := model.ParseScalePosition(*a.Position)
		if err != nil {
			return base, err
		}
		out.Position = pos
	}
	if a.Unit != nil {
		unit, err := kanji.ParseUnit(*a.Unit)
		if err != nil {
			return base, err
		}
		out.Unit = unit
	}
	if a.Display != nil {
		display, err := model.ParseDisplayType(*a.Display)
		if err != nil {
			return base, err
		}
		out.Display = display
	}
	if a.Color != nil {
		color, err := model.ParseColor(*a.Color)
		if err != nil {
			return base, err
		}
		out.Color = color
	}
	return out, nil
}
