package tui

import (
	"fmt"

	"github.com/mum4k/termdash/container"

	"github.com/Prajwal-Prathiksh/rainchart/internal/analytics"
	"github.com/Prajwal-Prathiksh/rainchart/internal/chart"
	"github.com/Prajwal-Prathiksh/rainchart/internal/source"
	"github.com/Prajwal-Prathiksh/rainchart/internal/widgets"
)

// ChartTitle returns the chart border title for the visible window.
func ChartTitle(title string, visible chart.Range) string {
	if title == "" {
		title = "Weather"
	}
	return fmt.Sprintf("%s [%s to %s] - %s", title, analytics.FormatClock(visible.Min), analytics.FormatClock(visible.Max), chartKeys)
}

// UpdateChartTitleFromZoom updates the chart title with the current zoom window
func UpdateChartTitleFromZoom(c *container.Container, chartWidget *widgets.RainChart) error {
	visible, err := chartWidget.Visible()
	if err != nil {
		return err
	}
	return c.Update(ChartContainerID, container.BorderTitle(ChartTitle(chartWidget.Title(), visible)))
}

// UpdateWidgets loads a dataset into the chart and the interval bars.
func UpdateWidgets(chartWidget *widgets.RainChart, barsWidget *widgets.IntervalBars, ds source.Dataset, styles analytics.StyleTable) error {
	if err := chartWidget.Load(ds.Document); err != nil {
		return fmt.Errorf("updating chart: %w", err)
	}
	barsWidget.Update(ds.Intervals, styles)
	return nil
}
