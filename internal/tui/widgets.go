package tui

import (
	"github.com/Prajwal-Prathiksh/rainchart/internal/chart"
	"github.com/Prajwal-Prathiksh/rainchart/internal/config"
	"github.com/Prajwal-Prathiksh/rainchart/internal/widgets"

	"github.com/mum4k/termdash/container"
	"github.com/mum4k/termdash/keyboard"
	"github.com/mum4k/termdash/linestyle"
	"github.com/mum4k/termdash/terminal/terminalapi"
	"github.com/mum4k/termdash/widgets/text"
)

// ChartContainerID identifies the chart container for title updates.
const ChartContainerID = "chart-container"

const chartKeys = "i/o/wheel: zoom, drag/←→↑↓: pan, m: modifier, c: clear pins, f: fit, esc: reset"

// CreateChartWidget creates the rain chart widget with the configured
// colors and zoom policy.
func CreateChartWidget(cfg config.Config) (*widgets.RainChart, error) {
	cc, err := cfg.Chart()
	if err != nil {
		return nil, err
	}
	return widgets.NewRainChart(chart.NewModel(cc), widgets.Zoom(cfg.Interact()))
}

// CreateBarsWidget creates the interval bar chart.
func CreateBarsWidget() *widgets.IntervalBars {
	return widgets.NewIntervalBars()
}

// CreateTextWidget creates and configures the text display widget
func CreateTextWidget() (*text.Text, error) {
	return text.New(text.WrapAtWords())
}

// CreateUILayout creates the TUI container layout with all widgets
func CreateUILayout(t terminalapi.Terminal, chartWidget *widgets.RainChart, barsWidget *widgets.IntervalBars, textWidget *text.Text) (*container.Container, error) {
	return container.New(
		t,
		container.Border(linestyle.Light),
		container.BorderTitle("Rain Chart - Tab/Shift+Tab: focus, q: quit, r: refresh, p: save PNG"),
		container.KeyFocusNext(keyboard.KeyTab),
		container.KeyFocusPrevious(keyboard.KeyBacktab),
		container.SplitHorizontal(
			container.Top(
				container.ID(ChartContainerID),
				container.Border(linestyle.Light),
				container.BorderTitle("Weather - "+chartKeys),
				container.PlaceWidget(chartWidget),
			),
			container.Bottom(
				container.SplitVertical(
					container.Left(
						container.Border(linestyle.Light),
						container.BorderTitle("Rain Summary - ↑↓ to scroll"),
						container.PlaceWidget(textWidget),
					),
					container.Right(
						container.Border(linestyle.Light),
						container.BorderTitle("Rain Intervals"),
						container.PlaceWidget(barsWidget),
					),
					container.SplitPercent(55),
				),
			),
			container.SplitPercent(62),
		),
	)
}
