package render

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/Prajwal-Prathiksh/rainchart/internal/analytics"
	"github.com/Prajwal-Prathiksh/rainchart/internal/chart"
)

// HTML writes a standalone echarts page. All data points are included;
// the data zoom slider starts at the visible window of m.
func HTML(w io.Writer, m *chart.Model, o Options) error {
	o = o.withDefaults()
	f, err := newFrame(m, o)
	if err != nil {
		return err
	}
	line := buildLine(f, o)
	if err := line.Render(w); err != nil {
		return fmt.Errorf("render: html: %w", err)
	}
	return nil
}

func buildLine(f frame, o Options) *charts.Line {
	start, end := zoomWindow(f.full, f.x)

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: f.title,
			Width:     fmt.Sprintf("%dpx", o.Width),
			Height:    fmt.Sprintf("%dpx", o.Height),
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    f.title,
			Subtitle: fmt.Sprintf("%s to %s", analytics.FormatClock(f.x.Min), analytics.FormatClock(f.x.Max)),
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: "axis",
		}),
		charts.WithLegendOpts(opts.Legend{
			Show: opts.Bool(true),
			Top:  "bottom",
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Type: "value",
			Name: f.cfg.XAxis.String(),
			Min:  f.full.Min,
			Max:  f.full.Max,
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Type: "value",
			Name: f.cfg.LeftAxis.String(),
			Min:  f.left.Min,
			Max:  f.left.Max,
		}),
		charts.WithDataZoomOpts(opts.DataZoom{
			Type:  "slider",
			Start: start,
			End:   end,
		}),
	)
	if f.rightEnabled {
		line.ExtendYAxis(opts.YAxis{
			Type: "value",
			Name: f.cfg.RightAxis.String(),
			Min:  f.right.Min,
			Max:  f.right.Max,
		})
	}

	guides := markLines(f)
	first := true
	for _, s := range f.series {
		if s.Axis() == chart.Right && !f.rightEnabled {
			continue
		}
		axis := 0
		if s.Axis() == chart.Right {
			axis = 1
		}
		options := []charts.SeriesOpts{
			charts.WithLineChartOpts(opts.LineChart{
				YAxisIndex: axis,
				ShowSymbol: opts.Bool(false),
			}),
			charts.WithLineStyleOpts(opts.LineStyle{
				Color: s.Color().Opaque().CSS(),
				Width: float32(s.LineWidth()),
			}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: s.Color().Opaque().CSS()}),
		}
		if first && len(guides) > 0 {
			options = append(options,
				charts.WithMarkLineNameXAxisItemOpts(guides...),
				charts.WithMarkLineStyleOpts(opts.MarkLineStyle{
					Symbol: []string{"none", "none"},
					Label:  &opts.Label{Show: opts.Bool(true)},
				}),
			)
		}
		first = false
		line.AddSeries(s.Name(), lineData(s), options...)
	}

	// A region is a flat series along the top of the left window whose
	// area fill reaches down to the axis.
	for _, reg := range f.regions {
		name := "Rain"
		if reg.Label != "" {
			name = "Rain: " + reg.Label
		}
		data := []opts.LineData{
			{Value: []interface{}{reg.StartX, f.left.Max}, Name: reg.Tooltip},
			{Value: []interface{}{reg.EndX, f.left.Max}, Name: reg.Tooltip},
		}
		line.AddSeries(name, data,
			charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(false)}),
			charts.WithLineStyleOpts(opts.LineStyle{Color: reg.Color.Opaque().CSS(), Width: 0}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: reg.Color.Opaque().CSS()}),
			charts.WithAreaStyleOpts(opts.AreaStyle{
				Color:   reg.Color.Opaque().CSS(),
				Opacity: opts.Float(float32(reg.Color.A)),
			}),
		)
	}
	return line
}

func lineData(s chart.Series) []opts.LineData {
	data := make([]opts.LineData, 0, s.Len())
	for i := 0; i < s.Len(); i++ {
		data = append(data, opts.LineData{Value: []interface{}{s.X(i), s.Y(i)}})
	}
	return data
}

func markLines(f frame) []opts.MarkLineNameXAxisItem {
	items := make([]opts.MarkLineNameXAxisItem, 0, len(f.markers)+len(f.pins))
	for _, mk := range f.markers {
		items = append(items, opts.MarkLineNameXAxisItem{Name: mk.Text, XAxis: mk.X})
	}
	for _, p := range f.pins {
		items = append(items, opts.MarkLineNameXAxisItem{Name: "Pin " + analytics.FormatClock(p), XAxis: p})
	}
	return items
}

// zoomWindow returns the visible window as start/end percentages of full.
func zoomWindow(full, visible chart.Range) (float32, float32) {
	span := full.Span()
	if span <= 0 {
		return 0, 100
	}
	start := (visible.Min - full.Min) / span * 100
	end := (visible.Max - full.Min) / span * 100
	start = max(0, min(start, 100))
	end = max(start, min(end, 100))
	return float32(start), float32(end)
}
