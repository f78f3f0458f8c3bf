package render

import (
	"fmt"
	"io"
	"math"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/Prajwal-Prathiksh/rainchart/internal/analytics"
	"github.com/Prajwal-Prathiksh/rainchart/internal/chart"
)

// PNG renders the visible window of m as a PNG image.
func PNG(w io.Writer, m *chart.Model, opts Options) error {
	return renderImage(w, gochart.PNG, m, opts)
}

// SVG renders the visible window of m as an SVG document.
func SVG(w io.Writer, m *chart.Model, opts Options) error {
	return renderImage(w, gochart.SVG, m, opts)
}

func renderImage(w io.Writer, rp gochart.RendererProvider, m *chart.Model, opts Options) error {
	opts = opts.withDefaults()
	f, err := newFrame(m, opts)
	if err != nil {
		return err
	}
	graph := buildGraph(f, opts)
	if err := graph.Render(rp, w); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	return nil
}

func buildGraph(f frame, opts Options) gochart.Chart {
	grid := gochart.Style{StrokeColor: drawing.Color{R: 220, G: 220, B: 220, A: 255}, StrokeWidth: 1, StrokeDashArray: []float64{2, 3}}

	graph := gochart.Chart{
		Title:      f.title,
		TitleStyle: gochart.Style{FontSize: 16, FontColor: drawing.ColorBlack},
		Background: gochart.Style{Padding: gochart.Box{Top: 50, Left: 20, Right: 20, Bottom: 20}},
		Width:      opts.Width,
		Height:     opts.Height,
		XAxis: gochart.XAxis{
			Name:           f.cfg.XAxis.String(),
			NameStyle:      gochart.Style{FontSize: 12},
			Style:          gochart.Style{FontSize: 10},
			Range:          &gochart.ContinuousRange{Min: f.x.Min, Max: f.x.Max},
			ValueFormatter: clockFormatter,
			GridMajorStyle: grid,
		},
		YAxis: gochart.YAxis{
			Name:           f.cfg.LeftAxis.String(),
			NameStyle:      gochart.Style{FontSize: 12},
			Style:          gochart.Style{FontSize: 10},
			Range:          &gochart.ContinuousRange{Min: f.left.Min, Max: f.left.Max},
			GridMajorStyle: grid,
		},
	}
	if f.rightEnabled {
		graph.YAxisSecondary = gochart.YAxis{
			Name:      f.cfg.RightAxis.String(),
			NameStyle: gochart.Style{FontSize: 12},
			Style:     gochart.Style{FontSize: 10},
			Range:     &gochart.ContinuousRange{Min: f.right.Min, Max: f.right.Max},
		}
	}

	// Regions go first so the lines draw over them.
	if len(f.regions) > 0 {
		graph.Series = append(graph.Series, regionSeries{regions: f.regions})
	}
	for _, s := range f.series {
		if s.Axis() == chart.Right && !f.rightEnabled {
			continue
		}
		xs, ys := window(s, f.x)
		if len(xs) == 0 {
			continue
		}
		cs := gochart.ContinuousSeries{
			Name:    s.Name(),
			XValues: xs,
			YValues: ys,
			Style:   gochart.Style{StrokeColor: drawingColor(s.Color()), StrokeWidth: s.LineWidth()},
		}
		if s.Axis() == chart.Right {
			cs.YAxis = gochart.YAxisSecondary
		}
		graph.Series = append(graph.Series, cs)
	}
	if len(f.markers) > 0 || len(f.pins) > 0 {
		graph.Series = append(graph.Series, guideSeries{markers: f.markers, pins: f.pins})
	}
	if len(f.markers) > 0 {
		labels := make([]gochart.Value2, 0, len(f.markers))
		for _, mk := range f.markers {
			labels = append(labels, gochart.Value2{XValue: mk.X, YValue: f.left.Max, Label: mk.Text})
		}
		graph.Series = append(graph.Series, gochart.AnnotationSeries{
			Name:        "markers",
			Annotations: labels,
			Style: gochart.Style{
				StrokeColor: drawingColor(chart.DefaultMarkerColor),
				FillColor:   drawing.ColorWhite,
				FontColor:   drawingColor(chart.DefaultMarkerColor),
				FontSize:    10,
			},
		})
	}

	graph.Elements = []gochart.Renderable{gochart.Legend(&graph)}
	return graph
}

func clockFormatter(v interface{}) string {
	if f, ok := v.(float64); ok {
		return analytics.FormatClock(f)
	}
	return fmt.Sprint(v)
}

func drawingColor(c chart.Color) drawing.Color {
	return drawing.Color{R: c.R, G: c.G, B: c.B, A: uint8(math.Round(c.A * 255))}
}

func clampInt(v, lo, hi int) int {
	return max(lo, min(v, hi))
}

// regionSeries shades each region as a translucent band over the full
// canvas height.
type regionSeries struct {
	regions []chart.RegionHighlight
}

func (rs regionSeries) GetName() string { return "Rain" }
func (rs regionSeries) GetStyle() gochart.Style {
	c := drawingColor(chart.DefaultRegionColor)
	if len(rs.regions) > 0 {
		c = drawingColor(rs.regions[0].Color)
	}
	return gochart.Style{FillColor: c, StrokeColor: c}
}
func (rs regionSeries) GetYAxis() gochart.YAxisType { return gochart.YAxisPrimary }
func (rs regionSeries) Len() int                    { return len(rs.regions) }
func (rs regionSeries) Validate() error             { return nil }
func (rs regionSeries) Render(r gochart.Renderer, canvasBox gochart.Box, xrange, yrange gochart.Range, defaults gochart.Style) {
	for _, reg := range rs.regions {
		x0 := clampInt(canvasBox.Left+xrange.Translate(reg.StartX), canvasBox.Left, canvasBox.Right)
		x1 := clampInt(canvasBox.Left+xrange.Translate(reg.EndX), canvasBox.Left, canvasBox.Right)
		if x1 <= x0 {
			x1 = x0 + 1
		}
		r.SetFillColor(drawingColor(reg.Color))
		r.MoveTo(x0, canvasBox.Top)
		r.LineTo(x1, canvasBox.Top)
		r.LineTo(x1, canvasBox.Bottom)
		r.LineTo(x0, canvasBox.Bottom)
		r.Close()
		r.Fill()
	}
}

// guideSeries draws a vertical line per marker and a dashed one per pin.
type guideSeries struct {
	markers []chart.TextMarker
	pins    []float64
}

func (gs guideSeries) GetName() string { return "Pinned" }
func (gs guideSeries) GetStyle() gochart.Style {
	c := drawingColor(chart.DefaultMarkerColor)
	return gochart.Style{StrokeColor: c, FillColor: c}
}
func (gs guideSeries) GetYAxis() gochart.YAxisType { return gochart.YAxisPrimary }
func (gs guideSeries) Len() int                    { return len(gs.markers) + len(gs.pins) }
func (gs guideSeries) Validate() error             { return nil }
func (gs guideSeries) Render(r gochart.Renderer, canvasBox gochart.Box, xrange, yrange gochart.Range, defaults gochart.Style) {
	vline := func(x float64, c drawing.Color, dash []float64) {
		px := canvasBox.Left + xrange.Translate(x)
		if px < canvasBox.Left || px > canvasBox.Right {
			return
		}
		r.SetStrokeColor(c)
		r.SetStrokeWidth(1)
		r.SetStrokeDashArray(dash)
		r.MoveTo(px, canvasBox.Top)
		r.LineTo(px, canvasBox.Bottom)
		r.Stroke()
	}
	for _, mk := range gs.markers {
		c := mk.Color
		if c.IsZero() {
			c = chart.DefaultMarkerColor
		}
		vline(mk.X, drawingColor(c), nil)
	}
	for _, p := range gs.pins {
		vline(p, drawing.Color{R: 220, G: 53, B: 69, A: 255}, []float64{4, 3})
	}
	r.SetStrokeDashArray(nil)
}
