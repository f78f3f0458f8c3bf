// Package render exports a chart model as a static image (PNG, SVG) or
// as a standalone interactive HTML page.
package render

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/Prajwal-Prathiksh/rainchart/internal/chart"
)

// Options controls an export.
type Options struct {
	Width  int
	Height int
	// Title overrides the chart title of the model.
	Title string
	// Pins are pinned marker lines, in data x.
	Pins []float64
}

func (o Options) withDefaults() Options {
	if o.Width <= 0 {
		o.Width = 1200
	}
	if o.Height <= 0 {
		o.Height = 600
	}
	return o
}

// Format is an output format.
type Format string

const (
	FormatPNG  Format = "png"
	FormatSVG  Format = "svg"
	FormatHTML Format = "html"
)

// FormatFor picks the format from a file extension.
func FormatFor(path string) (Format, error) {
	switch ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), ".")); ext {
	case "png":
		return FormatPNG, nil
	case "svg":
		return FormatSVG, nil
	case "html", "htm":
		return FormatHTML, nil
	default:
		return "", fmt.Errorf("render: unsupported output extension %q", ext)
	}
}

// Write exports m to w in format f.
func Write(w io.Writer, f Format, m *chart.Model, opts Options) error {
	switch f {
	case FormatPNG:
		return PNG(w, m, opts)
	case FormatSVG:
		return SVG(w, m, opts)
	case FormatHTML:
		return HTML(w, m, opts)
	}
	return fmt.Errorf("render: unknown format %q", f)
}

// frame is the part of a model an export draws: the visible window and
// the annotations that fall inside it.
type frame struct {
	cfg   chart.Config
	title string

	full  chart.Range
	x     chart.Range
	left  chart.Range
	right chart.Range

	rightEnabled bool
	series       []chart.Series
	regions      []chart.RegionHighlight
	markers      []chart.TextMarker
	pins         []float64
}

func newFrame(m *chart.Model, opts Options) (frame, error) {
	series := m.Series()
	if len(series) == 0 {
		return frame{}, chart.ErrNoData
	}
	full, err := m.XRange()
	if err != nil {
		return frame{}, err
	}

	f := frame{
		cfg:          m.Config(),
		title:        m.Config().Title,
		full:         full,
		rightEnabled: m.RightAxisEnabled(),
		series:       series,
	}
	if opts.Title != "" {
		f.title = opts.Title
	}

	mp := m.Mapper()
	if f.x, err = mp.VisibleX(); err != nil {
		return frame{}, fmt.Errorf("render: x window: %w", err)
	}
	if f.left, err = mp.VisibleY(chart.Left); err != nil {
		return frame{}, fmt.Errorf("render: left window: %w", err)
	}
	if f.rightEnabled {
		if f.right, err = mp.VisibleY(chart.Right); err != nil {
			return frame{}, fmt.Errorf("render: right window: %w", err)
		}
	}

	for _, a := range m.Annotations() {
		switch v := a.(type) {
		case chart.RegionHighlight:
			if v.EndX < f.x.Min || v.StartX > f.x.Max {
				continue
			}
			v.StartX = max(v.StartX, f.x.Min)
			v.EndX = min(v.EndX, f.x.Max)
			f.regions = append(f.regions, v)
		case chart.TextMarker:
			if f.x.Contains(v.X) {
				f.markers = append(f.markers, v)
			}
		}
	}
	for _, p := range opts.Pins {
		if f.x.Contains(p) {
			f.pins = append(f.pins, p)
		}
	}
	return f, nil
}

// window returns the points of s inside r, with the segments crossing the
// window edges cut at the edges.
func window(s chart.Series, r chart.Range) (xs, ys []float64) {
	for i := 0; i < s.Len(); i++ {
		x, y := s.X(i), s.Y(i)
		if i > 0 {
			px, py := s.X(i-1), s.Y(i-1)
			if px < r.Min && x > r.Min {
				xs, ys = append(xs, r.Min), append(ys, lerp(px, py, x, y, r.Min))
			}
			if px < r.Max && x > r.Max {
				xs, ys = append(xs, r.Max), append(ys, lerp(px, py, x, y, r.Max))
			}
		}
		if r.Contains(x) {
			xs, ys = append(xs, x), append(ys, y)
		}
	}
	return xs, ys
}

func lerp(x0, y0, x1, y1, x float64) float64 {
	if x1 == x0 {
		return y0
	}
	return y0 + (y1-y0)*(x-x0)/(x1-x0)
}
