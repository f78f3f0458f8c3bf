package chart

import (
	"math"
	"slices"
	"sort"
)

// Range is a closed interval of data values.
type Range struct {
	Min, Max float64
}

// Span returns Max - Min.
func (r Range) Span() float64 { return r.Max - r.Min }

// Contains reports whether v lies within the range.
func (r Range) Contains(v float64) bool { return v >= r.Min && v <= r.Max }

// OrFallback widens a zero-width range to a unit span around it.
func (r Range) OrFallback() Range {
	if r.Span() == 0 {
		return Range{Min: r.Min - 0.5, Max: r.Max + 0.5}
	}
	return r
}

// Pad grows the range by frac of its span on both sides.
func (r Range) Pad(frac float64) Range {
	if frac <= 0 {
		return r
	}
	p := r.Span() * frac
	return Range{Min: r.Min - p, Max: r.Max + p}
}

func (r Range) union(o Range) Range {
	return Range{Min: math.Min(r.Min, o.Min), Max: math.Max(r.Max, o.Max)}
}

// Series is an immutable named sequence of (x, y) samples bound to one axis.
type Series struct {
	name  string
	axis  Axis
	xs    []float64
	ys    []float64
	color Color
	width float64
}

// SeriesOption configures a Series at construction.
type SeriesOption func(*Series)

// WithColor sets the display color.
func WithColor(c Color) SeriesOption {
	return func(s *Series) { s.color = c }
}

// WithLineWidth sets the display line width.
func WithLineWidth(w float64) SeriesOption {
	return func(s *Series) { s.width = w }
}

// NewSeries copies xs and ys into a new Series. x must be non-decreasing,
// both slices must have the same non-zero length and hold finite values.
func NewSeries(name string, axis Axis, xs, ys []float64, opts ...SeriesOption) (Series, error) {
	if len(xs) != len(ys) {
		return Series{}, schemaErrorf(name, "x has %d values, y has %d", len(xs), len(ys))
	}
	if len(xs) == 0 {
		return Series{}, schemaErrorf(name, "no samples")
	}
	for i := range xs {
		if !finite(xs[i]) || !finite(ys[i]) {
			return Series{}, schemaErrorf(name, "non-finite value at index %d", i)
		}
		if i > 0 && xs[i] < xs[i-1] {
			return Series{}, schemaErrorf(name, "x decreases at index %d", i)
		}
	}

	s := Series{
		name:  name,
		axis:  axis,
		xs:    slices.Clone(xs),
		ys:    slices.Clone(ys),
		width: 2,
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s, nil
}

func (s Series) Name() string       { return s.name }
func (s Series) Axis() Axis         { return s.axis }
func (s Series) Color() Color       { return s.color }
func (s Series) LineWidth() float64 { return s.width }
func (s Series) Len() int           { return len(s.xs) }
func (s Series) X(i int) float64    { return s.xs[i] }
func (s Series) Y(i int) float64    { return s.ys[i] }

// Points returns copies of the x and y values.
func (s Series) Points() (xs, ys []float64) {
	return slices.Clone(s.xs), slices.Clone(s.ys)
}

// XRange returns the x extent of the samples.
func (s Series) XRange() Range {
	return Range{Min: s.xs[0], Max: s.xs[len(s.xs)-1]}
}

// YRange returns the y extent of the samples.
func (s Series) YRange() Range {
	return Range{Min: slices.Min(s.ys), Max: slices.Max(s.ys)}
}

// ValueAt linearly interpolates y at x, clamping to the endpoint values
// outside the sampled domain. Repeated x values resolve to the first sample.
func (s Series) ValueAt(x float64) float64 {
	n := len(s.xs)
	if x <= s.xs[0] {
		return s.ys[0]
	}
	j := sort.SearchFloat64s(s.xs, x)
	if j >= n {
		return s.ys[n-1]
	}
	x1, x2 := s.xs[j-1], s.xs[j]
	y1, y2 := s.ys[j-1], s.ys[j]
	if x2 == x1 {
		return y1
	}
	return y1 + (x-x1)/(x2-x1)*(y2-y1)
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
