package chart

import (
	"fmt"
	"slices"
	"strings"
)

// Model aggregates the series, annotations and view state of one chart.
// It is not safe for concurrent use; callers that draw and handle input on
// different goroutines must serialize access.
type Model struct {
	cfg          Config
	series       []Series
	annotations  []Annotation
	view         ViewState
	width        float64
	height       float64
	rightEnabled bool

	xOverride     *Range
	leftOverride  *Range
	rightOverride *Range
}

// NewModel returns an empty model with an 800x600 area.
func NewModel(cfg Config) *Model {
	return &Model{
		cfg:    cfg,
		view:   DefaultViewState(),
		width:  800,
		height: 600,
	}
}

// Config returns the current display configuration.
func (m *Model) Config() Config { return m.cfg }

// Reconfigure replaces the display configuration.
func (m *Model) Reconfigure(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	m.cfg = cfg
	return nil
}

// Load replaces all series and annotations from doc. The document is
// validated before anything is changed, so a failed load leaves the model
// as it was.
func (m *Model) Load(doc Document) error {
	c, err := doc.compile(m.cfg)
	if err != nil {
		return err
	}
	m.cfg = c.cfg
	m.series = c.series
	m.annotations = c.annotations
	m.rightEnabled = c.rightEnabled
	m.xOverride, m.leftOverride, m.rightOverride = nil, nil, nil
	m.view = DefaultViewState()
	return nil
}

// AddSeries appends a series. Adding a right-axis series enables the right axis.
func (m *Model) AddSeries(s Series) {
	m.series = append(m.series, s)
	if s.Axis() == Right {
		m.rightEnabled = true
	}
}

// AddAnnotation appends a validated annotation.
func (m *Model) AddAnnotation(a Annotation) error {
	if err := validateAnnotation(a); err != nil {
		return fmt.Errorf("add %s: %w", describe(a), err)
	}
	m.annotations = append(m.annotations, a)
	return nil
}

// Clear removes all series, annotations and range overrides and resets the view.
func (m *Model) Clear() {
	m.series = nil
	m.annotations = nil
	m.rightEnabled = false
	m.xOverride, m.leftOverride, m.rightOverride = nil, nil, nil
	m.view = DefaultViewState()
}

// ResetView restores unit scales and zero offsets.
func (m *Model) ResetView() { m.view = DefaultViewState() }

// FitToView drops manual ranges and resets the view so every axis's
// data range fills the viewport.
func (m *Model) FitToView() {
	m.ResetRanges()
	m.ResetView()
}

// View returns the current view state.
func (m *Model) View() ViewState { return m.view }

// SetView replaces the view state.
func (m *Model) SetView(v ViewState) error {
	if err := v.Validate(); err != nil {
		return err
	}
	m.view = v
	return nil
}

// SetSize sets the widget area the viewport is carved from.
func (m *Model) SetSize(width, height float64) {
	m.width, m.height = width, height
}

// Viewport returns the plot rectangle for the current size and margins.
func (m *Model) Viewport() Viewport {
	return ViewportFor(m.width, m.height, m.cfg.MarginsFor(m.rightEnabled))
}

// RightAxisEnabled reports whether the right axis is shown.
func (m *Model) RightAxisEnabled() bool { return m.rightEnabled }

// Series returns a copy of all series.
func (m *Model) Series() []Series { return slices.Clone(m.series) }

// SeriesFor returns the series bound to axis, in insertion order.
func (m *Model) SeriesFor(axis Axis) []Series {
	var out []Series
	for _, s := range m.series {
		if s.Axis() == axis {
			out = append(out, s)
		}
	}
	return out
}

// Annotations returns a copy of all annotations.
func (m *Model) Annotations() []Annotation { return slices.Clone(m.annotations) }

// XRange returns the x extent across all series.
func (m *Model) XRange() (Range, error) {
	if len(m.series) == 0 {
		return Range{}, ErrNoData
	}
	r := m.series[0].XRange()
	for _, s := range m.series[1:] {
		r = r.union(s.XRange())
	}
	return r, nil
}

// YRange returns the y extent across the series of one axis.
func (m *Model) YRange(axis Axis) (Range, error) {
	var (
		r     Range
		found bool
	)
	for _, s := range m.series {
		if s.Axis() != axis {
			continue
		}
		if !found {
			r, found = s.YRange(), true
			continue
		}
		r = r.union(s.YRange())
	}
	if !found {
		return Range{}, ErrNoData
	}
	return r, nil
}

// SetXRange overrides the automatic x range.
func (m *Model) SetXRange(min, max float64) error {
	r, err := overrideRange(min, max)
	if err != nil {
		return err
	}
	m.xOverride = &r
	return nil
}

// SetYRange overrides the automatic y range of an axis.
func (m *Model) SetYRange(axis Axis, min, max float64) error {
	r, err := overrideRange(min, max)
	if err != nil {
		return err
	}
	if axis == Right {
		m.rightOverride = &r
	} else {
		m.leftOverride = &r
	}
	return nil
}

// ResetRanges returns every axis to its automatic range.
func (m *Model) ResetRanges() {
	m.xOverride, m.leftOverride, m.rightOverride = nil, nil, nil
}

func overrideRange(min, max float64) (Range, error) {
	if !finite(min) || !finite(max) || min >= max {
		return Range{}, fmt.Errorf("chart: invalid range [%g, %g]", min, max)
	}
	return Range{Min: min, Max: max}, nil
}

// Mapper returns a mapper for the current state. Missing axes map over
// [0, 1] and zero-width ranges are widened, so its methods never return
// ErrDegenerateRange for a non-empty viewport.
func (m *Model) Mapper() Mapper {
	return Mapper{
		Viewport: m.Viewport(),
		View:     m.view,
		X:        m.effectiveX(),
		Left:     m.effectiveY(Left, m.leftOverride),
		Right:    m.effectiveY(Right, m.rightOverride),
	}
}

func (m *Model) effectiveX() Range {
	if m.xOverride != nil {
		return *m.xOverride
	}
	r, err := m.XRange()
	if err != nil {
		return Range{Min: 0, Max: 1}
	}
	return r.OrFallback()
}

func (m *Model) effectiveY(axis Axis, override *Range) Range {
	if override != nil {
		return *override
	}
	r, err := m.YRange(axis)
	if err != nil {
		return Range{Min: 0, Max: 1}
	}
	return r.OrFallback().Pad(m.cfg.YPadding)
}

// ValueAtX interpolates the first series of axis at x. It reports false
// when the axis has no series.
func (m *Model) ValueAtX(x float64, axis Axis) (float64, bool) {
	for _, s := range m.series {
		if s.Axis() == axis {
			return s.ValueAt(x), true
		}
	}
	return 0, false
}

// RegionAt returns the first region containing x.
func (m *Model) RegionAt(x float64) (RegionHighlight, bool) {
	for _, a := range m.annotations {
		if r, ok := a.(RegionHighlight); ok && r.Contains(x) {
			return r, true
		}
	}
	return RegionHighlight{}, false
}

// HoverText formats the values under x for display.
func (m *Model) HoverText(x float64) string {
	var b strings.Builder
	fmt.Fprintf(&b, "X: %.2f", x)
	if v, ok := m.ValueAtX(x, Left); ok {
		fmt.Fprintf(&b, " | Left: %.2f", v)
	}
	if m.rightEnabled {
		if v, ok := m.ValueAtX(x, Right); ok {
			fmt.Fprintf(&b, " | Right: %.2f", v)
		}
	}
	return b.String()
}
