// Package interact translates pointer and wheel input into chart view
// changes, pinned markers and UI events.
package interact

import (
	"fmt"
	"math"
	"slices"

	"github.com/Prajwal-Prathiksh/rainchart/internal/chart"
)

// Target is the chart state a Controller drives. *chart.Model implements it.
type Target interface {
	View() chart.ViewState
	SetView(chart.ViewState) error
	Mapper() chart.Mapper
	ValueAtX(x float64, axis chart.Axis) (float64, bool)
	HoverText(x float64) string
	RegionAt(x float64) (chart.RegionHighlight, bool)
}

// Config holds the zoom policy.
type Config struct {
	ZoomIn      float64 // Y zoom per wheel step in, no modifier
	ZoomOut     float64
	ModifierIn  float64 // X and Y zoom per wheel step in, modifier held
	ModifierOut float64
	MinScale    float64
	MaxScale    float64
}

// DefaultConfig returns the stock zoom policy.
func DefaultConfig() Config {
	return Config{
		ZoomIn:      1.3,
		ZoomOut:     0.7,
		ModifierIn:  1.2,
		ModifierOut: 0.8,
		MinScale:    0.1,
		MaxScale:    10,
	}
}

// Validate checks that factors and limits are usable.
func (c Config) Validate() error {
	for _, f := range []float64{c.ZoomIn, c.ZoomOut, c.ModifierIn, c.ModifierOut} {
		if f <= 0 || math.IsNaN(f) || math.IsInf(f, 0) {
			return fmt.Errorf("interact: zoom factors must be finite and positive: %+v", c)
		}
	}
	if c.MinScale <= 0 || c.MaxScale < c.MinScale {
		return fmt.Errorf("interact: invalid scale limits [%g, %g]", c.MinScale, c.MaxScale)
	}
	return nil
}

// Pointer is a pointer position in screen units with the modifier state.
type Pointer struct {
	X, Y     float64
	Modifier bool
}

// Controller is the interaction state machine. It has two states, idle
// and dragging; every call completes synchronously and emits at most one
// event. It is not safe for concurrent use.
type Controller struct {
	target    Target
	cfg       Config
	listeners []Listener

	dragging bool
	moved    bool
	last     Pointer

	pins []float64

	tracking bool
	trackX   float64
	inRegion bool
	region   chart.RegionHighlight
}

// New returns a controller driving target.
func New(target Target, cfg Config) *Controller {
	return &Controller{target: target, cfg: cfg}
}

// Config returns the zoom policy.
func (c *Controller) Config() Config { return c.cfg }

// Subscribe registers a listener.
func (c *Controller) Subscribe(l Listener) {
	c.listeners = append(c.listeners, l)
}

func (c *Controller) emit(e Event) {
	for _, l := range c.listeners {
		l(e)
	}
}

// Dragging reports whether a primary-button drag is in progress.
func (c *Controller) Dragging() bool { return c.dragging }

// PinnedMarkers returns a copy of the pinned marker positions.
func (c *Controller) PinnedMarkers() []float64 { return slices.Clone(c.pins) }

// ClearFixedLines removes every pinned marker.
func (c *Controller) ClearFixedLines() { c.pins = nil }

// Tracker returns the data x of the transient hover indicator.
func (c *Controller) Tracker() (float64, bool) { return c.trackX, c.tracking }

// PointerDown handles a primary button press. With the modifier held it
// pins a marker at the pointer's data x; otherwise it starts a drag.
func (c *Controller) PointerDown(p Pointer) {
	if p.Modifier {
		x, y, ok := c.dataAt(p)
		if !ok {
			return
		}
		c.pins = append(c.pins, x)
		c.emit(PointClicked{X: x, Y: y})
		return
	}
	c.dragging = true
	c.moved = false
	c.last = p
}

// PointerMove pans while dragging and updates the hover state otherwise.
// Positions that are not finite are ignored while dragging.
func (c *Controller) PointerMove(p Pointer) {
	if c.dragging {
		if !finite(p.X) || !finite(p.Y) {
			return
		}
		dx, dy := p.X-c.last.X, p.Y-c.last.Y
		c.last = p
		if dx != 0 || dy != 0 {
			c.moved = true
			_ = c.Pan(dx, dy) // finite deltas; an overflowing view is left as it was
		}
		return
	}
	c.hover(p)
}

// PointerUp ends a drag. A press and release without movement is a click.
func (c *Controller) PointerUp(p Pointer) {
	if !c.dragging {
		return
	}
	c.dragging = false
	if c.moved {
		return
	}
	if x, y, ok := c.dataAt(p); ok {
		c.emit(PointClicked{X: x, Y: y})
	}
}

// Leave clears the hover state when the pointer exits the chart.
func (c *Controller) Leave() {
	c.tracking = false
	c.inRegion = false
	c.dragging = false
}

// Wheel zooms by one step per unit of steps; positive steps zoom in.
// Without the modifier only the two Y axes zoom, with it X zooms too.
// The view is left unchanged when the target rejects the result.
func (c *Controller) Wheel(steps int, modifier bool) error {
	if steps == 0 {
		return nil
	}
	in, out := c.cfg.ZoomIn, c.cfg.ZoomOut
	if modifier {
		in, out = c.cfg.ModifierIn, c.cfg.ModifierOut
	}
	f := in
	if steps < 0 {
		f, steps = out, -steps
	}

	v := c.target.View()
	for i := 0; i < steps; i++ {
		if modifier {
			v.XScale = c.clamp(v.XScale * f)
		}
		v.YScale = c.clamp(v.YScale * f)
		v.RightYScale = c.clamp(v.RightYScale * f)
	}
	if err := c.target.SetView(v); err != nil {
		return fmt.Errorf("interact: zoom: %w", err)
	}
	return nil
}

// Pan shifts X by dx and both Y axes by dy screen units. Deltas must be
// finite; the view is left unchanged otherwise.
func (c *Controller) Pan(dx, dy float64) error {
	if !finite(dx) || !finite(dy) {
		return fmt.Errorf("interact: pan delta must be finite, got (%g, %g)", dx, dy)
	}
	v := c.target.View()
	v.XOffset += dx
	v.YOffset += dy
	v.RightYOffset += dy
	if err := c.target.SetView(v); err != nil {
		return fmt.Errorf("interact: pan: %w", err)
	}
	return nil
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

func (c *Controller) clamp(s float64) float64 {
	return math.Min(math.Max(s, c.cfg.MinScale), c.cfg.MaxScale)
}

func (c *Controller) hover(p Pointer) {
	m := c.target.Mapper()
	if !m.Viewport.Contains(p.X, p.Y) {
		c.tracking = false
		c.inRegion = false
		return
	}
	x, err := m.ScreenToDataX(p.X)
	if err != nil {
		return
	}
	c.tracking, c.trackX = true, x

	r, ok := c.target.RegionAt(x)
	switch {
	case ok && (!c.inRegion || r != c.region):
		c.inRegion, c.region = true, r
		c.emit(RegionHovered{X: x, Region: r})
		return
	case !ok:
		c.inRegion = false
	}
	c.emit(PointHovered{X: x, Info: c.target.HoverText(x)})
}

func (c *Controller) dataAt(p Pointer) (float64, float64, bool) {
	m := c.target.Mapper()
	x, err := m.ScreenToDataX(p.X)
	if err != nil {
		return 0, 0, false
	}
	if y, ok := c.target.ValueAtX(x, chart.Left); ok {
		return x, y, true
	}
	y, err := m.ScreenToDataY(p.Y, chart.Left)
	if err != nil {
		return 0, 0, false
	}
	return x, y, true
}
