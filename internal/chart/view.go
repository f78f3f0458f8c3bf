package chart

import "fmt"

// ViewState is the pan/zoom transform applied on top of the normalized
// data-to-viewport mapping. X has one scale/offset pair, each Y axis its own.
type ViewState struct {
	XScale       float64
	XOffset      float64
	YScale       float64
	YOffset      float64
	RightYScale  float64
	RightYOffset float64
}

// DefaultViewState is the identity transform.
func DefaultViewState() ViewState {
	return ViewState{XScale: 1, YScale: 1, RightYScale: 1}
}

// Validate checks that scales are finite and positive and offsets finite.
func (v ViewState) Validate() error {
	for name, s := range map[string]float64{"x": v.XScale, "left y": v.YScale, "right y": v.RightYScale} {
		if !finite(s) || s <= 0 {
			return fmt.Errorf("chart: %s scale must be finite and positive, got %g", name, s)
		}
	}
	for name, o := range map[string]float64{"x": v.XOffset, "left y": v.YOffset, "right y": v.RightYOffset} {
		if !finite(o) {
			return fmt.Errorf("chart: %s offset must be finite, got %g", name, o)
		}
	}
	return nil
}

// Viewport is the plot rectangle in screen units.
type Viewport struct {
	Left, Top     float64
	Width, Height float64
}

func (vp Viewport) Right() float64  { return vp.Left + vp.Width }
func (vp Viewport) Bottom() float64 { return vp.Top + vp.Height }

// Contains reports whether the point lies inside the viewport.
func (vp Viewport) Contains(px, py float64) bool {
	return px >= vp.Left && px <= vp.Right() && py >= vp.Top && py <= vp.Bottom()
}

// Margins surround the viewport inside the widget area.
type Margins struct {
	Left, Top, Right, Bottom float64
}

// ViewportFor carves the viewport out of a width x height area.
// Negative sizes collapse to zero.
func ViewportFor(width, height float64, m Margins) Viewport {
	vp := Viewport{
		Left:   m.Left,
		Top:    m.Top,
		Width:  width - m.Left - m.Right,
		Height: height - m.Top - m.Bottom,
	}
	if vp.Width < 0 {
		vp.Width = 0
	}
	if vp.Height < 0 {
		vp.Height = 0
	}
	return vp
}
