package chart

import (
	"errors"
	"fmt"
)

// Config holds the display settings of a chart. It is a value: the model
// replaces it wholesale rather than mutating fields in place.
type Config struct {
	Title     string
	XAxis     AxisLabel
	LeftAxis  AxisLabel
	RightAxis AxisLabel

	LeftColor  Color
	RightColor Color
	LineWidth  float64

	// Margins apply when the right axis is enabled; otherwise the right
	// margin shrinks to NarrowRightMargin.
	Margins           Margins
	NarrowRightMargin float64

	// YPadding widens automatic Y ranges by this fraction of their span.
	YPadding float64
}

// DefaultConfig returns the stock chart configuration.
func DefaultConfig() Config {
	return Config{
		XAxis:             AxisLabel{Label: "Time", Unit: "s"},
		LeftColor:         MustParseColor("#FFA366"),
		RightColor:        MustParseColor("#66B3FF"),
		LineWidth:         2,
		Margins:           Margins{Left: 60, Top: 30, Right: 60, Bottom: 40},
		NarrowRightMargin: 10,
	}
}

// Validate checks the invariants of the configuration.
func (c Config) Validate() error {
	var errs []error
	if c.LineWidth <= 0 || !finite(c.LineWidth) {
		errs = append(errs, fmt.Errorf("line width must be positive, got %g", c.LineWidth))
	}
	if c.YPadding < 0 || !finite(c.YPadding) {
		errs = append(errs, fmt.Errorf("y padding must be non-negative, got %g", c.YPadding))
	}
	m := c.Margins
	for _, v := range []float64{m.Left, m.Top, m.Right, m.Bottom, c.NarrowRightMargin} {
		if v < 0 || !finite(v) {
			errs = append(errs, fmt.Errorf("margins must be non-negative, got %+v", m))
			break
		}
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("chart: config: %w", err)
	}
	return nil
}

// MarginsFor returns the margins in effect for the given right-axis state.
func (c Config) MarginsFor(rightEnabled bool) Margins {
	m := c.Margins
	if !rightEnabled {
		m.Right = c.NarrowRightMargin
	}
	return m
}

// withDocument returns a copy carrying the labels of a load document.
func (c Config) withDocument(d Document) Config {
	c.Title = d.ChartTitle
	c.XAxis = d.XAxis.label()
	c.LeftAxis = d.LeftYAxis.label()
	c.RightAxis = d.RightYAxis.label()
	return c
}
