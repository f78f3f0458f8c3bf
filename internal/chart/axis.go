package chart

import (
	"fmt"
	"strings"
)

// Axis selects one of the two value scales a series is plotted against.
type Axis int

const (
	Left Axis = iota
	Right
)

func (a Axis) String() string {
	switch a {
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return fmt.Sprintf("axis(%d)", int(a))
	}
}

// ParseAxis accepts "left"/"right" (and "l"/"r"), case-insensitively.
func ParseAxis(s string) (Axis, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "left", "l", "":
		return Left, nil
	case "right", "r":
		return Right, nil
	}
	return Left, fmt.Errorf("chart: unknown axis %q", s)
}

// AxisLabel is the display name and unit of an axis.
type AxisLabel struct {
	Label string
	Unit  string
}

// String renders the label as "Label (unit)".
func (l AxisLabel) String() string {
	switch {
	case l.Label == "":
		return l.Unit
	case l.Unit == "":
		return l.Label
	}
	return l.Label + " (" + l.Unit + ")"
}
