package interact

import "github.com/Prajwal-Prathiksh/rainchart/internal/chart"

// Event is a notification emitted to the UI layer. The implementations
// are PointClicked, PointHovered and RegionHovered.
type Event interface {
	event()
}

// PointClicked reports a click at data coordinates.
type PointClicked struct {
	X, Y float64
}

// PointHovered carries the formatted values under the pointer.
type PointHovered struct {
	X    float64
	Info string
}

// RegionHovered reports that the pointer entered a highlighted region.
type RegionHovered struct {
	X      float64
	Region chart.RegionHighlight
}

func (PointClicked) event()  {}
func (PointHovered) event()  {}
func (RegionHovered) event() {}

// Listener receives events synchronously.
type Listener func(Event)
