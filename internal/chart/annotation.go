package chart

import "fmt"

// Annotation is an overlay drawn on top of the series. The set of
// implementations is closed: RegionHighlight and TextMarker.
type Annotation interface {
	// Extent returns the x span covered by the annotation.
	Extent() Range
	annotation()
}

// RegionHighlight shades the x interval [StartX, EndX].
type RegionHighlight struct {
	StartX  float64
	EndX    float64
	Color   Color
	Label   string
	Tooltip string
}

// TextMarker places a short text at X.
type TextMarker struct {
	X       float64
	Text    string
	Color   Color
	Tooltip string
}

func (r RegionHighlight) Extent() Range { return Range{Min: r.StartX, Max: r.EndX} }
func (m TextMarker) Extent() Range      { return Range{Min: m.X, Max: m.X} }

func (RegionHighlight) annotation() {}
func (TextMarker) annotation()      {}

// Contains reports whether x falls inside the region.
func (r RegionHighlight) Contains(x float64) bool {
	return x >= r.StartX && x <= r.EndX
}

var (
	// DefaultRegionColor is used for regions loaded without a color.
	DefaultRegionColor = RGBA(135, 206, 250, 0.3)
	// DefaultMarkerColor is used for markers loaded without a color.
	DefaultMarkerColor = RGBA(51, 51, 51, 1)
)

func validateAnnotation(a Annotation) error {
	switch v := a.(type) {
	case RegionHighlight:
		if !finite(v.StartX) || !finite(v.EndX) {
			return schemaErrorf("region", "non-finite bounds")
		}
		if v.StartX > v.EndX {
			return schemaErrorf("region", "start_x %g > end_x %g", v.StartX, v.EndX)
		}
	case TextMarker:
		if !finite(v.X) {
			return schemaErrorf("marker", "non-finite x")
		}
	case nil:
		return schemaErrorf("annotation", "nil annotation")
	default:
		return schemaErrorf("annotation", "unsupported type %T", a)
	}
	return nil
}

func describe(a Annotation) string {
	switch v := a.(type) {
	case RegionHighlight:
		return fmt.Sprintf("region %q [%g, %g]", v.Label, v.StartX, v.EndX)
	case TextMarker:
		return fmt.Sprintf("marker %q at %g", v.Text, v.X)
	}
	return "annotation"
}
