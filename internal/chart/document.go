package chart

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Document is the structured description consumed by Model.Load.
type Document struct {
	ChartTitle  string           `json:"chart_title,omitempty"`
	XAxis       *AxisSpec        `json:"x_axis"`
	LeftYAxis   *AxisSpec        `json:"left_y_axis,omitempty"`
	RightYAxis  *AxisSpec        `json:"right_y_axis,omitempty"`
	Annotations []AnnotationSpec `json:"annotations,omitempty"`
}

// AxisSpec describes one axis and its values.
type AxisSpec struct {
	Label string    `json:"label,omitempty"`
	Unit  string    `json:"unit,omitempty"`
	Data  []float64 `json:"data"`
}

func (a *AxisSpec) label() AxisLabel {
	if a == nil {
		return AxisLabel{}
	}
	return AxisLabel{Label: a.Label, Unit: a.Unit}
}

func (a *AxisSpec) hasData() bool { return a != nil && len(a.Data) > 0 }

// AnnotationSpec is the wire form of an annotation. Type is "region" or
// "marker"; "rain" and "rain_background" alias region, "rain_marker"
// aliases marker.
type AnnotationSpec struct {
	Type        string   `json:"type"`
	StartX      *float64 `json:"start_x,omitempty"`
	EndX        *float64 `json:"end_x,omitempty"`
	X           *float64 `json:"x,omitempty"`
	XPosition   *float64 `json:"x_position,omitempty"`
	Label       string   `json:"label,omitempty"`
	Text        string   `json:"text,omitempty"`
	Color       string   `json:"color,omitempty"`
	Tooltip     string   `json:"tooltip,omitempty"`
	Description string   `json:"description,omitempty"`
}

// DecodeDocument reads a JSON document. Syntax errors are reported as
// *SchemaError.
func DecodeDocument(r io.Reader) (Document, error) {
	var d Document
	if err := json.NewDecoder(r).Decode(&d); err != nil {
		return Document{}, &SchemaError{Field: "document", Reason: err.Error()}
	}
	return d, nil
}

// Encode writes the document as indented JSON.
func (d Document) Encode(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(d)
}

// SpecFor converts an annotation to its wire form.
func SpecFor(a Annotation) AnnotationSpec {
	switch v := a.(type) {
	case RegionHighlight:
		return AnnotationSpec{
			Type:    "region",
			StartX:  float64Ptr(v.StartX),
			EndX:    float64Ptr(v.EndX),
			Label:   v.Label,
			Color:   v.Color.CSS(),
			Tooltip: v.Tooltip,
		}
	case TextMarker:
		return AnnotationSpec{
			Type:    "marker",
			X:       float64Ptr(v.X),
			Text:    v.Text,
			Color:   v.Color.CSS(),
			Tooltip: v.Tooltip,
		}
	}
	return AnnotationSpec{}
}

func float64Ptr(v float64) *float64 { return &v }

// compiled is a fully validated document ready to be swapped into a model.
type compiled struct {
	cfg          Config
	series       []Series
	annotations  []Annotation
	rightEnabled bool
}

func (d Document) compile(base Config) (compiled, error) {
	if d.XAxis == nil || d.XAxis.Data == nil {
		return compiled{}, schemaErrorf("x_axis.data", "required")
	}
	xs := d.XAxis.Data

	out := compiled{cfg: base.withDocument(d)}
	axes := []struct {
		field string
		spec  *AxisSpec
		axis  Axis
		color Color
	}{
		{"left_y_axis.data", d.LeftYAxis, Left, base.LeftColor},
		{"right_y_axis.data", d.RightYAxis, Right, base.RightColor},
	}
	for _, a := range axes {
		if !a.spec.hasData() {
			continue
		}
		if len(a.spec.Data) != len(xs) {
			return compiled{}, schemaErrorf(a.field, "length %d does not match x_axis.data length %d", len(a.spec.Data), len(xs))
		}
		name := a.spec.Label
		if name == "" {
			name = a.axis.String()
		}
		s, err := NewSeries(name, a.axis, xs, a.spec.Data, WithColor(a.color), WithLineWidth(base.LineWidth))
		if err != nil {
			if se, ok := err.(*SchemaError); ok {
				se.Field = a.field
			}
			return compiled{}, err
		}
		out.series = append(out.series, s)
		if a.axis == Right {
			out.rightEnabled = true
		}
	}
	if len(out.series) == 0 {
		for i := 1; i < len(xs); i++ {
			if xs[i] < xs[i-1] {
				return compiled{}, schemaErrorf("x_axis.data", "x decreases at index %d", i)
			}
		}
	}

	for i, spec := range d.Annotations {
		a, err := spec.annotation()
		if err != nil {
			if se, ok := err.(*SchemaError); ok {
				se.Field = fmt.Sprintf("annotations[%d]", i)
			}
			return compiled{}, err
		}
		out.annotations = append(out.annotations, a)
	}
	return out, nil
}

func (s AnnotationSpec) annotation() (Annotation, error) {
	switch strings.ToLower(strings.TrimSpace(s.Type)) {
	case "region", "rain", "rain_background":
		if s.StartX == nil || s.EndX == nil {
			return nil, schemaErrorf("", "region requires start_x and end_x")
		}
		c, err := s.color(DefaultRegionColor)
		if err != nil {
			return nil, err
		}
		r := RegionHighlight{
			StartX:  *s.StartX,
			EndX:    *s.EndX,
			Color:   c,
			Label:   s.Label,
			Tooltip: firstNonEmpty(s.Tooltip, s.Description),
		}
		return r, validateAnnotation(r)
	case "marker", "rain_marker":
		x := s.X
		if x == nil {
			x = s.XPosition
		}
		if x == nil {
			return nil, schemaErrorf("", "marker requires x")
		}
		c, err := s.color(DefaultMarkerColor)
		if err != nil {
			return nil, err
		}
		m := TextMarker{
			X:       *x,
			Text:    firstNonEmpty(s.Text, s.Label),
			Color:   c,
			Tooltip: firstNonEmpty(s.Tooltip, s.Description),
		}
		return m, validateAnnotation(m)
	}
	return nil, schemaErrorf("", "unknown annotation type %q", s.Type)
}

func (s AnnotationSpec) color(def Color) (Color, error) {
	if strings.TrimSpace(s.Color) == "" {
		return def, nil
	}
	c, err := ParseColor(s.Color)
	if err != nil {
		return Color{}, schemaErrorf("", "%v", err)
	}
	return c, nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
