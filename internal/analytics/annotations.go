package analytics

import (
	"fmt"
	"maps"

	"github.com/Prajwal-Prathiksh/rainchart/internal/chart"
)

// Style is the display style of one intensity level.
type Style struct {
	Region chart.Color
	Marker chart.Color
	Code   string
}

// StyleTable maps intensity levels to styles.
type StyleTable map[Intensity]Style

// DefaultStyles returns the stock intensity style table.
func DefaultStyles() StyleTable {
	light := chart.RGBA(135, 206, 250, 0.3)
	moderate := chart.RGBA(30, 144, 255, 0.4)
	heavy := chart.RGBA(0, 0, 139, 0.5)
	return StyleTable{
		Light:    {Region: light, Marker: light.Opaque(), Code: "L"},
		Moderate: {Region: moderate, Marker: moderate.Opaque(), Code: "M"},
		Heavy:    {Region: heavy, Marker: heavy.Opaque(), Code: "H"},
	}
}

// Lookup returns the style for lvl, falling back to the Light entry and
// then to the stock table.
func (t StyleTable) Lookup(lvl Intensity) Style {
	if s, ok := t[lvl]; ok {
		return s
	}
	if s, ok := t[Light]; ok {
		return s
	}
	return DefaultStyles()[lvl]
}

// Merge returns a copy of t with the entries of o applied on top.
func (t StyleTable) Merge(o StyleTable) StyleTable {
	out := maps.Clone(t)
	if out == nil {
		out = StyleTable{}
	}
	maps.Copy(out, o)
	return out
}

// DefaultMinDuration is the shortest interval the builder keeps, in x units.
const DefaultMinDuration = 30

// Builder turns rain intervals into chart annotations.
type Builder struct {
	minDuration float64
	styles      StyleTable
}

// BuilderOption configures a Builder.
type BuilderOption interface {
	set(*Builder)
}

type builderOption func(*Builder)

func (o builderOption) set(b *Builder) { o(b) }

// MinDuration sets the display threshold.
func MinDuration(d float64) BuilderOption {
	return builderOption(func(b *Builder) { b.minDuration = d })
}

// WithStyles overrides the style table; missing levels keep their defaults.
func WithStyles(t StyleTable) BuilderOption {
	return builderOption(func(b *Builder) { b.styles = b.styles.Merge(t) })
}

// NewBuilder returns a builder with the stock threshold and styles.
func NewBuilder(opts ...BuilderOption) *Builder {
	b := &Builder{
		minDuration: DefaultMinDuration,
		styles:      DefaultStyles(),
	}
	for _, opt := range opts {
		opt.set(b)
	}
	return b
}

// MinDuration returns the display threshold.
func (b *Builder) MinDuration() float64 { return b.minDuration }

// Styles returns a copy of the style table in use.
func (b *Builder) Styles() StyleTable { return maps.Clone(b.styles) }

// Build emits a region highlight and a midpoint text marker for every
// interval lasting at least the threshold. Shorter intervals are dropped.
func (b *Builder) Build(intervals []Interval) []chart.Annotation {
	var out []chart.Annotation
	for _, iv := range intervals {
		if iv.Duration() < b.minDuration {
			continue
		}
		st := b.styles.Lookup(iv.Intensity)
		out = append(out,
			chart.RegionHighlight{
				StartX: iv.StartX,
				EndX:   iv.EndX,
				Color:  st.Region,
				Label:  iv.Intensity.String(),
				Tooltip: fmt.Sprintf("%s rain %.0fs to %.0fs (%.0fs, %d samples)",
					iv.Intensity.Title(), iv.StartX, iv.EndX, iv.Duration(), iv.SampleCount),
			},
			chart.TextMarker{
				X:       iv.Midpoint(),
				Text:    st.Code,
				Color:   st.Marker,
				Tooltip: fmt.Sprintf("%s rain (%.0fs)", iv.Intensity.Title(), iv.Duration()),
			},
		)
	}
	return out
}
