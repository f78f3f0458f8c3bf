package analytics_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Prajwal-Prathiksh/rainchart/internal/analytics"
	"github.com/Prajwal-Prathiksh/rainchart/internal/chart"
)

func flags(xs []float64, active []bool, hints ...string) []analytics.Sample {
	out := make([]analytics.Sample, len(xs))
	for i := range xs {
		out[i] = analytics.Sample{X: xs[i], Active: active[i]}
		if i < len(hints) {
			out[i].Hint = hints[i]
		}
	}
	return out
}

func TestDetectIntervals(t *testing.T) {
	t.Parallel()

	const T, F = true, false
	tests := []struct {
		name   string
		xs     []float64
		active []bool
		hints  []string
		want   []analytics.Interval
	}{
		{
			name:   "single run",
			xs:     []float64{0, 1, 2, 3, 4, 5},
			active: []bool{F, F, T, T, T, F},
			want:   []analytics.Interval{{StartX: 2, EndX: 4, Intensity: analytics.Light, SampleCount: 3}},
		},
		{
			name:   "run open at end",
			xs:     []float64{0, 10, 20, 30},
			active: []bool{F, T, F, T},
			want: []analytics.Interval{
				{StartX: 10, EndX: 10, Intensity: analytics.Light, SampleCount: 1},
				{StartX: 30, EndX: 30, Intensity: analytics.Light, SampleCount: 1},
			},
		},
		{
			name:   "all active",
			xs:     []float64{0, 1, 2},
			active: []bool{T, T, T},
			want:   []analytics.Interval{{StartX: 0, EndX: 2, Intensity: analytics.Light, SampleCount: 3}},
		},
		{
			name:   "all inactive",
			xs:     []float64{0, 1, 2},
			active: []bool{F, F, F},
		},
		{
			name: "empty",
		},
		{
			name:   "majority hint",
			xs:     []float64{0, 1, 2, 3},
			active: []bool{T, T, T, T},
			hints:  []string{"moderate", "shower", "heavy", "light"},
			want:   []analytics.Interval{{StartX: 0, EndX: 3, Intensity: analytics.Moderate, SampleCount: 4}},
		},
		{
			name:   "tie favours severity",
			xs:     []float64{0, 1, 2, 3},
			active: []bool{T, T, T, T},
			hints:  []string{"light", "storm", "light", "heavy"},
			want:   []analytics.Interval{{StartX: 0, EndX: 3, Intensity: analytics.Heavy, SampleCount: 4}},
		},
		{
			name:   "unknown hints count as light",
			xs:     []float64{0, 1, 2},
			active: []bool{T, T, T},
			hints:  []string{"sleet", "", "moderate"},
			want:   []analytics.Interval{{StartX: 0, EndX: 2, Intensity: analytics.Light, SampleCount: 3}},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := analytics.DetectIntervals(flags(tt.xs, tt.active, tt.hints...))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDetectIntervalsIdempotentOverExpansion(t *testing.T) {
	t.Parallel()

	xs := []float64{0, 5, 10, 15, 20, 25, 30, 35, 40, 45}
	active := []bool{true, true, false, false, true, false, true, true, true, false}
	hints := []string{"heavy", "heavy", "", "", "drizzle", "", "shower", "moderate", "light", ""}

	first := analytics.DetectIntervals(flags(xs, active, hints...))
	require.Len(t, first, 3)

	second := analytics.DetectIntervals(analytics.ExpandIntervals(first, xs))
	assert.Equal(t, first, second)
}

func TestParseIntensity(t *testing.T) {
	t.Parallel()

	for hint, want := range map[string]analytics.Intensity{
		"light": analytics.Light, "Droplet": analytics.Light, "drizzle": analytics.Light,
		"moderate": analytics.Moderate, " SHOWER ": analytics.Moderate,
		"heavy": analytics.Heavy, "storm": analytics.Heavy,
	} {
		got, ok := analytics.ParseIntensity(hint)
		assert.True(t, ok, hint)
		assert.Equal(t, want, got, hint)
	}
	got, ok := analytics.ParseIntensity("hail")
	assert.False(t, ok)
	assert.Equal(t, analytics.Light, got)
}

func TestHints(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "heavy", analytics.HintFromHumidity(85))
	assert.Equal(t, "moderate", analytics.HintFromHumidity(80))
	assert.Equal(t, "light", analytics.HintFromHumidity(75))
	assert.Equal(t, "drizzle", analytics.HintFromHumidity(74.9))

	assert.Equal(t, "heavy", analytics.HintFromDescription("Heavy rain on track", ""))
	assert.Equal(t, "shower", analytics.HintFromDescription("passing shower", ""))
	assert.Equal(t, "light", analytics.HintFromDescription("", "wet"))
	assert.Equal(t, "", analytics.HintFromDescription("overcast", "dry"))
}

func TestEndToEndScenario(t *testing.T) {
	t.Parallel()

	xs := []float64{0, 1, 2, 3, 4, 5}
	left := []float64{20.0, 21.5, 23.0, 24.5, 26.0, 27.5}
	rain := []bool{false, false, true, true, true, false}

	intervals := analytics.DetectIntervals(flags(xs, rain))
	require.Equal(t, []analytics.Interval{{StartX: 2, EndX: 4, Intensity: analytics.Light, SampleCount: 3}}, intervals)

	anns := analytics.NewBuilder(analytics.MinDuration(2)).Build(intervals)
	require.Len(t, anns, 2)
	region, ok := anns[0].(chart.RegionHighlight)
	require.True(t, ok)
	assert.Equal(t, 2.0, region.StartX)
	assert.Equal(t, 4.0, region.EndX)
	marker, ok := anns[1].(chart.TextMarker)
	require.True(t, ok)
	assert.Equal(t, 3.0, marker.X)

	m := chart.NewModel(chart.DefaultConfig())
	s, err := chart.NewSeries("Air Temperature", chart.Left, xs, left)
	require.NoError(t, err)
	m.AddSeries(s)
	for _, a := range anns {
		require.NoError(t, m.AddAnnotation(a))
	}
	v, ok := m.ValueAtX(marker.X, chart.Left)
	require.True(t, ok)
	assert.InDelta(t, 24.5, v, 1e-9)
}
