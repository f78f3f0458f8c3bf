package timeline

import (
	"fmt"

	"github.com/Prajwal-Prathiksh/rainchart/internal/analytics"
	"github.com/Prajwal-Prathiksh/rainchart/internal/chart"
)

// DefaultResampleInterval is the series thinning step in seconds.
const DefaultResampleInterval = 15 * 60

// Options controls document construction.
type Options struct {
	Title string
	// ResampleInterval thins the plotted series, in seconds. Zero keeps
	// every row. Intervals are always detected on the full rows.
	ResampleInterval float64
	Builder          *analytics.Builder
}

// Analysis is the result of running detection over a set of rows.
type Analysis struct {
	Document  chart.Document
	Intervals []analytics.Interval
	Summary   analytics.Summary
}

// Analyze detects rain intervals on rows and builds the chart document:
// air temperature on the left axis, wind speed on the right, and the
// annotations produced by the builder.
func Analyze(rows []analytics.WeatherRow, opts Options) Analysis {
	b := opts.Builder
	if b == nil {
		b = analytics.NewBuilder()
	}

	samples := analytics.Samples(rows)
	intervals := analytics.DetectIntervals(samples)

	xs := make([]float64, len(rows))
	for i, r := range rows {
		xs[i] = r.X
	}
	idx := analytics.ResampleIndices(xs, opts.ResampleInterval)

	doc := chart.Document{
		ChartTitle: opts.Title,
		XAxis:      &chart.AxisSpec{Label: "Time", Unit: "s", Data: make([]float64, 0, len(idx))},
		LeftYAxis:  &chart.AxisSpec{Label: "Air Temperature", Unit: "°C", Data: make([]float64, 0, len(idx))},
		RightYAxis: &chart.AxisSpec{Label: "Wind Speed", Unit: "km/h", Data: make([]float64, 0, len(idx))},
	}
	for _, i := range idx {
		doc.XAxis.Data = append(doc.XAxis.Data, rows[i].X)
		doc.LeftYAxis.Data = append(doc.LeftYAxis.Data, rows[i].AirTemp)
		doc.RightYAxis.Data = append(doc.RightYAxis.Data, rows[i].WindSpeed)
	}
	for _, a := range b.Build(intervals) {
		doc.Annotations = append(doc.Annotations, chart.SpecFor(a))
	}

	return Analysis{
		Document:  doc,
		Intervals: intervals,
		Summary:   analytics.Summarize(samples, intervals),
	}
}

// Title builds a chart title from timeline metadata.
func (f File) Title() string {
	if f.Metadata == nil || f.Metadata.Race == "" {
		return "Rain Analysis"
	}
	m := f.Metadata
	t := "Rain Analysis: " + m.Race
	if m.Year > 0 {
		t = fmt.Sprintf("Rain Analysis: %d %s", m.Year, m.Race)
	}
	if m.Session != "" {
		t += " (" + m.Session + ")"
	}
	return t
}
