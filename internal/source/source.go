// Package source loads chart datasets from documents, weather timelines
// and weather CSV files.
package source

import (
	"bytes"
	"cmp"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/Prajwal-Prathiksh/rainchart/internal/analytics"
	"github.com/Prajwal-Prathiksh/rainchart/internal/chart"
	"github.com/Prajwal-Prathiksh/rainchart/internal/timeline"
)

// Kind is the detected input format.
type Kind int

const (
	Document Kind = iota
	Timeline
	CSV
)

func (k Kind) String() string {
	switch k {
	case Timeline:
		return "timeline"
	case CSV:
		return "csv"
	}
	return "document"
}

// Options controls how timelines and CSV files are analysed. Documents
// are taken as they are.
type Options struct {
	Builder          *analytics.Builder
	ResampleInterval float64 // seconds
	Title            string  // used when the input carries none
}

// Dataset is a loaded chart document with its rain analysis.
type Dataset struct {
	Path      string
	Kind      Kind
	Document  chart.Document
	Intervals []analytics.Interval
	Summary   analytics.Summary
	Metadata  *timeline.Metadata
}

// Load reads and analyses the file at path.
func Load(path string, opts Options) (Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Dataset{}, fmt.Errorf("source: %w", err)
	}
	ds, err := Read(path, data, opts)
	if err != nil {
		return Dataset{}, err
	}
	ds.Path = path
	return ds, nil
}

// Read analyses data. The format is picked from the name's extension for
// CSV, and by probing the JSON otherwise.
func Read(name string, data []byte, opts Options) (Dataset, error) {
	switch {
	case strings.EqualFold(filepath.Ext(name), ".csv"):
		return readCSV(data, opts)
	case timeline.IsTimeline(data):
		return readTimeline(data, opts)
	}

	doc, err := chart.DecodeDocument(bytes.NewReader(data))
	if err != nil {
		return Dataset{}, fmt.Errorf("source: %s: %w", name, err)
	}
	return FromDocument(doc)
}

func readCSV(data []byte, opts Options) (Dataset, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return Dataset{}, fmt.Errorf("source: csv: %w", err)
	}
	rows, err := analytics.ParseWeatherCSV(records)
	if err != nil {
		return Dataset{}, fmt.Errorf("source: csv: %w", err)
	}
	if len(rows) == 0 {
		return Dataset{}, fmt.Errorf("source: csv: %w", chart.ErrNoData)
	}
	title := opts.Title
	if title == "" {
		title = "Rain Analysis"
	}
	return fromAnalysis(CSV, rows, title, opts), nil
}

func readTimeline(data []byte, opts Options) (Dataset, error) {
	f, err := timeline.Decode(bytes.NewReader(data))
	if err != nil {
		return Dataset{}, fmt.Errorf("source: %w", err)
	}
	rows := f.Rows()
	if len(rows) == 0 {
		return Dataset{}, fmt.Errorf("source: timeline: %w", chart.ErrNoData)
	}
	title := f.Title()
	if f.Metadata == nil && opts.Title != "" {
		title = opts.Title
	}
	ds := fromAnalysis(Timeline, rows, title, opts)
	ds.Metadata = f.Metadata
	return ds, nil
}

func fromAnalysis(kind Kind, rows []analytics.WeatherRow, title string, opts Options) Dataset {
	a := timeline.Analyze(rows, timeline.Options{
		Title:            title,
		ResampleInterval: opts.ResampleInterval,
		Builder:          opts.Builder,
	})
	return Dataset{
		Kind:      kind,
		Document:  a.Document,
		Intervals: a.Intervals,
		Summary:   a.Summary,
	}
}

// FromDocument validates doc and recovers rain intervals from its
// regions. A region's intensity comes from its label, defaulting to
// light; its sample count is the number of x values it covers.
func FromDocument(doc chart.Document) (Dataset, error) {
	m := chart.NewModel(chart.DefaultConfig())
	if err := m.Load(doc); err != nil {
		return Dataset{}, fmt.Errorf("source: %w", err)
	}

	xs := doc.XAxis.Data
	var intervals []analytics.Interval
	for _, a := range m.Annotations() {
		r, ok := a.(chart.RegionHighlight)
		if !ok {
			continue
		}
		lvl, ok := analytics.ParseIntensity(r.Label)
		if !ok {
			lvl = analytics.Light
		}
		n := 0
		for _, x := range xs {
			if r.Contains(x) {
				n++
			}
		}
		intervals = append(intervals, analytics.Interval{
			StartX:      r.StartX,
			EndX:        r.EndX,
			Intensity:   lvl,
			SampleCount: max(n, 1),
		})
	}
	slices.SortStableFunc(intervals, func(a, b analytics.Interval) int {
		return cmp.Compare(a.StartX, b.StartX)
	})

	return Dataset{
		Kind:      Document,
		Document:  doc,
		Intervals: intervals,
		Summary:   analytics.Summarize(analytics.ExpandIntervals(intervals, xs), intervals),
	}, nil
}
