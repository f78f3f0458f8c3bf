package tui

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Prajwal-Prathiksh/rainchart/internal/analytics"
	"github.com/Prajwal-Prathiksh/rainchart/internal/chart"
	"github.com/Prajwal-Prathiksh/rainchart/internal/config"
	"github.com/Prajwal-Prathiksh/rainchart/internal/source"
	"github.com/Prajwal-Prathiksh/rainchart/internal/timeline"
)

func ptr(v float64) *float64 { return &v }

func testDataset(t *testing.T) source.Dataset {
	t.Helper()
	xs := []float64{0, 60, 120, 180, 240, 300}
	doc := chart.Document{
		ChartTitle: "Rain Analysis: 2024 Brazil Race",
		XAxis:      &chart.AxisSpec{Label: "Time", Unit: "s", Data: xs},
		LeftYAxis:  &chart.AxisSpec{Label: "Air Temperature", Unit: "°C", Data: []float64{20, 20, 19, 19, 18, 18}},
		Annotations: []chart.AnnotationSpec{
			{Type: "region", StartX: ptr(60), EndX: ptr(180), Label: "heavy", Color: "rgba(0,0,139,0.5)", Tooltip: "Heavy rain"},
		},
	}
	ds, err := source.FromDocument(doc)
	require.NoError(t, err)
	ds.Path = "brazil.json"
	ds.Metadata = &timeline.Metadata{Year: 2024, Race: "Brazil", Session: "Race"}
	return ds
}

func lineTexts(lines []LineSpec) string {
	var b strings.Builder
	for _, l := range lines {
		b.WriteString(l.Text)
		b.WriteByte('\n')
	}
	return b.String()
}

func TestBuildStatusLines(t *testing.T) {
	t.Parallel()

	ds := testDataset(t)
	info := StatusInfo{
		Title:       ds.Document.ChartTitle,
		Source:      ds.Path,
		Kind:        ds.Kind.String(),
		Metadata:    ds.Metadata,
		Summary:     ds.Summary,
		Intervals:   ds.Intervals,
		MinDuration: 30,
		Visible:     chart.Range{Min: 0, Max: 300},
		HasVisible:  true,
		Pins:        []float64{90},
		ConfigStr:   "  Config: Using defaults (no config file found)",
	}
	out := lineTexts(BuildStatusLines(info))

	assert.Contains(t, out, "Rain Analysis: 2024 Brazil Race")
	assert.Contains(t, out, "Session: 2024 Brazil Race")
	assert.Contains(t, out, "Rain Intervals: 1 (min duration 00m 30s)")
	assert.Contains(t, out, "[H] 01:00 to 03:00  02m 00s  Heavy")
	assert.Contains(t, out, "Window: 00:00 to 05:00 (05m 00s)")
	assert.Contains(t, out, "Pinned: 01:30")
	assert.Contains(t, out, "Data source: brazil.json (document)")
	assert.Contains(t, out, "Using defaults")
}

func TestBuildStatusLinesWithoutRain(t *testing.T) {
	t.Parallel()

	out := lineTexts(BuildStatusLines(StatusInfo{Summary: analytics.Summary{TotalSamples: 5, Overall: "none"}}))
	assert.Contains(t, out, "Rain Analysis")
	assert.Contains(t, out, "Rain: none detected")
	assert.Contains(t, out, "Dry samples: 5")
	assert.NotContains(t, out, "Window:")
}

func TestBuildStatusLinesCapsIntervals(t *testing.T) {
	t.Parallel()

	var ivs []analytics.Interval
	for i := 0; i < maxListedIntervals+3; i++ {
		ivs = append(ivs, analytics.Interval{StartX: float64(i * 100), EndX: float64(i*100 + 50), Intensity: analytics.Light, SampleCount: 2})
	}
	out := lineTexts(BuildStatusLines(StatusInfo{Intervals: ivs}))
	assert.Contains(t, out, "(3 earlier intervals not listed)")
	assert.Equal(t, maxListedIntervals, strings.Count(out, "[L]"))
}

func TestChartTitle(t *testing.T) {
	t.Parallel()

	got := ChartTitle("Monaco", chart.Range{Min: 90, Max: 3700})
	assert.True(t, strings.HasPrefix(got, "Monaco [01:30 to 1:01:40] - "), got)
	assert.True(t, strings.HasPrefix(ChartTitle("", chart.Range{}), "Weather [00:00 to 00:00]"))
}

func TestFormatting(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "00m 00s", FormatDurationAuto(0))
	assert.Equal(t, "02m 05s", FormatDurationAuto(125*time.Second))
	assert.Equal(t, "1h 05m", FormatDurationAuto(65*time.Minute))
	assert.Equal(t, 1500*time.Millisecond, Seconds(1.5))
	assert.Equal(t, "-00:10", analytics.FormatClock(-10))
	assert.Equal(t, "59:59", analytics.FormatClock(3599))
}

func TestGenerateStatusInfoAndSnapshot(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(dir, "state"))
	t.Setenv("XDG_CACHE_HOME", filepath.Join(dir, "cache"))

	cfg := config.Defaults()
	rc, err := CreateChartWidget(cfg)
	require.NoError(t, err)
	bars := CreateBarsWidget()

	ds := testDataset(t)
	styles, err := cfg.StyleTable()
	require.NoError(t, err)
	require.NoError(t, UpdateWidgets(rc, bars, ds, styles))
	require.Len(t, bars.Bars(), 1)

	loadedAt := time.Date(2024, 11, 3, 14, 0, 0, 0, time.UTC)
	info := GenerateStatusInfo(ds, rc, cfg, loadedAt)
	assert.Equal(t, "Rain Analysis: 2024 Brazil Race", info.Title)
	assert.True(t, info.HasVisible)
	assert.InDelta(t, 0, info.Visible.Min, 1e-9)
	assert.InDelta(t, 300, info.Visible.Max, 1e-9)
	assert.Equal(t, loadedAt, info.LoadedAt)
	assert.Equal(t, "  Config: Using defaults (no config file found)", info.ConfigStr)

	path := SnapshotPath(filepath.Join(dir, "shots"), loadedAt)
	assert.Equal(t, "rainchart-20241103-140000.png", filepath.Base(path))
	require.NoError(t, ExportSnapshot(rc, path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("\x89PNG")))
}
