package analytics_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Prajwal-Prathiksh/rainchart/internal/analytics"
)

func TestParseBoolLoose(t *testing.T) {
	t.Parallel()

	for _, s := range []string{"true", "T", "1", "yes", "Y", "raining", "wet", "7"} {
		v, err := analytics.ParseBoolLoose(s)
		require.NoError(t, err, s)
		assert.True(t, v, s)
	}
	for _, s := range []string{"false", "f", "0", "No", "n", "dry", " "} {
		v, err := analytics.ParseBoolLoose(s)
		require.NoError(t, err, s)
		assert.False(t, v, s)
	}
	_, err := analytics.ParseBoolLoose("maybe")
	require.Error(t, err)
}

func TestParseClock(t *testing.T) {
	t.Parallel()

	tests := map[string]float64{
		"00:00.000":   0,
		"01:30.500":   90.5,
		"75:10.250":   4510.25,
		"1:02:03.004": 3723.004,
		"0:00:10":     10,
	}
	for in, want := range tests {
		got, err := analytics.ParseClock(in)
		require.NoError(t, err, in)
		assert.InDelta(t, want, got, 1e-9, in)
	}
	for _, bad := range []string{"", "12", "a:b", "1:2:3:4", "01:61.0", "-1:00.0"} {
		_, err := analytics.ParseClock(bad)
		assert.Error(t, err, bad)
	}
}

func TestParseWeatherCSV(t *testing.T) {
	t.Parallel()

	records := [][]string{
		{"Time", "AirTemp", "Humidity", "WindSpeed", "Rainfall"},
		{"10:00.000", "21.5", "70", "12", "false"},
		{"10:30.000", "21.0", "86", "15", "true"},
		{"garbage", "x", "y", "z", "true"},
		{"11:00.000", "20.5", "81", "14", "1"},
	}
	rows, err := analytics.ParseWeatherCSV(records)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, 0.0, rows[0].X)
	assert.Equal(t, 30.0, rows[1].X)
	assert.Equal(t, 60.0, rows[2].X)
	assert.Equal(t, 21.5, rows[0].AirTemp)
	assert.False(t, rows[0].Raining)
	assert.True(t, rows[1].Raining)
	assert.Equal(t, "heavy", rows[1].Hint)
	assert.Equal(t, "moderate", rows[2].Hint)

	intervals := analytics.DetectIntervals(analytics.Samples(rows))
	require.Len(t, intervals, 1)
	assert.Equal(t, analytics.Heavy, intervals[0].Intensity)
}

func TestParseWeatherCSVTimestamps(t *testing.T) {
	t.Parallel()

	records := [][]string{
		{"timestamp", "is_raining", "intensity"},
		{"2024-06-09T14:00:00Z", "yes", "storm"},
		{"2024-06-09T14:01:00Z", "no", ""},
	}
	rows, err := analytics.ParseWeatherCSV(records)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, 60.0, rows[1].X)
	assert.Equal(t, "storm", rows[0].Hint)
}

func TestParseWeatherCSVHeaders(t *testing.T) {
	t.Parallel()

	_, err := analytics.ParseWeatherCSV(nil)
	require.Error(t, err)
	_, err = analytics.ParseWeatherCSV([][]string{{"time", "temperature"}})
	require.Error(t, err)
}

func TestSortRows(t *testing.T) {
	t.Parallel()

	rows := []analytics.WeatherRow{
		{X: 600, Hint: "a"},
		{X: 720, Hint: "b"},
		{X: 660, Hint: "c"},
		{X: 660, Hint: "d"},
	}
	analytics.SortRows(rows)

	var xs []float64
	var hints []string
	for _, r := range rows {
		xs = append(xs, r.X)
		hints = append(hints, r.Hint)
	}
	assert.Equal(t, []float64{0, 60, 60, 120}, xs)
	assert.Equal(t, []string{"a", "c", "d", "b"}, hints)

	analytics.SortRows(nil)
}

func TestParseWeatherCSVDefaultsAirTemp(t *testing.T) {
	t.Parallel()

	rows, err := analytics.ParseWeatherCSV([][]string{
		{"time", "rain", "air_temp"},
		{"0", "0", ""},
		{"10", "1", "17.5"},
	})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, analytics.DefaultAirTemp, rows[0].AirTemp)
	assert.Equal(t, 17.5, rows[1].AirTemp)
}

func TestFormatClock(t *testing.T) {
	t.Parallel()

	for s, want := range map[float64]string{
		0:     "00:00",
		600:   "10:00",
		3599:  "59:59",
		3605:  "1:00:05",
		-30:   "-00:30",
		59.6:  "01:00",
	} {
		assert.Equal(t, want, analytics.FormatClock(s), s)
		if s >= 0 {
			back, err := analytics.ParseClock(want)
			require.NoError(t, err)
			assert.InDelta(t, s, back, 0.5)
		}
	}
}
