package analytics

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"
)

// WeatherRow is one point of a session weather timeline. X is seconds
// relative to the first row.
type WeatherRow struct {
	X           float64
	AirTemp     float64
	TrackTemp   float64
	Humidity    float64
	HasHumidity bool
	WindSpeed   float64 // km/h
	Raining     bool
	Hint        string
}

// DefaultAirTemp is the air temperature used when a source has none, in °C.
const DefaultAirTemp = 20.0

// SortRows orders rows by X, keeping the file order of equal X values,
// and rebases X so the earliest row is at 0.
func SortRows(rows []WeatherRow) {
	slices.SortStableFunc(rows, func(a, b WeatherRow) int {
		return cmp.Compare(a.X, b.X)
	})
	if len(rows) == 0 {
		return
	}
	origin := rows[0].X
	for i := range rows {
		rows[i].X -= origin
	}
}

// Sample projects the row onto the interval detector input.
func (r WeatherRow) Sample() Sample {
	return Sample{X: r.X, Active: r.Raining, Hint: r.Hint}
}

// Samples projects rows onto detector input.
func Samples(rows []WeatherRow) []Sample {
	out := make([]Sample, len(rows))
	for i, r := range rows {
		out[i] = r.Sample()
	}
	return out
}

// ParseBoolLoose parses boolean values in various formats including
// "true"/"false", "t"/"f", "1"/"0", "yes"/"no", "y"/"n", rain states
// ("raining"/"wet" and "dry"), and integers where 0 is false.
func ParseBoolLoose(s string) (bool, error) {
	ss := strings.TrimSpace(strings.ToLower(s))
	switch ss {
	case "true", "t", "1", "yes", "y", "raining", "rain", "wet":
		return true, nil
	case "false", "f", "0", "no", "n", "dry", "":
		return false, nil
	default:
		if val, err := strconv.Atoi(ss); err == nil {
			return val != 0, nil
		}
		return false, fmt.Errorf("bad bool: %q", s)
	}
}

// FormatClock formats a session position in seconds as MM:SS, or H:MM:SS
// from an hour up. Negative positions get a leading "-".
func FormatClock(s float64) string {
	sign := ""
	if s < 0 {
		sign, s = "-", -s
	}
	total := int(s + 0.5)
	h, m, sec := total/3600, total/60%60, total%60
	if h > 0 {
		return fmt.Sprintf("%s%d:%02d:%02d", sign, h, m, sec)
	}
	return fmt.Sprintf("%s%02d:%02d", sign, m, sec)
}

// ParseClock parses "MM:SS.mmm" and "H:MM:SS.mmm" session times into seconds.
func ParseClock(s string) (float64, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, fmt.Errorf("bad clock %q", s)
	}

	secs, err := strconv.ParseFloat(parts[len(parts)-1], 64)
	if err != nil || secs < 0 || secs >= 60 {
		return 0, fmt.Errorf("bad clock %q", s)
	}
	total := secs
	mult := 60.0
	for i := len(parts) - 2; i >= 0; i-- {
		v, err := strconv.Atoi(parts[i])
		if err != nil || v < 0 {
			return 0, fmt.Errorf("bad clock %q", s)
		}
		total += float64(v) * mult
		mult *= 60
	}
	return total, nil
}

type weatherColumns struct {
	t, rain, hint, air, track, humidity, wind int
}

// ParseWeatherCSV parses weather CSV records with flexible column
// detection. Time and rain columns are required; the time column may hold
// seconds, session clocks or timestamps. Rows that fail to parse are
// skipped. Rows are ordered by time and X is made relative to the
// earliest one.
func ParseWeatherCSV(records [][]string) ([]WeatherRow, error) {
	if len(records) == 0 {
		return nil, errors.New("empty csv")
	}

	cols, err := findColumns(records[0])
	if err != nil {
		return nil, err
	}

	var (
		out  []WeatherRow
		base time.Time
	)
	for i := 1; i < len(records); i++ {
		row, ts, err := parseCSVRow(records[i], cols)
		if err != nil {
			continue
		}
		if !ts.IsZero() {
			if base.IsZero() {
				base = ts
			}
			row.X = ts.Sub(base).Seconds()
		}
		out = append(out, row)
	}
	SortRows(out)
	return out, nil
}

func findColumns(header []string) (weatherColumns, error) {
	col := func(names ...string) int {
		for _, name := range names {
			for i, h := range header {
				if strings.EqualFold(strings.TrimSpace(h), name) {
					return i
				}
			}
		}
		return -1
	}

	c := weatherColumns{
		t:        col("time", "x", "seconds", "session_time", "time_point", "timestamp"),
		rain:     col("rainfall", "raining", "is_raining", "rain"),
		hint:     col("intensity", "rain_intensity", "description"),
		air:      col("air_temp", "airtemp", "air_temperature", "temperature"),
		track:    col("track_temp", "tracktemp", "track_temperature"),
		humidity: col("humidity", "relative_humidity"),
		wind:     col("wind_speed", "windspeed", "wind"),
	}
	if c.t == -1 || c.rain == -1 {
		return c, fmt.Errorf("expected headers: time, rainfall (or similar)")
	}
	return c, nil
}

func parseCSVRow(rec []string, c weatherColumns) (WeatherRow, time.Time, error) {
	field := func(idx int) string {
		if idx < 0 || idx >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[idx])
	}
	number := func(idx int) (float64, bool) {
		v, err := strconv.ParseFloat(field(idx), 64)
		return v, err == nil
	}

	if c.t >= len(rec) || c.rain >= len(rec) {
		return WeatherRow{}, time.Time{}, fmt.Errorf("insufficient columns")
	}

	var (
		row WeatherRow
		ts  time.Time
	)
	raw := field(c.t)
	if v, err := strconv.ParseFloat(raw, 64); err == nil {
		row.X = v
	} else if v, err := ParseClock(raw); err == nil {
		row.X = v
	} else if t, err := parseTimestamp(raw); err == nil {
		ts = t
	} else {
		return WeatherRow{}, time.Time{}, fmt.Errorf("unable to parse time %q", raw)
	}

	raining, err := ParseBoolLoose(field(c.rain))
	if err != nil {
		return WeatherRow{}, time.Time{}, err
	}
	row.Raining = raining

	row.AirTemp = DefaultAirTemp
	if v, ok := number(c.air); ok {
		row.AirTemp = v
	}
	row.TrackTemp, _ = number(c.track)
	row.WindSpeed, _ = number(c.wind)
	row.Humidity, row.HasHumidity = number(c.humidity)

	row.Hint = field(c.hint)
	if _, ok := ParseIntensity(row.Hint); !ok {
		row.Hint = HintFromDescription(row.Hint, "")
	}
	if row.Hint == "" && row.HasHumidity {
		row.Hint = HintFromHumidity(row.Humidity)
	}
	return row, ts, nil
}

func parseTimestamp(tsStr string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, tsStr)
	if err == nil {
		return t, nil
	}

	layouts := []string{
		"2006-01-02 15:04:05",
		"2006-01-02 15:04:05 -0700",
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05.000",
	}
	for _, lay := range layouts {
		if tt, e2 := time.Parse(lay, tsStr); e2 == nil {
			return tt, nil
		}
	}
	return time.Time{}, fmt.Errorf("unable to parse timestamp")
}
