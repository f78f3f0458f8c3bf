// Package timeline decodes detailed session weather timelines and turns
// them into chart documents.
package timeline

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/Prajwal-Prathiksh/rainchart/internal/analytics"
)

// File is the top-level timeline document.
type File struct {
	Metadata *Metadata `json:"metadata,omitempty"`
	Timeline []Entry   `json:"detailed_weather_timeline"`
}

// Metadata identifies the session a timeline belongs to.
type Metadata struct {
	Year    int    `json:"year,omitempty"`
	Race    string `json:"race,omitempty"`
	Session string `json:"session,omitempty"`
}

// Entry is one timeline point.
type Entry struct {
	TimePoint string  `json:"time_point"`
	Weather   Weather `json:"weather_data"`
}

// Weather holds the measurements of one entry.
type Weather struct {
	AirTemperature   *Measure `json:"air_temperature,omitempty"`
	TrackTemperature *Measure `json:"track_temperature,omitempty"`
	Humidity         *Measure `json:"humidity,omitempty"`
	WindSpeed        *Measure `json:"wind_speed,omitempty"`
	Rainfall         Rainfall `json:"rainfall"`
}

// Measure is a value with its unit.
type Measure struct {
	Value float64 `json:"value"`
	Unit  string  `json:"unit,omitempty"`
}

// Rainfall describes the rain state of an entry.
type Rainfall struct {
	IsRaining   bool   `json:"is_raining"`
	Status      string `json:"status,omitempty"`
	Description string `json:"description,omitempty"`
	Intensity   string `json:"intensity,omitempty"`
}

const (
	fallbackStep = 10.0 // seconds after the previous entry when time_point is unreadable
	msToKmh      = 3.6
)

// Decode reads a timeline file.
func Decode(r io.Reader) (File, error) {
	var f File
	if err := json.NewDecoder(r).Decode(&f); err != nil {
		return File{}, fmt.Errorf("timeline: decode: %w", err)
	}
	if f.Timeline == nil {
		return File{}, fmt.Errorf("timeline: missing detailed_weather_timeline")
	}
	return f, nil
}

// IsTimeline reports whether raw JSON looks like a timeline file.
func IsTimeline(data []byte) bool {
	var probe map[string]json.RawMessage
	if err := json.NewDecoder(bytes.NewReader(data)).Decode(&probe); err != nil {
		return false
	}
	_, ok := probe["detailed_weather_timeline"]
	return ok
}

// Rows converts the entries into weather rows ordered by time, with x
// relative to the earliest entry, in seconds. An unreadable time_point
// lands fallbackStep after the previous entry.
func (f File) Rows() []analytics.WeatherRow {
	rows := make([]analytics.WeatherRow, 0, len(f.Timeline))
	prev := -fallbackStep
	for _, e := range f.Timeline {
		t, err := analytics.ParseClock(e.TimePoint)
		if err != nil {
			t = prev + fallbackStep
		}
		prev = t
		rows = append(rows, e.row(t))
	}
	analytics.SortRows(rows)
	return rows
}

func (e Entry) row(x float64) analytics.WeatherRow {
	w := e.Weather
	r := analytics.WeatherRow{
		X:       x,
		AirTemp: analytics.DefaultAirTemp,
		Raining: w.Rainfall.IsRaining,
	}
	if w.AirTemperature != nil {
		r.AirTemp = w.AirTemperature.Value
	}
	if w.TrackTemperature != nil {
		r.TrackTemp = w.TrackTemperature.Value
	}
	if w.WindSpeed != nil {
		r.WindSpeed = w.WindSpeed.Value * msToKmh
	}
	if w.Humidity != nil {
		r.Humidity, r.HasHumidity = w.Humidity.Value, true
	}
	r.Hint = hint(w.Rainfall, r)
	return r
}

func hint(rf Rainfall, r analytics.WeatherRow) string {
	if _, ok := analytics.ParseIntensity(rf.Intensity); ok {
		return rf.Intensity
	}
	if h := analytics.HintFromDescription(rf.Description, rf.Status); h != "" {
		return h
	}
	if r.HasHumidity {
		return analytics.HintFromHumidity(r.Humidity)
	}
	return analytics.Light.String()
}
