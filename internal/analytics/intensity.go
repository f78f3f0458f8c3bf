package analytics

import (
	"fmt"
	"strings"
)

// Intensity is the rain severity of a sample or interval.
type Intensity int

const (
	Light Intensity = iota
	Moderate
	Heavy
)

// Intensities lists the levels from least to most severe.
var Intensities = []Intensity{Light, Moderate, Heavy}

func (i Intensity) String() string {
	switch i {
	case Light:
		return "light"
	case Moderate:
		return "moderate"
	case Heavy:
		return "heavy"
	}
	return fmt.Sprintf("intensity(%d)", int(i))
}

// Title returns the capitalized name.
func (i Intensity) Title() string {
	s := i.String()
	return strings.ToUpper(s[:1]) + s[1:]
}

// ParseIntensity maps a hint to an Intensity. Besides the level names it
// accepts droplet and drizzle (light), shower (moderate) and storm (heavy).
func ParseIntensity(hint string) (Intensity, bool) {
	switch strings.ToLower(strings.TrimSpace(hint)) {
	case "light", "droplet", "drizzle":
		return Light, true
	case "moderate", "shower":
		return Moderate, true
	case "heavy", "storm":
		return Heavy, true
	}
	return Light, false
}

// HintFromHumidity derives an intensity hint from relative humidity (%).
func HintFromHumidity(humidity float64) string {
	switch {
	case humidity >= 85:
		return "heavy"
	case humidity >= 80:
		return "moderate"
	case humidity >= 75:
		return "light"
	}
	return "drizzle"
}

var descriptionKeywords = []struct {
	keyword string
	hint    string
}{
	{"heavy", "heavy"},
	{"storm", "storm"},
	{"moderate", "moderate"},
	{"shower", "shower"},
	{"light", "light"},
	{"drizzle", "drizzle"},
	{"droplet", "droplet"},
}

// HintFromDescription looks for intensity keywords in a free-text rain
// description. A "wet" status without keywords yields "light". It returns
// "" when nothing matches.
func HintFromDescription(description, status string) string {
	d := strings.ToLower(description)
	for _, k := range descriptionKeywords {
		if strings.Contains(d, k.keyword) {
			return k.hint
		}
	}
	if strings.EqualFold(strings.TrimSpace(status), "wet") {
		return "light"
	}
	return ""
}
