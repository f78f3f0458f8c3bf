package analytics

// Summary aggregates rain statistics over a session.
type Summary struct {
	TotalSamples    int
	RainSamples     int
	RainFraction    float64
	Intervals       int
	TotalRain       float64
	LongestInterval float64
	// Overall is "none", "light", "moderate" or "heavy".
	Overall string
}

// HasRain reports whether any sample was raining.
func (s Summary) HasRain() bool { return s.RainSamples > 0 }

// Summarize computes session statistics from the samples and the
// intervals detected on them.
func Summarize(samples []Sample, intervals []Interval) Summary {
	s := Summary{TotalSamples: len(samples), Intervals: len(intervals)}
	for _, sm := range samples {
		if sm.Active {
			s.RainSamples++
		}
	}
	for _, iv := range intervals {
		d := iv.Duration()
		s.TotalRain += d
		if d > s.LongestInterval {
			s.LongestInterval = d
		}
	}
	if s.TotalSamples > 0 {
		s.RainFraction = float64(s.RainSamples) / float64(s.TotalSamples)
	}

	switch {
	case s.RainSamples == 0:
		s.Overall = "none"
	case s.RainFraction < 0.2:
		s.Overall = Light.String()
	case s.RainFraction < 0.5:
		s.Overall = Moderate.String()
	default:
		s.Overall = Heavy.String()
	}
	return s
}
