package analytics

// Sample is one time-ordered observation fed to the interval detector.
type Sample struct {
	X      float64
	Active bool
	Hint   string
}

// Interval is a maximal run of active samples.
type Interval struct {
	StartX      float64
	EndX        float64
	Intensity   Intensity
	SampleCount int
}

// Duration returns EndX - StartX.
func (iv Interval) Duration() float64 { return iv.EndX - iv.StartX }

// Midpoint returns the center of the interval.
func (iv Interval) Midpoint() float64 { return (iv.StartX + iv.EndX) / 2 }

// DetectIntervals returns one Interval per maximal run of active samples,
// in order. Samples must be ordered by X. A run still active at the last
// sample closes there.
func DetectIntervals(samples []Sample) []Interval {
	var (
		out   []Interval
		start = -1
	)
	for i, s := range samples {
		switch {
		case s.Active && start < 0:
			start = i
		case !s.Active && start >= 0:
			out = append(out, newInterval(samples[start:i]))
			start = -1
		}
	}
	if start >= 0 {
		out = append(out, newInterval(samples[start:]))
	}
	return out
}

func newInterval(run []Sample) Interval {
	return Interval{
		StartX:      run[0].X,
		EndX:        run[len(run)-1].X,
		Intensity:   majorityIntensity(run),
		SampleCount: len(run),
	}
}

// majorityIntensity picks the most frequent hint. Ties go to the more
// severe level; unknown hints count as Light.
func majorityIntensity(run []Sample) Intensity {
	var counts [3]int
	for _, s := range run {
		lvl, _ := ParseIntensity(s.Hint)
		counts[lvl]++
	}
	best := Heavy
	for _, lvl := range []Intensity{Moderate, Light} {
		if counts[lvl] > counts[best] {
			best = lvl
		}
	}
	return best
}

// ExpandIntervals projects intervals back onto an x grid: a sample is
// active when some interval contains its x, and carries that interval's
// intensity as hint.
func ExpandIntervals(intervals []Interval, xs []float64) []Sample {
	out := make([]Sample, len(xs))
	j := 0
	for i, x := range xs {
		out[i] = Sample{X: x}
		for j < len(intervals) && intervals[j].EndX < x {
			j++
		}
		if j < len(intervals) && intervals[j].StartX <= x {
			out[i].Active = true
			out[i].Hint = intervals[j].Intensity.String()
		}
	}
	return out
}
