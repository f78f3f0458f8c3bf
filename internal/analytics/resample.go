package analytics

import (
	"math"
	"sort"
)

// ResampleIndices thins an ordered x grid to roughly one point per
// interval. Targets start at xs[0] and advance by interval; each keeps the
// nearest sample if it lies within half an interval. The result holds
// ascending, unique indices. A non-positive interval keeps every index.
func ResampleIndices(xs []float64, interval float64) []int {
	if len(xs) == 0 {
		return nil
	}
	if interval <= 0 || math.IsNaN(interval) {
		out := make([]int, len(xs))
		for i := range out {
			out[i] = i
		}
		return out
	}

	var (
		out  []int
		last = -1
		end  = xs[len(xs)-1]
	)
	for k := 0; ; k++ {
		target := xs[0] + float64(k)*interval
		if target > end+interval/2 {
			break
		}
		i := nearest(xs, target)
		if math.Abs(xs[i]-target) > interval/2 || i <= last {
			continue
		}
		out = append(out, i)
		last = i
	}
	return out
}

func nearest(xs []float64, target float64) int {
	j := sort.SearchFloat64s(xs, target)
	switch {
	case j == 0:
		return 0
	case j == len(xs):
		return len(xs) - 1
	case target-xs[j-1] <= xs[j]-target:
		return j - 1
	}
	return j
}
