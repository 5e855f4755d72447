package analytics

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// OutlierPolicy selects how a pipeline treats distributional outliers.
// Each pipeline has its observed default; the policy is a parameter so
// the choice stays visible rather than hardcoded.
type OutlierPolicy int

const (
	// OutlierNone leaves the values untouched.
	OutlierNone OutlierPolicy = iota
	// OutlierTrimPercentile drops rows outside the percentile window.
	OutlierTrimPercentile
	// OutlierClipToMedian replaces out-of-window values with the
	// column median instead of dropping the row.
	OutlierClipToMedian
)

// percentileBounds returns the [lowPct, highPct] percentile window of
// values using linear interpolation, matching how the source pipelines
// cut their distributions.
func percentileBounds(values []float64, lowPct, highPct float64) (lo, hi float64) {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	lo = stat.Quantile(lowPct/100, stat.LinInterp, sorted, nil)
	hi = stat.Quantile(highPct/100, stat.LinInterp, sorted, nil)
	return lo, hi
}

// trimMask marks the values inside the inclusive percentile window.
func trimMask(values []float64, lowPct, highPct float64) []bool {
	keep := make([]bool, len(values))
	if len(values) == 0 {
		return keep
	}
	lo, hi := percentileBounds(values, lowPct, highPct)
	for i, v := range values {
		keep[i] = v >= lo && v <= hi
	}
	return keep
}

// ClipToMedian replaces values outside the percentile window with the
// median of the whole column, in place.
func ClipToMedian(values []float64, lowPct, highPct float64) {
	if len(values) == 0 {
		return
	}
	lo, hi := percentileBounds(values, lowPct, highPct)
	med := median(values)
	for i, v := range values {
		if v < lo || v > hi {
			values[i] = med
		}
	}
}
