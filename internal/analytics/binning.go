package analytics

import (
	"fmt"
	"sort"
	"strconv"

	"gonum.org/v1/gonum/stat"
)

// Bin is one quantile bin over a numeric column: a half-open interval
// (Lo, Hi] with the member indexes of the input slice that fall in it.
// The first bin's lower edge is nudged below the minimum so the
// smallest value is included, and the label shows the nudged edge.
type Bin struct {
	Label   string
	Lo, Hi  float64
	Members []int
}

// Count returns the number of members in the bin.
func (b Bin) Count() int { return len(b.Members) }

// VolumeBinCount applies the data-volume rule for one-dimensional
// binning: 2 bins below 10 rows, 3 below 30, otherwise the requested
// count.
func VolumeBinCount(n, requested int) int {
	switch {
	case n < 10:
		return 2
	case n < 30:
		return 3
	default:
		return requested
	}
}

// GridBinCount applies the spatial-grid rule: 3 bins below 25 rows,
// otherwise 5.
func GridBinCount(n int) int {
	if n < 25 {
		return 3
	}
	return 5
}

// QuantileBins partitions values into at most q population-balanced
// bins. Edges are the i/q quantiles (linear interpolation); adjacent
// edges made identical by repeated values are merged, so fewer than q
// bins may come back. Empty bins are never emitted, and every input
// index lands in exactly one bin. values must be free of missing
// entries; callers filter first.
func QuantileBins(values []float64, q int) ([]Bin, error) {
	n := len(values)
	if n == 0 {
		return nil, fmt.Errorf("no values to bin")
	}
	if q < 1 {
		return nil, fmt.Errorf("invalid bin count %d", q)
	}

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	// Quantile edges, deduplicated to drop degenerate intervals.
	edges := make([]float64, 0, q+1)
	for i := 0; i <= q; i++ {
		e := stat.Quantile(float64(i)/float64(q), stat.LinInterp, sorted, nil)
		if len(edges) == 0 || e > edges[len(edges)-1] {
			edges = append(edges, e)
		}
	}
	if len(edges) < 2 {
		return nil, fmt.Errorf("degenerate binning: all %d values identical", n)
	}

	// Include the minimum in the first bin by lowering its edge a
	// hair below the smallest value (0.1% of the total range).
	span := edges[len(edges)-1] - edges[0]
	adjustedLo := edges[0] - span*0.001

	bins := make([]Bin, len(edges)-1)
	for i := range bins {
		lo := edges[i]
		if i == 0 {
			lo = adjustedLo
		}
		bins[i] = Bin{
			Label: binLabel(lo, edges[i+1]),
			Lo:    lo,
			Hi:    edges[i+1],
		}
	}

	// Right-closed intervals: v lands in the first bin whose upper
	// edge is >= v.
	for idx, v := range values {
		b := sort.SearchFloat64s(edges[1:], v)
		if b >= len(bins) {
			b = len(bins) - 1
		}
		bins[b].Members = append(bins[b].Members, idx)
	}

	// Interpolated edges normally leave every interval populated, but
	// guard against pathological inputs anyway.
	out := bins[:0]
	for _, b := range bins {
		if len(b.Members) > 0 {
			out = append(out, b)
		}
	}
	return out, nil
}

func binLabel(lo, hi float64) string {
	return "(" + formatEdge(lo) + ", " + formatEdge(hi) + "]"
}

func formatEdge(v float64) string {
	return strconv.FormatFloat(v, 'g', 6, 64)
}
