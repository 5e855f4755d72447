package analytics

import (
	"log"
	"math"
	"sort"

	"github.com/jibarix/map-viz/domain/core"
	"github.com/jibarix/map-viz/domain/property"
)

// DistanceBin is one coarse quantile bin of distance to the reference
// point.
type DistanceBin struct {
	DistanceRange string  `json:"distance_range"`
	PropertyCount int     `json:"property_count"`
	AvgPrice      float64 `json:"avg_price"`
	MedianPrice   float64 `json:"median_price"`
	AvgDistance   float64 `json:"avg_distance"`
}

// DistancePoint is one fine-grained rounded-distance group.
type DistancePoint struct {
	RoundedDistance  float64 `json:"rounded_distance"`
	PropertyCount    int     `json:"property_count"`
	AvgPrice         float64 `json:"avg_price"`
	MedianPrice      float64 `json:"median_price"`
	MinPrice         float64 `json:"min_price"`
	MaxPrice         float64 `json:"max_price"`
	ExactAvgDistance float64 `json:"exact_avg_distance"`
}

// PrepareDistance filters to valid sales with a positive, non-missing
// distance.
func PrepareDistance(t *property.Table) ([]property.Record, error) {
	if !t.Caps.HasDistance {
		return nil, core.MissingColumn(property.ColDistanceMiles)
	}
	if !t.Caps.HasSaleAmount {
		return nil, core.MissingColumn(property.ColSaleAmount)
	}

	var recs []property.Record
	for _, r := range t.Records {
		if r.ValidSale && r.HasDistance() {
			recs = append(recs, r)
		}
	}
	log.Printf("[Analytics] Records with valid distance and price: %d of %d", len(recs), t.Len())
	if len(recs) == 0 {
		return nil, core.InsufficientData("valid sales with distance", 0, 1)
	}
	return recs, nil
}

// DistanceBinStats quantile-bins distance (volume rule: 2 below 10
// rows, 3 below 30, else the requested count) and aggregates prices.
func DistanceBinStats(recs []property.Record, requestedBins int) ([]DistanceBin, error) {
	if len(recs) == 0 {
		return nil, core.InsufficientData("distance rows", 0, 1)
	}
	if requestedBins <= 0 {
		requestedBins = 5
	}
	numBins := VolumeBinCount(len(recs), requestedBins)

	dists := make([]float64, len(recs))
	for i, r := range recs {
		dists[i] = r.DistanceMiles
	}
	bins, err := QuantileBins(dists, numBins)
	if err != nil {
		return nil, core.Computation("distance binning", err)
	}

	out := make([]DistanceBin, 0, len(bins))
	for _, b := range bins {
		prices := make([]float64, 0, b.Count())
		ds := make([]float64, 0, b.Count())
		for _, idx := range b.Members {
			prices = append(prices, recs[idx].SaleAmount)
			ds = append(ds, recs[idx].DistanceMiles)
		}
		out = append(out, DistanceBin{
			DistanceRange: b.Label,
			PropertyCount: b.Count(),
			AvgPrice:      mean(prices),
			MedianPrice:   median(prices),
			AvgDistance:   mean(ds),
		})
	}
	log.Printf("[Analytics] Created distance bin statistics with %d bins", len(out))
	return out, nil
}

// rounding captures the adaptive precision used for fine-grained
// distance groups: a decimal place count, or a nearest-multiple step
// for long distance ranges.
type rounding struct {
	decimals int
	multiple float64
}

func (r rounding) apply(v float64) float64 {
	if r.multiple > 0 {
		return math.Round(v/r.multiple) * r.multiple
	}
	p := math.Pow(10, float64(r.decimals))
	return math.Round(v*p) / p
}

func (r rounding) doubled() rounding {
	if r.multiple > 0 {
		return rounding{multiple: r.multiple * 2}
	}
	return rounding{decimals: r.decimals * 2}
}

// roundingFor picks the precision from the data range: tenths
// normally, hundredths beyond 20 miles, the nearest 5 beyond 50.
func roundingFor(maxDistance float64) rounding {
	switch {
	case maxDistance > 50:
		return rounding{multiple: 5}
	case maxDistance > 20:
		return rounding{decimals: 2}
	default:
		return rounding{decimals: 1}
	}
}

// DistanceDetailStats groups sales by rounded distance. If more than a
// third of the groups end up with fewer than 3 members, the rounding
// precision is doubled once and the grouping redone at the doubled
// precision only; the adjustment is not iterated to convergence.
func DistanceDetailStats(recs []property.Record) ([]DistancePoint, error) {
	if len(recs) == 0 {
		return nil, core.InsufficientData("distance rows", 0, 1)
	}

	maxDistance := 0.0
	for _, r := range recs {
		if r.DistanceMiles > maxDistance {
			maxDistance = r.DistanceMiles
		}
	}
	prec := roundingFor(maxDistance)

	groups := groupByRounded(recs, prec)
	small := 0
	for _, members := range groups {
		if len(members) < 3 {
			small++
		}
	}
	if float64(small) > float64(len(groups))/3 {
		log.Printf("[Analytics] Too many small groups (%d of %d), adjusting rounding", small, len(groups))
		prec = prec.doubled()
		groups = groupByRounded(recs, prec)
	}

	keys := make([]float64, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Float64s(keys)

	out := make([]DistancePoint, 0, len(keys))
	for _, k := range keys {
		members := groups[k]
		prices := make([]float64, 0, len(members))
		ds := make([]float64, 0, len(members))
		for _, r := range members {
			prices = append(prices, r.SaleAmount)
			ds = append(ds, r.DistanceMiles)
		}
		out = append(out, DistancePoint{
			RoundedDistance:  k,
			PropertyCount:    len(members),
			AvgPrice:         mean(prices),
			MedianPrice:      median(prices),
			MinPrice:         minOf(prices),
			MaxPrice:         maxOf(prices),
			ExactAvgDistance: mean(ds),
		})
	}
	log.Printf("[Analytics] Created detailed distance statistics with %d distance points", len(out))
	return out, nil
}

func groupByRounded(recs []property.Record, prec rounding) map[float64][]property.Record {
	groups := make(map[float64][]property.Record)
	for _, r := range recs {
		k := prec.apply(r.DistanceMiles)
		groups[k] = append(groups[k], r)
	}
	return groups
}
