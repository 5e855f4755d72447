package mapdata

import (
	"sort"

	"github.com/montanaflynn/stats"
)

// DefaultStatsThreshold is the valid-sale floor used by the map
// statistics panel. It is intentionally looser than the ingestion
// threshold so the panel reflects more of the plotted points.
const DefaultStatsThreshold = 1000

// Stats summarizes the plotted point set for the side panel.
type Stats struct {
	TotalProperties int `json:"total_properties"`

	SalesCount int     `json:"sales_count"`
	AvgPrice   float64 `json:"avg_price"`
	MinPrice   float64 `json:"min_price"`
	MaxPrice   float64 `json:"max_price"`

	PricePerSqftCount int     `json:"price_per_sqft_count"`
	AvgPricePerSqft   float64 `json:"avg_price_per_sqft"`
	MinPricePerSqft   float64 `json:"min_price_per_sqft"`
	MaxPricePerSqft   float64 `json:"max_price_per_sqft"`

	TopMunicipality      string `json:"top_municipality"`
	TopMunicipalityCount int    `json:"top_municipality_count"`
	MunicipalityCount    int    `json:"municipality_count"`

	TopPropertyType      string `json:"top_property_type"`
	TopPropertyTypeCount int    `json:"top_property_type_count"`
	PropertyTypeCount    int    `json:"property_type_count"`
}

// Summarize computes the map panel statistics over the prepared
// points. Sales below threshold are plotted but excluded from the
// price figures.
func Summarize(points []Point, threshold float64) Stats {
	if threshold <= 0 {
		threshold = DefaultStatsThreshold
	}

	s := Stats{TotalProperties: len(points)}

	var prices, ppsf []float64
	for _, p := range points {
		if p.SaleAmount > threshold {
			prices = append(prices, p.SaleAmount)
		}
		if p.PricePerSqft > 0 {
			ppsf = append(ppsf, p.PricePerSqft)
		}
	}
	s.SalesCount = len(prices)
	if len(prices) > 0 {
		s.AvgPrice, _ = stats.Mean(prices)
		s.MinPrice, _ = stats.Min(prices)
		s.MaxPrice, _ = stats.Max(prices)
	}
	s.PricePerSqftCount = len(ppsf)
	if len(ppsf) > 0 {
		s.AvgPricePerSqft, _ = stats.Mean(ppsf)
		s.MinPricePerSqft, _ = stats.Min(ppsf)
		s.MaxPricePerSqft, _ = stats.Max(ppsf)
	}

	s.TopMunicipality, s.TopMunicipalityCount, s.MunicipalityCount = topGroup(points, func(p Point) string { return p.Municipality })
	s.TopPropertyType, s.TopPropertyTypeCount, s.PropertyTypeCount = topGroup(points, func(p Point) string { return p.PropertyType })
	return s
}

// topGroup returns the most frequent key, its count, and the number of
// distinct keys. Frequency ties break lexicographically so output is
// stable.
func topGroup(points []Point, key func(Point) string) (string, int, int) {
	counts := make(map[string]int)
	for _, p := range points {
		k := key(p)
		if k == "" || k == "Unknown" {
			continue
		}
		counts[k]++
	}
	if len(counts) == 0 {
		return "", 0, 0
	}
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	top := keys[0]
	for _, k := range keys[1:] {
		if counts[k] > counts[top] {
			top = k
		}
	}
	return top, counts[top], len(counts)
}
