package analytics

import (
	"sort"

	"github.com/jibarix/map-viz/domain/core"
	"github.com/jibarix/map-viz/domain/property"
)

// YearlyStat aggregates valid sales for one calendar year.
type YearlyStat struct {
	Year        int     `json:"year"`
	SalesCount  int     `json:"sales_count"`
	AvgPrice    float64 `json:"avg_price"`
	MedianPrice float64 `json:"median_price"`
	MinPrice    float64 `json:"min_price"`
	MaxPrice    float64 `json:"max_price"`
}

// YearlyStats groups valid sales by sale year. Years without a parsed
// sale date are excluded; only years with at least one sale appear.
func YearlyStats(t *property.Table) ([]YearlyStat, error) {
	if !t.Caps.HasSaleDate || !t.Caps.HasSaleAmount {
		return nil, core.MissingColumns(property.ColSaleDate, property.ColSaleAmount)
	}

	byYear := make(map[int][]float64)
	for _, r := range t.Records {
		if r.ValidSale && r.SaleYear != 0 {
			byYear[r.SaleYear] = append(byYear[r.SaleYear], r.SaleAmount)
		}
	}
	if len(byYear) == 0 {
		return nil, core.InsufficientData("yearly sales", 0, 1)
	}

	years := make([]int, 0, len(byYear))
	for y := range byYear {
		years = append(years, y)
	}
	sort.Ints(years)

	out := make([]YearlyStat, 0, len(years))
	for _, y := range years {
		prices := byYear[y]
		out = append(out, YearlyStat{
			Year:        y,
			SalesCount:  len(prices),
			AvgPrice:    mean(prices),
			MedianPrice: median(prices),
			MinPrice:    minOf(prices),
			MaxPrice:    maxOf(prices),
		})
	}
	return out, nil
}
