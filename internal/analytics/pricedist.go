package analytics

import (
	"github.com/jibarix/map-viz/domain/core"
	"github.com/jibarix/map-viz/domain/property"
)

// DefaultPriceCap excludes extreme outliers from the price histogram.
const DefaultPriceCap = 2000000

// PriceDistribution returns valid-sale prices capped at maxPrice for
// the histogram. maxPrice of 0 or below selects the default cap.
func PriceDistribution(t *property.Table, maxPrice float64) ([]float64, error) {
	if !t.Caps.HasSaleAmount {
		return nil, core.MissingColumn(property.ColSaleAmount)
	}
	if maxPrice <= 0 {
		maxPrice = DefaultPriceCap
	}

	var prices []float64
	for _, r := range t.Records {
		if r.ValidSale && r.SaleAmount <= maxPrice {
			prices = append(prices, r.SaleAmount)
		}
	}
	if len(prices) == 0 {
		return nil, core.InsufficientData("capped valid sales", 0, 1)
	}
	return prices, nil
}
