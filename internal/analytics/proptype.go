package analytics

import (
	"sort"

	"github.com/jibarix/map-viz/domain/core"
	"github.com/jibarix/map-viz/domain/property"
)

// TypeStat aggregates valid sales for one property type.
type TypeStat struct {
	PropertyType    string  `json:"property_type"`
	SalesCount      int     `json:"sales_count"`
	AvgSalePrice    float64 `json:"avg_sale_price"`
	MedianSalePrice float64 `json:"median_sale_price"`
	AvgValue        float64 `json:"avg_value"`
	MedianValue     float64 `json:"median_value"`
}

// PropertyTypeStats groups valid sales by property type. Assessed-value
// columns contribute only where present in the group.
func PropertyTypeStats(t *property.Table) ([]TypeStat, error) {
	if !t.Caps.HasPropertyType || !t.Caps.HasSaleAmount {
		return nil, core.MissingColumns(property.ColPropertyType, property.ColSaleAmount)
	}

	type group struct {
		prices []float64
		values []float64
	}
	byType := make(map[string]*group)
	for _, r := range t.Records {
		if !r.ValidSale || r.PropertyType == "" {
			continue
		}
		g := byType[r.PropertyType]
		if g == nil {
			g = &group{}
			byType[r.PropertyType] = g
		}
		g.prices = append(g.prices, r.SaleAmount)
		if !property.IsMissing(r.TotalValue) {
			g.values = append(g.values, r.TotalValue)
		}
	}
	if len(byType) == 0 {
		return nil, core.InsufficientData("sales by property type", 0, 1)
	}

	types := make([]string, 0, len(byType))
	for k := range byType {
		types = append(types, k)
	}
	sort.Strings(types)

	out := make([]TypeStat, 0, len(types))
	for _, typ := range types {
		g := byType[typ]
		out = append(out, TypeStat{
			PropertyType:    typ,
			SalesCount:      len(g.prices),
			AvgSalePrice:    mean(g.prices),
			MedianSalePrice: median(g.prices),
			AvgValue:        mean(g.values),
			MedianValue:     median(g.values),
		})
	}
	return out, nil
}
