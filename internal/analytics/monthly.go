package analytics

import (
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/jibarix/map-viz/domain/core"
	"github.com/jibarix/map-viz/domain/property"
)

// MonthlyStat is one calendar month of the price-per-square-foot
// series.
type MonthlyStat struct {
	YearMonth          string    `json:"year_month"` // "2023-04"
	MonthDate          time.Time `json:"month_date"`
	AvgPricePerSqft    float64   `json:"avg_price_per_sqft"`
	MedianPricePerSqft float64   `json:"median_price_per_sqft"`
	SqftPropertyCount  int       `json:"sqft_property_count"`
	AvgPrice           float64   `json:"avg_price"`
	SaleCount          int       `json:"sale_count"`
}

// MonthlyPricePerSqft builds the monthly price-per-sqft series: valid
// sales with positive area and a parsed date, trimmed to the 1st-99th
// percentile window of price-per-sqft, grouped by calendar month.
// Months need at least 2 qualifying rows, and the series needs at
// least 2 qualifying months; anything less is "no data".
func MonthlyPricePerSqft(t *property.Table) ([]MonthlyStat, error) {
	if !t.Caps.HasSaleDate || !t.Caps.HasSaleAmount || !t.Caps.HasArea {
		return nil, core.MissingColumns(property.ColSaleDate, property.ColSaleAmount, property.ColAreaSqm)
	}

	type row struct {
		rec  property.Record
		ppsf float64
	}
	var rows []row
	for _, r := range t.Records {
		if r.ValidSale && r.HasArea() && r.SaleDate != nil {
			rows = append(rows, row{rec: r, ppsf: r.SaleAmount / r.AreaSqft()})
		}
	}
	if len(rows) < 3 {
		return nil, core.InsufficientData("monthly price per sqft rows", len(rows), 3)
	}

	ppsf := make([]float64, len(rows))
	for i, r := range rows {
		ppsf[i] = r.ppsf
	}
	keep := trimMask(ppsf, 1, 99)
	trimmed := rows[:0]
	for i, r := range rows {
		if keep[i] {
			trimmed = append(trimmed, r)
		}
	}
	rows = trimmed

	type monthKey struct {
		year  int
		month int
	}
	byMonth := make(map[monthKey][]row)
	for _, r := range rows {
		k := monthKey{r.rec.SaleYear, r.rec.SaleMonth}
		byMonth[k] = append(byMonth[k], r)
	}

	keys := make([]monthKey, 0, len(byMonth))
	for k, members := range byMonth {
		if len(members) >= 2 {
			keys = append(keys, k)
		}
	}
	if len(keys) < 2 {
		log.Printf("[Analytics] Not enough qualifying months for price per sqft series: %d", len(keys))
		return nil, core.InsufficientData("qualifying months", len(keys), 2)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].year != keys[j].year {
			return keys[i].year < keys[j].year
		}
		return keys[i].month < keys[j].month
	})

	out := make([]MonthlyStat, 0, len(keys))
	for _, k := range keys {
		members := byMonth[k]
		perSqft := make([]float64, 0, len(members))
		prices := make([]float64, 0, len(members))
		for _, m := range members {
			perSqft = append(perSqft, m.ppsf)
			prices = append(prices, m.rec.SaleAmount)
		}
		out = append(out, MonthlyStat{
			YearMonth:          fmt.Sprintf("%04d-%02d", k.year, k.month),
			MonthDate:          time.Date(k.year, time.Month(k.month), 1, 0, 0, 0, 0, time.UTC),
			AvgPricePerSqft:    mean(perSqft),
			MedianPricePerSqft: median(perSqft),
			SqftPropertyCount:  len(members),
			AvgPrice:           mean(prices),
			SaleCount:          len(members),
		})
	}
	return out, nil
}
