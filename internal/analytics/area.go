package analytics

import (
	"log"

	"github.com/jibarix/map-viz/domain/core"
	"github.com/jibarix/map-viz/domain/property"
)

// AreaRow is one valid sale with derived unit-area figures.
type AreaRow struct {
	Record       property.Record
	AreaSqft     float64
	PricePerSqft float64
}

// AreaSummary holds the flat area-tab statistics in both unit systems.
type AreaSummary struct {
	AvgAreaSqm    float64 `json:"avg_area_sqm"`
	MedianAreaSqm float64 `json:"median_area_sqm"`
	MinAreaSqm    float64 `json:"min_area_sqm"`
	MaxAreaSqm    float64 `json:"max_area_sqm"`

	AvgAreaSqft    float64 `json:"avg_area_sqft"`
	MedianAreaSqft float64 `json:"median_area_sqft"`
	MinAreaSqft    float64 `json:"min_area_sqft"`
	MaxAreaSqft    float64 `json:"max_area_sqft"`

	AvgPricePerSqft    float64 `json:"avg_price_per_sqft"`
	MedianPricePerSqft float64 `json:"median_price_per_sqft"`
	MinPricePerSqft    float64 `json:"min_price_per_sqft"`
	MaxPricePerSqft    float64 `json:"max_price_per_sqft"`
}

// AreaBin is one property-size bin of the area analysis.
type AreaBin struct {
	AreaRange          string  `json:"area_range"`
	PropertyCount      int     `json:"property_count"`
	AvgPrice           float64 `json:"avg_price"`
	AvgPricePerSqft    float64 `json:"avg_price_per_sqft"`
	MedianPricePerSqft float64 `json:"median_price_per_sqft"`
	AvgArea            float64 `json:"avg_area"`
}

// PrepareArea builds the area-analysis working set: valid sales with
// positive area and price at or below the cap, with price-per-sqft
// derived, then distribution-trimmed per the policy (the observed
// default drops rows outside the 5th-95th percentile window).
func PrepareArea(t *property.Table, priceCap float64, policy OutlierPolicy) ([]AreaRow, error) {
	if !t.Caps.HasArea || !t.Caps.HasSaleAmount {
		return nil, core.MissingColumns(property.ColAreaSqm, property.ColSaleAmount)
	}
	if priceCap <= 0 {
		priceCap = DefaultPriceCap
	}

	// Row-level filters first, distribution trim second.
	var rows []AreaRow
	for _, r := range t.Records {
		if !r.ValidSale || !r.HasArea() || r.SaleAmount > priceCap {
			continue
		}
		sqft := r.AreaSqft()
		rows = append(rows, AreaRow{
			Record:       r,
			AreaSqft:     sqft,
			PricePerSqft: r.SaleAmount / sqft,
		})
	}
	if len(rows) == 0 {
		return nil, core.InsufficientData("valid sales with area", 0, 1)
	}

	switch policy {
	case OutlierTrimPercentile:
		ppsf := make([]float64, len(rows))
		for i, row := range rows {
			ppsf[i] = row.PricePerSqft
		}
		keep := trimMask(ppsf, 5, 95)
		trimmed := rows[:0]
		for i, row := range rows {
			if keep[i] {
				trimmed = append(trimmed, row)
			}
		}
		rows = trimmed
	case OutlierClipToMedian:
		ppsf := make([]float64, len(rows))
		for i, row := range rows {
			ppsf[i] = row.PricePerSqft
		}
		ClipToMedian(ppsf, 5, 95)
		for i := range rows {
			rows[i].PricePerSqft = ppsf[i]
		}
	}

	if len(rows) == 0 {
		return nil, core.InsufficientData("area rows after outlier trim", 0, 1)
	}
	log.Printf("[Analytics] Records with valid area and price data after filtering: %d", len(rows))
	return rows, nil
}

// SummarizeArea derives the area statistics card from a prepared set.
func SummarizeArea(rows []AreaRow) (*AreaSummary, error) {
	if len(rows) == 0 {
		return nil, core.InsufficientData("area rows", 0, 1)
	}

	sqm := make([]float64, len(rows))
	sqft := make([]float64, len(rows))
	ppsf := make([]float64, len(rows))
	for i, row := range rows {
		sqm[i] = row.Record.AreaSqm
		sqft[i] = row.AreaSqft
		ppsf[i] = row.PricePerSqft
	}

	return &AreaSummary{
		AvgAreaSqm: mean(sqm), MedianAreaSqm: median(sqm), MinAreaSqm: minOf(sqm), MaxAreaSqm: maxOf(sqm),
		AvgAreaSqft: mean(sqft), MedianAreaSqft: median(sqft), MinAreaSqft: minOf(sqft), MaxAreaSqft: maxOf(sqft),
		AvgPricePerSqft: mean(ppsf), MedianPricePerSqft: median(ppsf),
		MinPricePerSqft: minOf(ppsf), MaxPricePerSqft: maxOf(ppsf),
	}, nil
}

// AreaBinStats quantile-bins the prepared rows by square footage. The
// requested bin count is reduced by the data-volume rule (2 below 10
// rows, 3 below 30).
func AreaBinStats(rows []AreaRow, requestedBins int) ([]AreaBin, error) {
	if len(rows) == 0 {
		return nil, core.InsufficientData("area rows", 0, 1)
	}
	if requestedBins <= 0 {
		requestedBins = 5
	}
	numBins := VolumeBinCount(len(rows), requestedBins)

	sqft := make([]float64, len(rows))
	for i, row := range rows {
		sqft[i] = row.AreaSqft
	}
	bins, err := QuantileBins(sqft, numBins)
	if err != nil {
		return nil, core.Computation("area binning", err)
	}

	out := make([]AreaBin, 0, len(bins))
	for _, b := range bins {
		prices := make([]float64, 0, b.Count())
		ppsf := make([]float64, 0, b.Count())
		areas := make([]float64, 0, b.Count())
		for _, idx := range b.Members {
			prices = append(prices, rows[idx].Record.SaleAmount)
			ppsf = append(ppsf, rows[idx].PricePerSqft)
			areas = append(areas, rows[idx].AreaSqft)
		}
		out = append(out, AreaBin{
			AreaRange:          b.Label,
			PropertyCount:      b.Count(),
			AvgPrice:           mean(prices),
			AvgPricePerSqft:    mean(ppsf),
			MedianPricePerSqft: median(ppsf),
			AvgArea:            mean(areas),
		})
	}
	log.Printf("[Analytics] Created area bin statistics with %d bins", len(out))
	return out, nil
}
