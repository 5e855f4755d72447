package analytics

import (
	"fmt"
	"sort"

	"github.com/jibarix/map-viz/domain/property"
)

// Summary is the flat statistics bundle behind the dashboard's summary
// tab. Every field is independently optional: absent inputs leave the
// zero value, and DateRange carries an explicit placeholder.
type Summary struct {
	TotalProperties     int `json:"total_properties"`
	PropertiesWithSales int `json:"properties_with_sales"`
	ValidSales          int `json:"valid_sales"`

	AvgPrice    float64 `json:"avg_price"`
	MedianPrice float64 `json:"median_price"`
	MinPrice    float64 `json:"min_price"`
	MaxPrice    float64 `json:"max_price"`

	AvgPropertyValue float64 `json:"avg_property_value"`

	AvgAreaSqm     float64 `json:"avg_area_sqm"`
	MedianAreaSqm  float64 `json:"median_area_sqm"`
	AvgAreaSqft    float64 `json:"avg_area_sqft"`
	MedianAreaSqft float64 `json:"median_area_sqft"`

	AvgPricePerSqft            float64 `json:"avg_price_per_sqft"`
	MedianPricePerSqft         float64 `json:"median_price_per_sqft"`
	PropertiesWithPricePerSqft int     `json:"properties_with_price_per_sqft"`

	DateRange string `json:"date_range"`

	MainMunicipality      string `json:"main_municipality"`
	MainMunicipalityCount int    `json:"main_municipality_count"`

	HasSpatialData    bool `json:"has_spatial_data"`
	SpatialDataCount  int  `json:"spatial_data_count"`
	HasDistanceData   bool `json:"has_distance_data"`
	DistanceDataCount int  `json:"distance_data_count"`
	HasAreaData       bool `json:"has_area_data"`
	AreaDataCount     int  `json:"area_data_count"`
}

// Summarize computes the summary bundle. It never fails: a table with
// no usable columns yields counts of zero and placeholder text.
func Summarize(t *property.Table) Summary {
	s := Summary{TotalProperties: t.Len(), DateRange: "No date data available"}

	if t.Caps.HasSaleAmount {
		var validPrices []float64
		for _, r := range t.Records {
			if !property.IsMissing(r.SaleAmount) && r.SaleAmount > 0 {
				s.PropertiesWithSales++
			}
			if r.ValidSale {
				s.ValidSales++
				validPrices = append(validPrices, r.SaleAmount)
			}
		}
		if s.ValidSales > 0 {
			s.AvgPrice = mean(validPrices)
			s.MedianPrice = median(validPrices)
			s.MinPrice = minOf(validPrices)
			s.MaxPrice = maxOf(validPrices)
		}
	}

	if t.Caps.HasTotalValue {
		var values []float64
		for _, r := range t.Records {
			if !property.IsMissing(r.TotalValue) {
				values = append(values, r.TotalValue)
			}
		}
		s.AvgPropertyValue = mean(values)
	}

	if t.Caps.HasArea {
		var areas []float64
		for _, r := range t.Records {
			if r.HasArea() {
				areas = append(areas, r.AreaSqm)
			}
		}
		if len(areas) > 0 {
			s.AvgAreaSqm = mean(areas)
			s.MedianAreaSqm = median(areas)
			s.AvgAreaSqft = s.AvgAreaSqm * property.SqftPerSqm
			s.MedianAreaSqft = s.MedianAreaSqm * property.SqftPerSqm
		}

		// Price per square foot is defined only on the intersection of
		// valid sales and positive area.
		if t.Caps.HasSaleAmount && s.ValidSales > 0 {
			var ppsf []float64
			for _, r := range t.Records {
				if r.ValidSale && r.HasArea() {
					ppsf = append(ppsf, r.SaleAmount/r.AreaSqft())
				}
			}
			if len(ppsf) > 0 {
				s.AvgPricePerSqft = mean(ppsf)
				s.MedianPricePerSqft = median(ppsf)
				s.PropertiesWithPricePerSqft = len(ppsf)
			}
		}
	}

	if t.Caps.HasSaleDate {
		var minDate, maxDate *property.Record
		for i := range t.Records {
			r := &t.Records[i]
			if r.SaleDate == nil {
				continue
			}
			if minDate == nil || r.SaleDate.Before(*minDate.SaleDate) {
				minDate = r
			}
			if maxDate == nil || r.SaleDate.After(*maxDate.SaleDate) {
				maxDate = r
			}
		}
		if minDate != nil {
			s.DateRange = fmt.Sprintf("%s to %s",
				minDate.SaleDate.Format("2006-01-02"),
				maxDate.SaleDate.Format("2006-01-02"))
		}
	}

	if t.Caps.HasMunicipality {
		s.MainMunicipality, s.MainMunicipalityCount = modeOf(t.Records, func(r property.Record) string { return r.Municipality })
		if s.MainMunicipality == "" {
			s.MainMunicipality = "Unknown"
		}
	} else {
		s.MainMunicipality = "Unknown"
	}

	s.HasSpatialData = t.Caps.HasCoordinates
	s.SpatialDataCount = t.Caps.CoordinateCount
	s.HasDistanceData = t.Caps.HasDistance
	s.DistanceDataCount = t.Caps.DistanceCount
	s.HasAreaData = t.Caps.HasArea
	s.AreaDataCount = t.Caps.AreaCount
	return s
}

// modeOf returns the most frequent non-blank key and its count, ties
// broken lexicographically for determinism.
func modeOf(records []property.Record, key func(property.Record) string) (string, int) {
	counts := make(map[string]int)
	for _, r := range records {
		if k := key(r); k != "" {
			counts[k]++
		}
	}
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	best, bestCount := "", 0
	for _, k := range keys {
		if counts[k] > bestCount {
			best, bestCount = k, counts[k]
		}
	}
	return best, bestCount
}
