// Package ingest turns a raw tabular file into the cleaned property
// table every derivation consumes. Malformed individual cells never
// raise: unparseable numerics become missing values, unparseable dates
// become nil, and entirely absent columns are simply skipped.
package ingest

import (
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/jibarix/map-viz/adapters/tabular"
	"github.com/jibarix/map-viz/domain/property"
)

// DefaultValidSaleThreshold is the clean-stage cutoff separating real
// transactions from symbolic/non-arm's-length transfers.
const DefaultValidSaleThreshold = 5000

// dateLayouts are tried in order when parsing the sale date column.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"01/02/2006",
	"1/2/2006",
	"2006/01/02",
}

// Clean converts raw parsed rows into a typed, flagged property table.
// The input is never mutated. validSaleThreshold of 0 or below selects
// the default.
func Clean(data *tabular.Data, validSaleThreshold float64) *property.Table {
	if validSaleThreshold <= 0 {
		validSaleThreshold = DefaultValidSaleThreshold
	}

	caps := detectCapabilities(data)
	records := make([]property.Record, len(data.Rows))

	for i, row := range data.Rows {
		rec := property.Record{
			ParcelID:     row[property.ColParcelID],
			Municipality: row[property.ColMunicipality],
			PropertyType: row[property.ColPropertyType],
			SellerName:   row[property.ColSellerName],
			BuyerName:    row[property.ColBuyerName],

			XCoord:        parseNumeric(row[property.ColXCoord]),
			YCoord:        parseNumeric(row[property.ColYCoord]),
			DistanceMiles: parseNumeric(row[property.ColDistanceMiles]),
			AreaSqm:       parseNumeric(row[property.ColAreaSqm]),

			TotalValue:     parseNumeric(row[property.ColTotalValue]),
			LandValue:      parseNumeric(row[property.ColLandValue]),
			StructureValue: parseNumeric(row[property.ColStructureValue]),
			MachineryValue: parseNumeric(row[property.ColMachineryValue]),

			SaleAmount: parseNumeric(row[property.ColSaleAmount]),
		}

		if caps.HasSaleDate {
			if ts := parseDate(row[property.ColSaleDate]); ts != nil {
				rec.SaleDate = ts
				rec.SaleYear = ts.Year()
				rec.SaleMonth = int(ts.Month())
			}
		}

		// NaN compares false against any threshold, so a missing sale
		// amount can never be flagged as a valid sale.
		if caps.HasSaleAmount {
			rec.ValidSale = rec.SaleAmount > validSaleThreshold
		}

		records[i] = rec

		if rec.HasCoordinates() {
			caps.CoordinateCount++
		}
		if !property.IsMissing(rec.DistanceMiles) {
			caps.DistanceCount++
		}
		if !property.IsMissing(rec.AreaSqm) {
			caps.AreaCount++
		}
	}

	log.Printf("[Ingest] Records with valid coordinates: %d of %d", caps.CoordinateCount, len(records))
	log.Printf("[Ingest] Records with valid distance: %d of %d", caps.DistanceCount, len(records))

	return &property.Table{Records: records, Caps: caps}
}

// detectCapabilities computes column presence once, up front, so
// derivations can declare requirements instead of probing per call.
func detectCapabilities(data *tabular.Data) property.Capabilities {
	return property.Capabilities{
		HasSaleAmount:   data.HasColumn(property.ColSaleAmount),
		HasSaleDate:     data.HasColumn(property.ColSaleDate),
		HasCoordinates:  data.HasColumn(property.ColXCoord) && data.HasColumn(property.ColYCoord),
		HasDistance:     data.HasColumn(property.ColDistanceMiles),
		HasArea:         data.HasColumn(property.ColAreaSqm),
		HasTotalValue:   data.HasColumn(property.ColTotalValue),
		HasComponents:   data.HasColumn(property.ColLandValue) && data.HasColumn(property.ColStructureValue) && data.HasColumn(property.ColMachineryValue),
		HasMunicipality: data.HasColumn(property.ColMunicipality),
		HasPropertyType: data.HasColumn(property.ColPropertyType),
		HasParties:      data.HasColumn(property.ColSellerName) && data.HasColumn(property.ColBuyerName),
		HasParcelID:     data.HasColumn(property.ColParcelID),
	}
}

// parseNumeric coerces one cell to a float. Thousands separators are
// stripped before parsing; anything still unparseable becomes missing.
func parseNumeric(s string) float64 {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	if s == "" {
		return property.Missing()
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return property.Missing()
	}
	return v
}

// parseDate tries the known layouts, returning nil on failure.
func parseDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return &ts
		}
	}
	return nil
}
