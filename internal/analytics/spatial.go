package analytics

import (
	"log"
	"sort"

	"github.com/jibarix/map-viz/domain/core"
	"github.com/jibarix/map-viz/domain/property"
)

// Price brackets applied to valid sales in the spatial working set.
var (
	priceBracketEdges  = []float64{0, 50000, 100000, 200000, 500000}
	priceBracketLabels = []string{"<$50K", "$50K-$100K", "$100K-$200K", "$200K-$500K", ">$500K"}
)

// SpatialRow is one coordinate-bearing record, tagged with a price
// bracket when it is a valid sale.
type SpatialRow struct {
	Record       property.Record
	PriceBracket string // "" for non-sales
}

// GridCell is one cell of the 2D quantile grid.
type GridCell struct {
	XRange        string  `json:"x_range"`
	YRange        string  `json:"y_range"`
	PropertyCount int     `json:"property_count"`
	AvgPrice      float64 `json:"avg_price"`
	MedianPrice   float64 `json:"median_price"`
}

// PrepareSpatial drops records with missing or zero coordinates and
// tags valid sales with a price bracket.
func PrepareSpatial(t *property.Table) ([]SpatialRow, error) {
	if !t.Caps.HasCoordinates {
		return nil, core.MissingColumns(property.ColXCoord, property.ColYCoord)
	}

	var rows []SpatialRow
	for _, r := range t.Records {
		if !r.HasCoordinates() {
			continue
		}
		row := SpatialRow{Record: r}
		if r.ValidSale {
			row.PriceBracket = priceBracket(r.SaleAmount)
		}
		rows = append(rows, row)
	}
	log.Printf("[Analytics] Records with valid coordinates after cleaning: %d of %d", len(rows), t.Len())
	if len(rows) == 0 {
		return nil, core.InsufficientData("records with coordinates", 0, 1)
	}
	return rows, nil
}

func priceBracket(amount float64) string {
	for i := len(priceBracketEdges) - 1; i >= 1; i-- {
		if amount > priceBracketEdges[i] {
			return priceBracketLabels[i]
		}
	}
	return priceBracketLabels[0]
}

// SpatialGridStats bins the X and Y coordinates of priced rows into
// independent quantile bins (3 below 25 rows, else 5) and aggregates
// each occupied cell. At least 5 priced rows are required.
func SpatialGridStats(rows []SpatialRow) ([]GridCell, error) {
	var priced []property.Record
	for _, row := range rows {
		if row.Record.ValidSale {
			priced = append(priced, row.Record)
		}
	}
	if len(priced) < 5 {
		return nil, core.InsufficientData("priced records for grid statistics", len(priced), 5)
	}

	numBins := GridBinCount(len(priced))
	xs := make([]float64, len(priced))
	ys := make([]float64, len(priced))
	for i, r := range priced {
		xs[i] = r.XCoord
		ys[i] = r.YCoord
	}

	xBins, err := QuantileBins(xs, numBins)
	if err != nil {
		return nil, core.Computation("grid x binning", err)
	}
	yBins, err := QuantileBins(ys, numBins)
	if err != nil {
		return nil, core.Computation("grid y binning", err)
	}

	// Invert member lists to per-row bin indexes, then group by cell.
	xIdx := make([]int, len(priced))
	for bi, b := range xBins {
		for _, m := range b.Members {
			xIdx[m] = bi
		}
	}
	yIdx := make([]int, len(priced))
	for bi, b := range yBins {
		for _, m := range b.Members {
			yIdx[m] = bi
		}
	}

	type cellKey struct{ x, y int }
	cells := make(map[cellKey][]float64)
	for i := range priced {
		k := cellKey{xIdx[i], yIdx[i]}
		cells[k] = append(cells[k], priced[i].SaleAmount)
	}

	keys := make([]cellKey, 0, len(cells))
	for k := range cells {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].x != keys[j].x {
			return keys[i].x < keys[j].x
		}
		return keys[i].y < keys[j].y
	})

	out := make([]GridCell, 0, len(keys))
	for _, k := range keys {
		prices := cells[k]
		out = append(out, GridCell{
			XRange:        xBins[k.x].Label,
			YRange:        yBins[k.y].Label,
			PropertyCount: len(prices),
			AvgPrice:      mean(prices),
			MedianPrice:   median(prices),
		})
	}
	log.Printf("[Analytics] Created grid statistics with %d cells", len(out))
	return out, nil
}
