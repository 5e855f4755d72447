// Package mapdata prepares the capped, null-scrubbed point set behind
// the interactive map. Everything here is a rendering projection of
// the cleaned table; the only determinism requirement in the system is
// the fixed-seed down-sample.
package mapdata

import (
	"log"
	"math/rand"
	"sort"
	"time"

	"github.com/jibarix/map-viz/domain/core"
	"github.com/jibarix/map-viz/domain/property"
	"github.com/jibarix/map-viz/internal/analytics"
)

// DefaultSampleCap bounds the point count for browser performance.
const DefaultSampleCap = 2000

// DefaultSampleSeed fixes the down-sample so repeated calls over the
// same input select the same rows.
const DefaultSampleSeed = 42

// Point is one renderable map marker: coordinate-complete, with a
// normalized magnitude for sizing and an outlier-clipped price per
// square foot for coloring.
// Fields are zero-filled rather than NaN so the set serializes to
// JSON directly.
type Point struct {
	X            float64    `json:"x"`
	Y            float64    `json:"y"`
	ParcelID     string     `json:"parcel_id"`
	Municipality string     `json:"municipality"`
	PropertyType string     `json:"property_type"`
	AreaSqm      float64    `json:"area_sqm"`
	SaleAmount   float64    `json:"sale_amount"`
	TotalValue   float64    `json:"total_value"`
	SaleDate     *time.Time `json:"sale_date"`
	PricePerSqft float64    `json:"price_per_sqft"`
	Magnitude    float64    `json:"magnitude"` // SaleAmount / max over the sampled set, in [0,1]
}

// Prepare builds the map point set: drops missing/zero coordinates,
// keeps the rendering allow-list of fields, zero-fills missing sale
// amounts, clips price-per-sqft outliers to the column median, and
// down-samples deterministically when the cap is exceeded.
func Prepare(t *property.Table, limit int, seed int64) ([]Point, error) {
	if !t.Caps.HasCoordinates {
		return nil, core.MissingColumns(property.ColXCoord, property.ColYCoord)
	}
	if limit <= 0 {
		limit = DefaultSampleCap
	}
	if seed == 0 {
		seed = DefaultSampleSeed
	}

	var points []Point
	for _, r := range t.Records {
		if !r.HasCoordinates() {
			continue
		}
		p := Point{
			X:            r.XCoord,
			Y:            r.YCoord,
			ParcelID:     r.ParcelID,
			Municipality: r.Municipality,
			PropertyType: r.PropertyType,
			SaleDate:     r.SaleDate,
		}
		if !property.IsMissing(r.AreaSqm) {
			p.AreaSqm = r.AreaSqm
		}
		if !property.IsMissing(r.TotalValue) {
			p.TotalValue = r.TotalValue
		}
		if !property.IsMissing(r.SaleAmount) {
			p.SaleAmount = r.SaleAmount
		}
		if p.Municipality == "" {
			p.Municipality = "Unknown"
		}
		if p.PropertyType == "" {
			p.PropertyType = "Unknown"
		}
		points = append(points, p)
	}
	if len(points) == 0 {
		return nil, core.InsufficientData("points with coordinates", 0, 1)
	}

	// Price per sqft where computable; outliers are clipped to the
	// column median rather than dropped - a map marker should keep its
	// location even when its derived color value is suspect.
	if t.Caps.HasSaleAmount && t.Caps.HasArea {
		ppsf := make([]float64, len(points))
		for i, p := range points {
			if p.AreaSqm > 0 {
				ppsf[i] = p.SaleAmount / (p.AreaSqm * property.SqftPerSqm)
			}
		}
		analytics.ClipToMedian(ppsf, 1, 99)
		for i := range points {
			points[i].PricePerSqft = ppsf[i]
		}
	}

	if len(points) > limit {
		log.Printf("[MapData] Dataset contains %d points, sampling to %d for performance", len(points), limit)
		points = samplePoints(points, limit, seed)
	}

	// Normalized marker magnitude over the final set.
	maxAmount := 0.0
	for _, p := range points {
		if p.SaleAmount > maxAmount {
			maxAmount = p.SaleAmount
		}
	}
	if maxAmount > 0 {
		for i := range points {
			points[i].Magnitude = points[i].SaleAmount / maxAmount
		}
	}

	return points, nil
}

// samplePoints takes a fixed-seed random sample of exactly limit
// points, preserving the original row order of the selected points.
func samplePoints(points []Point, limit int, seed int64) []Point {
	rng := rand.New(rand.NewSource(seed))
	perm := rng.Perm(len(points))
	selected := perm[:limit]
	sort.Ints(selected)

	out := make([]Point, limit)
	for i, idx := range selected {
		out[i] = points[idx]
	}
	return out
}
