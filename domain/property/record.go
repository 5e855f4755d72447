// Package property defines the cleaned in-memory table of real-estate
// transaction records and the column vocabulary of the source files.
package property

import (
	"math"
	"time"
)

// SqftPerSqm converts land area from square meters to square feet.
const SqftPerSqm = 10.764

// Missing returns the canonical missing numeric value. Numeric fields
// that could not be parsed (or were absent) carry NaN, mirroring how
// the cleaning stage coerces cell-by-cell without ever raising.
func Missing() float64 { return math.NaN() }

// IsMissing reports whether v is the missing-value marker.
func IsMissing(v float64) bool { return math.IsNaN(v) }

// Record is one cleaned real-estate transaction/appraisal record.
// String fields are "" when blank; numeric fields are NaN when missing;
// SaleDate is nil when absent or unparseable.
type Record struct {
	ParcelID     string
	Municipality string
	PropertyType string
	SellerName   string
	BuyerName    string

	XCoord        float64 // projected planar coordinate, not lon/lat
	YCoord        float64
	DistanceMiles float64
	AreaSqm       float64

	TotalValue     float64
	LandValue      float64
	StructureValue float64
	MachineryValue float64

	SaleAmount float64
	SaleDate   *time.Time
	SaleYear   int // 0 when SaleDate is nil
	SaleMonth  int

	// ValidSale flags non-symbolic transactions: SaleAmount above the
	// clean-stage threshold (default $5000). Always false when the
	// sale amount column is absent.
	ValidSale bool
}

// AreaSqft returns the land area converted to square feet. NaN
// propagates when the area is missing.
func (r Record) AreaSqft() float64 {
	return r.AreaSqm * SqftPerSqm
}

// HasCoordinates reports whether the record carries a usable location.
// Exactly (0,0) is treated as invalid, not as a real zero location.
func (r Record) HasCoordinates() bool {
	return !IsMissing(r.XCoord) && !IsMissing(r.YCoord) && r.XCoord != 0 && r.YCoord != 0
}

// HasDistance reports whether the record carries a positive, non-missing
// distance to the reference point.
func (r Record) HasDistance() bool {
	return !IsMissing(r.DistanceMiles) && r.DistanceMiles > 0
}

// HasArea reports whether the record carries a positive land area.
// Price-per-unit-area is defined only for these records.
func (r Record) HasArea() bool {
	return !IsMissing(r.AreaSqm) && r.AreaSqm > 0
}

// HasParties reports whether both seller and buyer names are non-blank.
func (r Record) HasParties() bool {
	return r.SellerName != "" && r.BuyerName != ""
}
