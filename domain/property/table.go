package property

// Capabilities describes which optional column groups the cleaned
// table actually carries. It is computed once at ingestion so each
// derivation can declare its requirements and be skipped with a
// "missing data" result instead of probing columns ad hoc.
type Capabilities struct {
	HasSaleAmount   bool
	HasSaleDate     bool
	HasCoordinates  bool
	HasDistance     bool
	HasArea         bool
	HasTotalValue   bool
	HasComponents   bool // LAND, STRUCTURE and MACHINERY all present
	HasMunicipality bool
	HasPropertyType bool
	HasParties      bool // SELLERNAME and BYERNAME both present
	HasParcelID     bool

	// Non-missing row counts for the availability summary.
	CoordinateCount int
	DistanceCount   int
	AreaCount       int
}

// Table is the cleaned, request-scoped table every derivation consumes.
// It is never mutated after ingestion; derivations build their own
// working subsets.
type Table struct {
	Records []Record
	Caps    Capabilities
}

// Len returns the number of records.
func (t *Table) Len() int { return len(t.Records) }

// ValidSales returns the records flagged as valid sales.
func (t *Table) ValidSales() []Record {
	out := make([]Record, 0, len(t.Records))
	for _, r := range t.Records {
		if r.ValidSale {
			out = append(out, r)
		}
	}
	return out
}
