package analytics

import (
	"github.com/jibarix/map-viz/domain/core"
	"github.com/jibarix/map-viz/domain/property"
)

// Component is one labeled row of the assessed-value breakdown chart.
type Component struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// ComponentBreakdown averages the land, structure and machinery
// assessed values across the whole table (not sale-filtered).
func ComponentBreakdown(t *property.Table) ([]Component, error) {
	if !t.Caps.HasComponents {
		return nil, core.MissingColumns(property.ColLandValue, property.ColStructureValue, property.ColMachineryValue)
	}

	var land, structure, machinery []float64
	for _, r := range t.Records {
		if !property.IsMissing(r.LandValue) {
			land = append(land, r.LandValue)
		}
		if !property.IsMissing(r.StructureValue) {
			structure = append(structure, r.StructureValue)
		}
		if !property.IsMissing(r.MachineryValue) {
			machinery = append(machinery, r.MachineryValue)
		}
	}
	if len(land)+len(structure)+len(machinery) == 0 {
		return nil, core.InsufficientData("component values", 0, 1)
	}

	return []Component{
		{Name: "Land", Value: mean(land)},
		{Name: "Structure", Value: mean(structure)},
		{Name: "Machinery", Value: mean(machinery)},
	}, nil
}
