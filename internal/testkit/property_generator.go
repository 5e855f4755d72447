// Package testkit generates synthetic property transaction data for
// tests and local demos. The generator is deterministic under a fixed
// seed so fixtures stay stable across runs.
package testkit

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/jibarix/map-viz/adapters/tabular"
	"github.com/jibarix/map-viz/domain/property"
)

// PropertyGeneratorConfig configures the synthetic property generator
type PropertyGeneratorConfig struct {
	RecordCount     int       `json:"record_count"`
	PartyCount      int       `json:"party_count"`
	MissingRate     float64   `json:"missing_rate"`
	NominalSaleRate float64   `json:"nominal_sale_rate"`
	StartDate       time.Time `json:"start_date"`
	EndDate         time.Time `json:"end_date"`
	Seed            int64     `json:"seed"`
}

// DefaultPropertyConfig returns sensible defaults for property data generation
func DefaultPropertyConfig() PropertyGeneratorConfig {
	return PropertyGeneratorConfig{
		RecordCount:     500,
		PartyCount:      40,
		MissingRate:     0.1,
		NominalSaleRate: 0.15,
		StartDate:       time.Date(2018, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:         time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC),
		Seed:            42,
	}
}

// PropertyGenerator generates realistic property transaction records
type PropertyGenerator struct {
	config PropertyGeneratorConfig
	rng    *rand.Rand
}

// NewPropertyGenerator creates a new property data generator
func NewPropertyGenerator(config PropertyGeneratorConfig) *PropertyGenerator {
	return &PropertyGenerator{
		config: config,
		rng:    rand.New(rand.NewSource(config.Seed)),
	}
}

var municipalities = []string{
	"SAN JUAN", "BAYAMON", "CAROLINA", "PONCE", "CAGUAS",
	"GUAYNABO", "MAYAGUEZ", "ARECIBO",
}

var propertyTypes = []string{
	"RESIDENTIAL", "COMMERCIAL", "INDUSTRIAL", "AGRICULTURAL", "VACANT LAND",
}

// GenerateData builds a raw tabular dataset with the source file's
// column names, suitable for feeding through the ingestion cleaner.
func (g *PropertyGenerator) GenerateData() *tabular.Data {
	headers := []string{
		property.ColParcelID, property.ColMunicipality, property.ColPropertyType,
		property.ColSellerName, property.ColBuyerName,
		property.ColXCoord, property.ColYCoord, property.ColDistanceMiles,
		property.ColAreaSqm, property.ColTotalValue, property.ColLandValue,
		property.ColStructureValue, property.ColMachineryValue,
		property.ColSaleAmount, property.ColSaleDate,
	}

	rows := make([]tabular.Row, 0, g.config.RecordCount)
	for i := 0; i < g.config.RecordCount; i++ {
		rows = append(rows, g.generateRow())
	}
	return &tabular.Data{Headers: headers, Rows: rows}
}

// generateRow builds one raw record. A configurable fraction of cells
// are left blank to exercise missing-value handling downstream.
func (g *PropertyGenerator) generateRow() tabular.Row {
	row := tabular.Row{}
	row[property.ColParcelID] = fmt.Sprintf("%03d-%03d-%03d-%02d", g.rng.Intn(1000), g.rng.Intn(1000), g.rng.Intn(1000), g.rng.Intn(100))
	row[property.ColMunicipality] = municipalities[g.rng.Intn(len(municipalities))]
	row[property.ColPropertyType] = propertyTypes[g.rng.Intn(len(propertyTypes))]
	row[property.ColSellerName] = g.randomParty()
	row[property.ColBuyerName] = g.randomParty()

	// Coordinates roughly over Puerto Rico's projected extent.
	row[property.ColXCoord] = fmt.Sprintf("%.2f", 100000+g.rng.Float64()*190000)
	row[property.ColYCoord] = fmt.Sprintf("%.2f", 230000+g.rng.Float64()*50000)
	row[property.ColDistanceMiles] = fmt.Sprintf("%.2f", g.rng.Float64()*60)

	area := 50 + g.rng.Float64()*950
	row[property.ColAreaSqm] = fmt.Sprintf("%.1f", area)

	land := 10000 + g.rng.Float64()*90000
	structure := g.rng.Float64() * 250000
	machinery := 0.0
	if g.rng.Float64() < 0.05 {
		machinery = g.rng.Float64() * 50000
	}
	row[property.ColLandValue] = fmt.Sprintf("%.0f", land)
	row[property.ColStructureValue] = fmt.Sprintf("%.0f", structure)
	row[property.ColMachineryValue] = fmt.Sprintf("%.0f", machinery)
	row[property.ColTotalValue] = fmt.Sprintf("%.0f", land+structure+machinery)

	// A fraction of transfers are nominal (family transfers, $1 deeds)
	// and must fall below the valid-sale threshold.
	if g.rng.Float64() < g.config.NominalSaleRate {
		row[property.ColSaleAmount] = fmt.Sprintf("%d", 1+g.rng.Intn(2000))
	} else {
		row[property.ColSaleAmount] = fmt.Sprintf("%.0f", 20000+g.rng.Float64()*480000)
	}

	saleDate := g.randomTimeInRange(g.config.StartDate, g.config.EndDate)
	row[property.ColSaleDate] = saleDate.Format("2006-01-02")

	g.blankSomeCells(row)
	return row
}

// blankSomeCells clears optional cells at the configured missing rate.
// Identity and sale amount are never blanked so row counts stay
// predictable for callers.
func (g *PropertyGenerator) blankSomeCells(row tabular.Row) {
	optional := []string{
		property.ColXCoord, property.ColYCoord, property.ColDistanceMiles,
		property.ColAreaSqm, property.ColSaleDate, property.ColSellerName,
		property.ColBuyerName, property.ColMachineryValue,
	}
	for _, col := range optional {
		if g.rng.Float64() < g.config.MissingRate {
			row[col] = ""
		}
	}
}

// CSV renders the dataset as CSV text.
func CSV(data *tabular.Data) string {
	var b strings.Builder
	b.WriteString(strings.Join(data.Headers, ","))
	b.WriteByte('\n')
	for _, row := range data.Rows {
		cells := make([]string, len(data.Headers))
		for i, h := range data.Headers {
			cell := row[h]
			if strings.ContainsAny(cell, ",\"\n") {
				cell = "\"" + strings.ReplaceAll(cell, "\"", "\"\"") + "\""
			}
			cells[i] = cell
		}
		b.WriteString(strings.Join(cells, ","))
		b.WriteByte('\n')
	}
	return b.String()
}

func (g *PropertyGenerator) randomParty() string {
	// A small pool with skewed reuse so repeat sellers and buyers show
	// up in the ownership network.
	n := g.config.PartyCount
	if n <= 0 {
		n = 40
	}
	idx := g.rng.Intn(n)
	if g.rng.Float64() < 0.3 {
		idx = g.rng.Intn(n/4 + 1)
	}
	return fmt.Sprintf("PARTY %03d LLC", idx+1)
}

func (g *PropertyGenerator) randomTimeInRange(start, end time.Time) time.Time {
	duration := end.Sub(start)
	if duration <= 0 {
		return start
	}
	return start.Add(time.Duration(g.rng.Int63n(int64(duration))))
}
