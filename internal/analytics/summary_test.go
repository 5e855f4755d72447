package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jibarix/map-viz/domain/property"
)

func date(y, m, d int) *time.Time {
	ts := time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
	return &ts
}

func TestSummarizeEmptyTable(t *testing.T) {
	s := Summarize(&property.Table{})

	assert.Equal(t, 0, s.TotalProperties)
	assert.Equal(t, 0, s.ValidSales)
	assert.Equal(t, "No date data available", s.DateRange)
	assert.Equal(t, "Unknown", s.MainMunicipality)
}

func TestSummarizePrices(t *testing.T) {
	table := &property.Table{
		Records: []property.Record{
			{SaleAmount: 10000, ValidSale: true},
			{SaleAmount: 30000, ValidSale: true},
			{SaleAmount: 2000},
			{SaleAmount: property.Missing()},
		},
		Caps: property.Capabilities{HasSaleAmount: true},
	}
	s := Summarize(table)

	assert.Equal(t, 4, s.TotalProperties)
	assert.Equal(t, 3, s.PropertiesWithSales)
	assert.Equal(t, 2, s.ValidSales)
	assert.InDelta(t, 20000, s.AvgPrice, 1e-9)
	assert.InDelta(t, 20000, s.MedianPrice, 1e-9)
	assert.InDelta(t, 10000, s.MinPrice, 1e-9)
	assert.InDelta(t, 30000, s.MaxPrice, 1e-9)
}

func TestSummarizeDateRange(t *testing.T) {
	table := &property.Table{
		Records: []property.Record{
			{SaleDate: date(2020, 6, 1)},
			{SaleDate: date(2018, 1, 15)},
			{},
			{SaleDate: date(2022, 12, 31)},
		},
		Caps: property.Capabilities{HasSaleDate: true},
	}
	s := Summarize(table)
	assert.Equal(t, "2018-01-15 to 2022-12-31", s.DateRange)
}

func TestSummarizeMainMunicipality(t *testing.T) {
	table := &property.Table{
		Records: []property.Record{
			{Municipality: "PONCE"},
			{Municipality: "SAN JUAN"},
			{Municipality: "SAN JUAN"},
			{Municipality: ""},
		},
		Caps: property.Capabilities{HasMunicipality: true},
	}
	s := Summarize(table)
	assert.Equal(t, "SAN JUAN", s.MainMunicipality)
	assert.Equal(t, 2, s.MainMunicipalityCount)
}

func TestSummarizeMunicipalityTieBreaksLexicographically(t *testing.T) {
	table := &property.Table{
		Records: []property.Record{
			{Municipality: "PONCE"},
			{Municipality: "CAGUAS"},
		},
		Caps: property.Capabilities{HasMunicipality: true},
	}
	s := Summarize(table)
	assert.Equal(t, "CAGUAS", s.MainMunicipality)
}

func TestSummarizePricePerSqft(t *testing.T) {
	table := &property.Table{
		Records: []property.Record{
			{SaleAmount: 107640, AreaSqm: 100, ValidSale: true},
			{SaleAmount: 50000, AreaSqm: 0, ValidSale: true},
		},
		Caps: property.Capabilities{HasSaleAmount: true, HasArea: true},
	}
	s := Summarize(table)

	require.Equal(t, 1, s.PropertiesWithPricePerSqft)
	assert.InDelta(t, 100.0, s.AvgPricePerSqft, 1e-9)
}
