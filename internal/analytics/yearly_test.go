package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jibarix/map-viz/domain/core"
	"github.com/jibarix/map-viz/domain/property"
)

func TestYearlyStats(t *testing.T) {
	table := &property.Table{
		Records: []property.Record{
			{SaleAmount: 10000, SaleYear: 2021, ValidSale: true},
			{SaleAmount: 30000, SaleYear: 2021, ValidSale: true},
			{SaleAmount: 50000, SaleYear: 2019, ValidSale: true},
			{SaleAmount: 2000, SaleYear: 2020},
			{SaleAmount: 40000, ValidSale: true}, // no parsed date
		},
		Caps: property.Capabilities{HasSaleAmount: true, HasSaleDate: true},
	}

	years, err := YearlyStats(table)
	require.NoError(t, err)
	require.Len(t, years, 2)

	assert.Equal(t, 2019, years[0].Year)
	assert.Equal(t, 1, years[0].SalesCount)
	assert.Equal(t, 2021, years[1].Year)
	assert.Equal(t, 2, years[1].SalesCount)
	assert.InDelta(t, 20000, years[1].AvgPrice, 1e-9)
	assert.InDelta(t, 10000, years[1].MinPrice, 1e-9)
	assert.InDelta(t, 30000, years[1].MaxPrice, 1e-9)
}

func TestYearlyStatsMissingColumns(t *testing.T) {
	table := &property.Table{Caps: property.Capabilities{HasSaleAmount: true}}
	_, err := YearlyStats(table)
	require.Error(t, err)
	assert.True(t, core.IsNoData(err))
}
