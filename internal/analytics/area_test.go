package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jibarix/map-viz/domain/core"
	"github.com/jibarix/map-viz/domain/property"
)

func areaTable(amounts, areas []float64) *property.Table {
	recs := make([]property.Record, len(amounts))
	for i := range amounts {
		recs[i] = property.Record{
			SaleAmount: amounts[i],
			AreaSqm:    areas[i],
			ValidSale:  amounts[i] > 5000,
		}
	}
	return &property.Table{
		Records: recs,
		Caps:    property.Capabilities{HasSaleAmount: true, HasArea: true},
	}
}

func TestPrepareAreaDerivesPricePerSqft(t *testing.T) {
	table := areaTable([]float64{107640}, []float64{100})
	rows, err := PrepareArea(table, 0, OutlierNone)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	assert.InDelta(t, 1076.4, rows[0].AreaSqft, 1e-9)
	assert.InDelta(t, 100.0, rows[0].PricePerSqft, 1e-9)
}

func TestPrepareAreaRowFilters(t *testing.T) {
	table := areaTable(
		[]float64{3000, 50000, 60000, 3000000},
		[]float64{100, 0, 200, 300},
	)
	rows, err := PrepareArea(table, 2000000, OutlierNone)
	require.NoError(t, err)

	// Non-valid sale, zero area, and above-cap rows are all dropped.
	require.Len(t, rows, 1)
	assert.Equal(t, 60000.0, rows[0].Record.SaleAmount)
}

func TestPrepareAreaTrimsOutliers(t *testing.T) {
	amounts := make([]float64, 21)
	areas := make([]float64, 21)
	for i := 0; i < 20; i++ {
		amounts[i] = 100000
		areas[i] = 100
	}
	// One extreme price-per-sqft row, far outside the 95th percentile.
	amounts[20] = 1900000
	areas[20] = 1

	rows, err := PrepareArea(areaTable(amounts, areas), 0, OutlierTrimPercentile)
	require.NoError(t, err)

	assert.Len(t, rows, 20)
	for _, row := range rows {
		assert.InDelta(t, 100000.0, row.Record.SaleAmount, 1e-9)
	}
}

func TestPrepareAreaMissingColumns(t *testing.T) {
	table := &property.Table{Caps: property.Capabilities{HasSaleAmount: true}}
	_, err := PrepareArea(table, 0, OutlierNone)
	require.Error(t, err)
	assert.True(t, core.IsNoData(err))
}

func TestAreaBinStatsVolumeRule(t *testing.T) {
	amounts := make([]float64, 8)
	areas := make([]float64, 8)
	for i := range amounts {
		amounts[i] = 50000 + float64(i)*1000
		areas[i] = 100 + float64(i)*50
	}
	rows, err := PrepareArea(areaTable(amounts, areas), 0, OutlierNone)
	require.NoError(t, err)
	require.Len(t, rows, 8)

	bins, err := AreaBinStats(rows, 5)
	require.NoError(t, err)

	// 8 rows is below the 10-row floor, so the request shrinks to 2.
	require.Len(t, bins, 2)
	assert.Equal(t, 4, bins[0].PropertyCount)
	assert.Equal(t, 4, bins[1].PropertyCount)
}

func TestSummarizeArea(t *testing.T) {
	table := areaTable([]float64{107640, 215280}, []float64{100, 100})
	rows, err := PrepareArea(table, 0, OutlierNone)
	require.NoError(t, err)

	s, err := SummarizeArea(rows)
	require.NoError(t, err)

	assert.InDelta(t, 100.0, s.AvgAreaSqm, 1e-9)
	assert.InDelta(t, 1076.4, s.AvgAreaSqft, 1e-9)
	assert.InDelta(t, 150.0, s.AvgPricePerSqft, 1e-9)
	assert.InDelta(t, 100.0, s.MinPricePerSqft, 1e-9)
	assert.InDelta(t, 200.0, s.MaxPricePerSqft, 1e-9)
}
