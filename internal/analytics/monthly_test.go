package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jibarix/map-viz/domain/core"
	"github.com/jibarix/map-viz/domain/property"
)

func monthlyRecord(y, m int, amount, area float64) property.Record {
	return property.Record{
		SaleAmount: amount,
		AreaSqm:    area,
		SaleDate:   date(y, m, 15),
		SaleYear:   y,
		SaleMonth:  m,
		ValidSale:  true,
	}
}

func monthlyCaps() property.Capabilities {
	return property.Capabilities{HasSaleAmount: true, HasSaleDate: true, HasArea: true}
}

func TestMonthlyPricePerSqft(t *testing.T) {
	table := &property.Table{
		Records: []property.Record{
			monthlyRecord(2021, 1, 107640, 100),
			monthlyRecord(2021, 1, 107640, 100),
			monthlyRecord(2021, 3, 107640, 100),
			monthlyRecord(2021, 3, 107640, 100),
		},
		Caps: monthlyCaps(),
	}

	months, err := MonthlyPricePerSqft(table)
	require.NoError(t, err)
	require.Len(t, months, 2)

	assert.Equal(t, "2021-01", months[0].YearMonth)
	assert.Equal(t, "2021-03", months[1].YearMonth)
	assert.Equal(t, 2, months[0].SaleCount)
	assert.InDelta(t, 100.0, months[0].AvgPricePerSqft, 1e-9)
}

func TestMonthlyDropsSingletonMonths(t *testing.T) {
	table := &property.Table{
		Records: []property.Record{
			monthlyRecord(2021, 1, 107640, 100),
			monthlyRecord(2021, 1, 107640, 100),
			monthlyRecord(2021, 2, 107640, 100),
			monthlyRecord(2021, 3, 107640, 100),
			monthlyRecord(2021, 3, 107640, 100),
		},
		Caps: monthlyCaps(),
	}

	months, err := MonthlyPricePerSqft(table)
	require.NoError(t, err)

	// February has a single qualifying sale and is excluded.
	require.Len(t, months, 2)
	assert.Equal(t, "2021-01", months[0].YearMonth)
	assert.Equal(t, "2021-03", months[1].YearMonth)
}

func TestMonthlyNeedsThreeRows(t *testing.T) {
	table := &property.Table{
		Records: []property.Record{
			monthlyRecord(2021, 1, 107640, 100),
			monthlyRecord(2021, 2, 107640, 100),
		},
		Caps: monthlyCaps(),
	}
	_, err := MonthlyPricePerSqft(table)
	require.Error(t, err)
	assert.True(t, core.IsNoData(err))
}

func TestMonthlyNeedsTwoQualifyingMonths(t *testing.T) {
	table := &property.Table{
		Records: []property.Record{
			monthlyRecord(2021, 1, 107640, 100),
			monthlyRecord(2021, 1, 107640, 100),
			monthlyRecord(2021, 1, 107640, 100),
		},
		Caps: monthlyCaps(),
	}
	_, err := MonthlyPricePerSqft(table)
	require.Error(t, err)
	assert.True(t, core.IsNoData(err))
}

func TestMonthlyMissingColumns(t *testing.T) {
	table := &property.Table{Caps: property.Capabilities{HasSaleAmount: true}}
	_, err := MonthlyPricePerSqft(table)
	require.Error(t, err)
	assert.True(t, core.IsNoData(err))
}
