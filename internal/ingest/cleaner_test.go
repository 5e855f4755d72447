package ingest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jibarix/map-viz/adapters/tabular"
	"github.com/jibarix/map-viz/domain/property"
)

func tableFromCSV(t *testing.T, csv string, threshold float64) *property.Table {
	t.Helper()
	data, err := tabular.ReadCSV(strings.NewReader(csv))
	require.NoError(t, err)
	return Clean(data, threshold)
}

func TestCleanValidSaleFlag(t *testing.T) {
	csv := "CATASTRO,SALESAMT\n" +
		"A,3000\n" +
		"B,8000\n" +
		"C,15000\n"
	table := tableFromCSV(t, csv, 5000)

	require.Equal(t, 3, table.Len())
	assert.False(t, table.Records[0].ValidSale)
	assert.True(t, table.Records[1].ValidSale)
	assert.True(t, table.Records[2].ValidSale)
	assert.Len(t, table.ValidSales(), 2)
}

func TestCleanThresholdIsExclusive(t *testing.T) {
	csv := "CATASTRO,SALESAMT\nA,5000\nB,5001\n"
	table := tableFromCSV(t, csv, 5000)

	assert.False(t, table.Records[0].ValidSale, "sale exactly at the threshold is not valid")
	assert.True(t, table.Records[1].ValidSale)
}

func TestCleanMissingAmountNeverValid(t *testing.T) {
	csv := "CATASTRO,SALESAMT\nA,\nB,not-a-number\n"
	table := tableFromCSV(t, csv, 5000)

	for _, r := range table.Records {
		assert.True(t, property.IsMissing(r.SaleAmount))
		assert.False(t, r.ValidSale)
	}
}

func TestCleanNumericCoercion(t *testing.T) {
	csv := "CATASTRO,SALESAMT,CABIDA\n" +
		"A,\"1,250,000\",350.5\n"
	table := tableFromCSV(t, csv, 5000)

	r := table.Records[0]
	assert.Equal(t, 1250000.0, r.SaleAmount)
	assert.Equal(t, 350.5, r.AreaSqm)
	assert.True(t, r.ValidSale)
}

func TestCleanDateParsing(t *testing.T) {
	tests := []struct {
		name      string
		cell      string
		wantYear  int
		wantMonth int
	}{
		{"iso date", "2021-03-15", 2021, 3},
		{"iso datetime", "2021-03-15 10:30:00", 2021, 3},
		{"us slash", "03/15/2021", 2021, 3},
		{"garbage", "next tuesday", 0, 0},
		{"blank", "", 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			csv := "CATASTRO,SALESDTTM_FORMATTED\nA," + tt.cell + "\n"
			table := tableFromCSV(t, csv, 0)

			r := table.Records[0]
			assert.Equal(t, tt.wantYear, r.SaleYear)
			assert.Equal(t, tt.wantMonth, r.SaleMonth)
			if tt.wantYear == 0 {
				assert.Nil(t, r.SaleDate)
			} else {
				assert.NotNil(t, r.SaleDate)
			}
		})
	}
}

func TestCleanCapabilities(t *testing.T) {
	csv := "CATASTRO,SALESAMT,INSIDE_X,INSIDE_Y,CABIDA\n" +
		"A,10000,120000,250000,300\n" +
		"B,20000,0,0,\n" +
		"C,30000,,,400\n"
	table := tableFromCSV(t, csv, 5000)

	caps := table.Caps
	assert.True(t, caps.HasSaleAmount)
	assert.True(t, caps.HasCoordinates)
	assert.True(t, caps.HasArea)
	assert.False(t, caps.HasSaleDate)
	assert.False(t, caps.HasDistance)
	assert.False(t, caps.HasParties)

	// (0,0) counts as no coordinates; blank cells count as missing.
	assert.Equal(t, 1, caps.CoordinateCount)
	assert.Equal(t, 2, caps.AreaCount)
}

func TestCleanZeroThresholdUsesDefault(t *testing.T) {
	csv := "CATASTRO,SALESAMT\nA,4999\nB,5001\n"
	table := tableFromCSV(t, csv, 0)

	assert.False(t, table.Records[0].ValidSale)
	assert.True(t, table.Records[1].ValidSale)
}
