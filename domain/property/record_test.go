package property

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMissingMarker(t *testing.T) {
	assert.True(t, IsMissing(Missing()))
	assert.False(t, IsMissing(0))
	assert.False(t, IsMissing(-1))
}

func TestAreaSqft(t *testing.T) {
	r := Record{AreaSqm: 100}
	assert.InDelta(t, 1076.4, r.AreaSqft(), 1e-9)

	r.AreaSqm = Missing()
	assert.True(t, IsMissing(r.AreaSqft()))
}

func TestHasCoordinates(t *testing.T) {
	assert.True(t, Record{XCoord: 150000, YCoord: 250000}.HasCoordinates())

	// The origin is a placeholder, not a location.
	assert.False(t, Record{XCoord: 0, YCoord: 0}.HasCoordinates())
	assert.False(t, Record{XCoord: 150000, YCoord: 0}.HasCoordinates())
	assert.False(t, Record{XCoord: Missing(), YCoord: 250000}.HasCoordinates())
}

func TestHasDistance(t *testing.T) {
	assert.True(t, Record{DistanceMiles: 3.5}.HasDistance())
	assert.False(t, Record{DistanceMiles: 0}.HasDistance())
	assert.False(t, Record{DistanceMiles: Missing()}.HasDistance())
}

func TestHasArea(t *testing.T) {
	assert.True(t, Record{AreaSqm: 50}.HasArea())
	assert.False(t, Record{AreaSqm: 0}.HasArea())
	assert.False(t, Record{AreaSqm: Missing()}.HasArea())
}

func TestHasParties(t *testing.T) {
	assert.True(t, Record{SellerName: "A", BuyerName: "B"}.HasParties())
	assert.False(t, Record{SellerName: "A"}.HasParties())
	assert.False(t, Record{}.HasParties())
}

func TestTableHelpers(t *testing.T) {
	table := &Table{Records: []Record{
		{ParcelID: "1", ValidSale: true},
		{ParcelID: "2"},
		{ParcelID: "3", ValidSale: true},
	}}

	assert.Equal(t, 3, table.Len())

	valid := table.ValidSales()
	assert.Len(t, valid, 2)
	assert.Equal(t, "1", valid[0].ParcelID)
	assert.Equal(t, "3", valid[1].ParcelID)
}
