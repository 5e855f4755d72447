package property

// Column name tokens as they appear in the source files. Column
// presence is optional per-feature: a missing column degrades the tab
// that needs it, never the whole pipeline.
const (
	ColParcelID     = "CATASTRO"
	ColMunicipality = "MUNICIPIO"
	ColPropertyType = "TIPO"
	ColSellerName   = "SELLERNAME"
	ColBuyerName    = "BYERNAME"

	ColXCoord        = "INSIDE_X"
	ColYCoord        = "INSIDE_Y"
	ColDistanceMiles = "DISTANCE_MILES"
	ColDistanceKM    = "DISTANCE_KM"
	ColAreaSqm       = "CABIDA"

	ColTotalValue     = "TOTALVAL"
	ColLandValue      = "LAND"
	ColStructureValue = "STRUCTURE"
	ColMachineryValue = "MACHINERY"

	ColSaleAmount = "SALESAMT"
	ColSaleDate   = "SALESDTTM_FORMATTED"

	ColShapeArea   = "Shape.STArea()"
	ColShapeLength = "Shape.STLength()"
)

// NumericColumns is the fixed known-numeric set coerced at ingestion.
// Thousands separators are stripped before parsing; cells that still
// fail to parse become missing, never an error.
var NumericColumns = []string{
	ColSaleAmount, ColTotalValue, ColLandValue, ColStructureValue,
	ColMachineryValue, ColDistanceMiles, ColAreaSqm,
	ColXCoord, ColYCoord, ColDistanceKM, ColShapeArea, ColShapeLength,
}
