package features

// Column names of the numeric fields, as they appear in the training schema.
const (
	ColLongitude        = "longitude"
	ColLatitude         = "latitude"
	ColHousingMedianAge = "housing_median_age"
	ColTotalRooms       = "total_rooms"
	ColPopulation       = "population"
	ColHouseholds       = "households"
	ColMedianIncome     = "median_income"

	OceanProximityPrefix = "ocean_proximity_"
)

// IndicatorColumn names the one-hot column for a category.
func IndicatorColumn(c OceanProximity) string {
	return OceanProximityPrefix + string(c)
}

// Expand produces the columns a single-row one-hot encoding yields: every
// numeric field plus one indicator for the category actually present. The
// indicators of the other categories are not produced here; Align zero-fills
// them from the schema.
func Expand(in RawInput) map[string]float64 {
	cols := map[string]float64{
		ColLongitude:        in.Longitude,
		ColLatitude:         in.Latitude,
		ColHousingMedianAge: float64(in.HousingMedianAge),
		ColTotalRooms:       in.TotalRooms,
		ColPopulation:       in.Population,
		ColHouseholds:       in.Households,
		ColMedianIncome:     in.MedianIncome,
	}
	cols[IndicatorColumn(in.OceanProximity)] = 1
	return cols
}

// Align reindexes observed against schema. The result has one entry per schema
// column in schema order; columns missing from observed are 0 and observed
// columns outside the schema are dropped. Names match exactly, so a category
// spelled differently from training silently encodes as all zeros.
func Align(observed map[string]float64, schema []string) []float64 {
	out := make([]float64, len(schema))
	for i, col := range schema {
		out[i] = observed[col]
	}
	return out
}

// Encode is Expand followed by Align.
func Encode(in RawInput, schema []string) []float64 {
	return Align(Expand(in), schema)
}
