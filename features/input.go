// Package features turns a submitted housing record into the column-aligned
// numeric vector the regression model was trained on.
package features

// OceanProximity is the categorical location field of a housing record.
type OceanProximity string

const (
	WithinHourOfOcean OceanProximity = "<1H OCEAN"
	Inland            OceanProximity = "INLAND"
	Island            OceanProximity = "ISLAND"
	NearBay           OceanProximity = "NEAR BAY"
	NearOcean         OceanProximity = "NEAR OCEAN"
)

// OceanProximities lists the categories in the order the form offers them.
var OceanProximities = []OceanProximity{WithinHourOfOcean, Inland, Island, NearBay, NearOcean}

const (
	MinHousingMedianAge = 1
	MaxHousingMedianAge = 100
	MinMargin           = 1
	MaxMargin           = 50
)

// RawInput is one submitted form. Numeric fields are passed through as given;
// only the age, margin and category ranges are enforced at binding.
type RawInput struct {
	Longitude        float64        `form:"longitude" json:"longitude"`
	Latitude         float64        `form:"latitude" json:"latitude"`
	HousingMedianAge int            `form:"housing_median_age" json:"housing_median_age" binding:"min=1,max=100"`
	TotalRooms       float64        `form:"total_rooms" json:"total_rooms"`
	Population       float64        `form:"population" json:"population"`
	Households       float64        `form:"households" json:"households"`
	MedianIncome     float64        `form:"median_income" json:"median_income"`
	OceanProximity   OceanProximity `form:"ocean_proximity" json:"ocean_proximity" binding:"required,oneof='<1H OCEAN' INLAND ISLAND 'NEAR BAY' 'NEAR OCEAN'"`
	Margin           int            `form:"margin" json:"margin" binding:"min=1,max=50"`
}

// DefaultInput is the record the form shows before anything is submitted.
func DefaultInput() RawInput {
	return RawInput{
		Longitude:        -118.0,
		Latitude:         34.0,
		HousingMedianAge: 25,
		TotalRooms:       2000,
		Population:       1000,
		Households:       500,
		MedianIncome:     3.0,
		OceanProximity:   WithinHourOfOcean,
		Margin:           10,
	}
}
