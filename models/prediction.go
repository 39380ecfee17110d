package models

import "time"

// PredictionRecord is one served prediction, kept as history.
type PredictionRecord struct {
	ID                uint      `gorm:"column:id;primaryKey" json:"id"`
	TS                time.Time `gorm:"column:ts;index" json:"ts"`
	Longitude         float64   `gorm:"column:longitude" json:"longitude"`
	Latitude          float64   `gorm:"column:latitude" json:"latitude"`
	HousingMedianAge  int       `gorm:"column:housing_median_age" json:"housing_median_age"`
	TotalRooms        float64   `gorm:"column:total_rooms" json:"total_rooms"`
	Population        float64   `gorm:"column:population" json:"population"`
	Households        float64   `gorm:"column:households" json:"households"`
	MedianIncome      float64   `gorm:"column:median_income" json:"median_income"`
	OceanProximity    string    `gorm:"column:ocean_proximity" json:"ocean_proximity"`
	Margin            int       `gorm:"column:margin" json:"margin"`
	PointEstimate     float64   `gorm:"column:point_estimate" json:"point_estimate"`
	LowerBound        float64   `gorm:"column:lower_bound" json:"lower_bound"`
	UpperBound        float64   `gorm:"column:upper_bound" json:"upper_bound"`
	Confidence        *float64  `gorm:"column:confidence" json:"confidence"`
	SchemaFingerprint string    `gorm:"column:schema_fingerprint" json:"schema_fingerprint"`
}

func (PredictionRecord) TableName() string { return "prediction_history" }
