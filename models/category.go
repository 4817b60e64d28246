package models

import "time"

// CalculationType is the pricing mode bookings in a category use.
type CalculationType string

const (
	CalculationHourly        CalculationType = "HOURLY"
	CalculationDaily         CalculationType = "DAILY"
	CalculationDistanceBased CalculationType = "DISTANCE_BASED"
)

// Valid reports whether t is a known calculation type.
func (t CalculationType) Valid() bool {
	switch t {
	case CalculationHourly, CalculationDaily, CalculationDistanceBased:
		return true
	}
	return false
}

// CalculationTypes lists every valid pricing mode.
func CalculationTypes() []CalculationType {
	return []CalculationType{CalculationHourly, CalculationDaily, CalculationDistanceBased}
}

// Category groups machines and fixes the pricing mode their bookings use.
type Category struct {
	ID              string          `bson:"id" json:"id"`
	Name            string          `bson:"name" json:"name"`
	Description     string          `bson:"description" json:"description,omitempty"`
	CalculationType CalculationType `bson:"calculation_type" json:"calculationType"`
	CreatedAt       time.Time       `bson:"created_at" json:"createdAt"`
	UpdatedAt       time.Time       `bson:"updated_at" json:"updatedAt"`
}

// CategoryRequest carries the writable category fields.
type CategoryRequest struct {
	Name            string          `json:"name" binding:"required"`
	Description     string          `json:"description"`
	CalculationType CalculationType `json:"calculationType" binding:"required"`
}
