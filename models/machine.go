package models

import "time"

// MachineCondition describes the wear state of a listed machine.
type MachineCondition string

const (
	ConditionNew        MachineCondition = "NEW"
	ConditionExcellent  MachineCondition = "EXCELLENT"
	ConditionGood       MachineCondition = "GOOD"
	ConditionFair       MachineCondition = "FAIR"
	ConditionNeedsWork  MachineCondition = "NEEDS_WORK"
)

// MachineConditions lists every valid condition, in display order.
func MachineConditions() []MachineCondition {
	return []MachineCondition{
		ConditionNew, ConditionExcellent, ConditionGood, ConditionFair, ConditionNeedsWork,
	}
}

// MachineImage is one stored image of a machine. PublicID identifies the
// asset in Cloudinary; URL is the delivery URL.
type MachineImage struct {
	ID       string `bson:"id" json:"id"`
	PublicID string `bson:"public_id" json:"-"`
	URL      string `bson:"url" json:"url"`
	Primary  bool   `bson:"primary" json:"primary"`
}

// Machine is a piece of equipment listed for rent.
type Machine struct {
	ID          string           `bson:"id" json:"id"`
	OwnerID     string           `bson:"owner_id" json:"ownerId"`
	CategoryID  string           `bson:"category_id" json:"categoryId"`
	Name        string           `bson:"name" json:"name"`
	Description string           `bson:"description" json:"description,omitempty"`
	BasePrice   float64          `bson:"base_price" json:"basePrice"`
	Condition   MachineCondition `bson:"condition" json:"condition"`
	Available   bool             `bson:"available" json:"available"`
	Images      []MachineImage   `bson:"images" json:"images"`
	CreatedAt   time.Time        `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time        `bson:"updated_at" json:"updatedAt"`
}

// PrimaryImage returns the machine's primary image, or nil if it has none.
func (m *Machine) PrimaryImage() *MachineImage {
	for i := range m.Images {
		if m.Images[i].Primary {
			return &m.Images[i]
		}
	}
	if len(m.Images) > 0 {
		return &m.Images[0]
	}
	return nil
}

// MachineRequest carries the writable listing fields. BasePrice is a decimal
// string at the API boundary and parsed explicitly before storage.
type MachineRequest struct {
	CategoryID  string           `json:"categoryId" binding:"required"`
	Name        string           `json:"name" binding:"required"`
	Description string           `json:"description"`
	BasePrice   string           `json:"basePrice" binding:"required"`
	Condition   MachineCondition `json:"condition" binding:"required"`
}

// MachineSearchRequest carries machine search filters. Zero values mean
// "no constraint".
type MachineSearchRequest struct {
	Query      string           `json:"query"`
	CategoryID string           `json:"categoryId"`
	Condition  MachineCondition `json:"condition"`
	Available  *bool            `json:"available"`
	MinPrice   float64          `json:"minPrice"`
	MaxPrice   float64          `json:"maxPrice"`
}

// AvailabilityRequest toggles whether a machine can be booked.
type AvailabilityRequest struct {
	MachineID string `json:"machineId" binding:"required"`
	Available bool   `json:"available"`
}
