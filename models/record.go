package models

import "time"

// MaintenanceRecord documents service work an owner performed on a machine.
// Admins review records as part of keeping listings trustworthy.
type MaintenanceRecord struct {
	ID          string    `bson:"id" json:"id"`
	MachineID   string    `bson:"machine_id" json:"machineId"`
	OwnerID     string    `bson:"owner_id" json:"ownerId"`
	Description string    `bson:"description" json:"description"`
	ServicedAt  time.Time `bson:"serviced_at" json:"servicedAt"`
	Cost        float64   `bson:"cost" json:"cost"`
	Reviewed    bool      `bson:"reviewed" json:"reviewed"`
	ReviewedBy  string    `bson:"reviewed_by,omitempty" json:"reviewedBy,omitempty"`
	CreatedAt   time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updatedAt"`
}

// MaintenanceRecordRequest carries the writable record fields.
type MaintenanceRecordRequest struct {
	Description string  `json:"description" binding:"required"`
	ServicedAt  string  `json:"servicedAt" binding:"required"`
	Cost        float64 `json:"cost"`
}
