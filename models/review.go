package models

import "time"

// Review is customer feedback on a completed booking.
type Review struct {
	ID         string    `bson:"id" json:"id"`
	BookingID  string    `bson:"booking_id" json:"bookingId"`
	MachineID  string    `bson:"machine_id" json:"machineId"`
	CustomerID string    `bson:"customer_id" json:"customerId"`
	Rating     int       `bson:"rating" json:"rating"`
	Comment    string    `bson:"comment" json:"comment,omitempty"`
	CreatedAt  time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt  time.Time `bson:"updated_at" json:"updatedAt"`
}

// ReviewRequest carries the writable review fields.
type ReviewRequest struct {
	Rating  int    `json:"rating" binding:"required"`
	Comment string `json:"comment"`
}
