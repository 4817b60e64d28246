package models

import "time"

// BookingStatus tracks a booking through its lifecycle.
type BookingStatus string

const (
	BookingPending   BookingStatus = "PENDING"
	BookingConfirmed BookingStatus = "CONFIRMED"
	BookingRejected  BookingStatus = "REJECTED"
	BookingActive    BookingStatus = "ACTIVE"
	BookingCompleted BookingStatus = "COMPLETED"
	BookingCancelled BookingStatus = "CANCELLED"
	BookingOverdue   BookingStatus = "OVERDUE"
)

// BookingStatuses lists every status, in lifecycle order.
func BookingStatuses() []BookingStatus {
	return []BookingStatus{
		BookingPending, BookingConfirmed, BookingRejected,
		BookingActive, BookingCompleted, BookingCancelled, BookingOverdue,
	}
}

// Booking is a confirmed or in-flight rental of a machine.
//
// Invariant: exactly one of Hours/Distance is set, matching the calculation
// type (DAILY sets neither). TotalAmount is always derived by the pricing
// calculator, never taken from the client.
type Booking struct {
	ID              string          `bson:"id" json:"id"`
	Code            string          `bson:"code" json:"code"`
	MachineID       string          `bson:"machine_id" json:"machineId"`
	CustomerID      string          `bson:"customer_id" json:"customerId"`
	OwnerID         string          `bson:"owner_id" json:"ownerId"`
	PickUpLocation  string          `bson:"pick_up_location" json:"pickUpLocation"`
	StartDate       time.Time       `bson:"start_date" json:"startDate"`
	EndDate         time.Time       `bson:"end_date" json:"endDate"`
	CalculationType CalculationType `bson:"calculation_type" json:"calculationType"`
	Hours           float64         `bson:"hours,omitempty" json:"hours,omitempty"`
	Distance        float64         `bson:"distance,omitempty" json:"distance,omitempty"`
	TotalAmount     float64         `bson:"total_amount" json:"totalAmount"`
	Status          BookingStatus   `bson:"status" json:"status"`
	CreatedAt       time.Time       `bson:"created_at" json:"createdAt"`
	UpdatedAt       time.Time       `bson:"updated_at" json:"updatedAt"`
}

// BookingRequest is a booking draft as submitted by a customer. Dates are
// ISO date strings; the quantity fields are interpreted per the machine
// category's calculation type.
type BookingRequest struct {
	MachineID      string  `json:"machineId" binding:"required"`
	PickUpLocation string  `json:"pickUpLocation" binding:"required"`
	StartDate      string  `json:"startDate" binding:"required"`
	EndDate        string  `json:"endDate" binding:"required"`
	Hours          float64 `json:"hours"`
	Distance       float64 `json:"distance"`
}

// BookingStatusUpdateRequest moves a booking to a new status.
type BookingStatusUpdateRequest struct {
	Status BookingStatus `json:"status" binding:"required"`
}
