package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"gearbook/database"
	"gearbook/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoBookingRepo implements BookingRepository using MongoDB.
type MongoBookingRepo struct {
	coll *mongo.Collection
}

// NewMongoBookingRepo creates a new instance of BookingRepository using MongoDB.
func NewMongoBookingRepo() BookingRepository {
	repo := &MongoBookingRepo{coll: database.Collection("bookings")}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoBookingRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "code", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "customer_id", Value: 1}}},
		{Keys: bson.D{{Key: "owner_id", Value: 1}}},
		{Keys: bson.D{{Key: "machine_id", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Create inserts a new booking document.
func (r *MongoBookingRepo) Create(booking *models.Booking) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	booking.CreatedAt = now
	booking.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, booking); err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}
	return nil
}

// Update modifies an existing booking document.
func (r *MongoBookingRepo) Update(booking *models.Booking) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	booking.UpdatedAt = time.Now()
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": booking.ID}, bson.M{"$set": booking})
	if err != nil {
		return fmt.Errorf("failed to update booking with id %s: %w", booking.ID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("booking with id %s not found", booking.ID)
	}
	return nil
}

// Delete removes a booking document by its ID.
func (r *MongoBookingRepo) Delete(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete booking with id %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("booking with id %s not found", id)
	}
	return nil
}

// GetByID retrieves a booking by its unique ID.
func (r *MongoBookingRepo) GetByID(id string) (*models.Booking, error) {
	return r.findOne(bson.M{"id": id})
}

// GetByCode retrieves a booking by its confirmation code.
func (r *MongoBookingRepo) GetByCode(code string) (*models.Booking, error) {
	return r.findOne(bson.M{"code": code})
}

// GetAll retrieves all bookings.
func (r *MongoBookingRepo) GetAll() ([]models.Booking, error) {
	return r.find(bson.M{})
}

// GetByCustomer retrieves all bookings made by a customer.
func (r *MongoBookingRepo) GetByCustomer(customerID string) ([]models.Booking, error) {
	return r.find(bson.M{"customer_id": customerID})
}

// GetByOwner retrieves all bookings against an owner's machines.
func (r *MongoBookingRepo) GetByOwner(ownerID string) ([]models.Booking, error) {
	return r.find(bson.M{"owner_id": ownerID})
}

// GetByMachine retrieves all bookings for a machine.
func (r *MongoBookingRepo) GetByMachine(machineID string) ([]models.Booking, error) {
	return r.find(bson.M{"machine_id": machineID})
}

// UpdateStatus sets a booking's status.
func (r *MongoBookingRepo) UpdateStatus(id string, status models.BookingStatus) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{"status": status, "updated_at": time.Now()}}
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to update status for booking %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("booking with id %s not found", id)
	}
	return nil
}

// GetStalePending retrieves pending bookings created before the cutoff.
func (r *MongoBookingRepo) GetStalePending(cutoff time.Time) ([]models.Booking, error) {
	return r.find(bson.M{
		"status":     models.BookingPending,
		"created_at": bson.M{"$lt": cutoff},
	})
}

// GetActivePastEnd retrieves active bookings whose end date has passed.
func (r *MongoBookingRepo) GetActivePastEnd(now time.Time) ([]models.Booking, error) {
	return r.find(bson.M{
		"status":   models.BookingActive,
		"end_date": bson.M{"$lt": now},
	})
}

// GetOverlapping retrieves confirmed or active bookings for a machine whose
// date range intersects [start, end].
func (r *MongoBookingRepo) GetOverlapping(machineID string, start, end time.Time) ([]models.Booking, error) {
	return r.find(bson.M{
		"machine_id": machineID,
		"status":     bson.M{"$in": []models.BookingStatus{models.BookingConfirmed, models.BookingActive}},
		"start_date": bson.M{"$lte": end},
		"end_date":   bson.M{"$gte": start},
	})
}

func (r *MongoBookingRepo) findOne(filter bson.M) (*models.Booking, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var booking models.Booking
	if err := r.coll.FindOne(ctx, filter).Decode(&booking); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch booking: %w", err)
	}
	return &booking, nil
}

func (r *MongoBookingRepo) find(filter bson.M) ([]models.Booking, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	for cursor.Next(ctx) {
		var b models.Booking
		if err := cursor.Decode(&b); err != nil {
			return nil, fmt.Errorf("failed to decode booking: %w", err)
		}
		bookings = append(bookings, b)
	}
	return bookings, nil
}
