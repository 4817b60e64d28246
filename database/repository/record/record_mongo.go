package recordRepo

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

// MongoRecordRepo implements RecordRepository using MongoDB.
type MongoRecordRepo struct {
	coll *mongo.Collection
}

// NewMongoRecordRepo creates a new instance of RecordRepository using MongoDB.
func NewMongoRecordRepo() RecordRepository {
	repo := &MongoRecordRepo{coll: database.Collection("maintenance_records")}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoRecordRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "machine_id", Value: 1}}},
		{Keys: bson.D{{Key: "reviewed", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Create inserts a new maintenance record.
func (r *MongoRecordRepo) Create(record *models.MaintenanceRecord) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	record.CreatedAt = now
	record.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, record); err != nil {
		return fmt.Errorf("failed to create maintenance record: %w", err)
	}
	return nil
}

// GetByID retrieves a maintenance record by its unique ID.
func (r *MongoRecordRepo) GetByID(id string) (*models.MaintenanceRecord, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var record models.MaintenanceRecord
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&record); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch maintenance record with id %s: %w", id, err)
	}
	return &record, nil
}

// GetByMachine retrieves all maintenance records for a machine.
func (r *MongoRecordRepo) GetByMachine(machineID string) ([]models.MaintenanceRecord, error) {
	return r.find(bson.M{"machine_id": machineID})
}

// GetUnreviewed retrieves records no admin has reviewed yet.
func (r *MongoRecordRepo) GetUnreviewed() ([]models.MaintenanceRecord, error) {
	return r.find(bson.M{"reviewed": false})
}

// MarkReviewed flags a record as reviewed by the given admin.
func (r *MongoRecordRepo) MarkReviewed(id, adminID string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"reviewed":    true,
		"reviewed_by": adminID,
		"updated_at":  time.Now(),
	}}
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to mark record %s reviewed: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("maintenance record with id %s not found", id)
	}
	return nil
}

// Delete removes a maintenance record by its ID.
func (r *MongoRecordRepo) Delete(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete maintenance record with id %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("maintenance record with id %s not found", id)
	}
	return nil
}

func (r *MongoRecordRepo) find(filter bson.M) ([]models.MaintenanceRecord, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve maintenance records: %w", err)
	}
	defer cursor.Close(ctx)

	var records []models.MaintenanceRecord
	for cursor.Next(ctx) {
		var rec models.MaintenanceRecord
		if err := cursor.Decode(&rec); err != nil {
			return nil, fmt.Errorf("failed to decode maintenance record: %w", err)
		}
		records = append(records, rec)
	}
	return records, nil
}
