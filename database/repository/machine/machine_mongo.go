package machineRepo

import (
	"context"
	"fmt"
	"time"

	"gearbook/database"
	"gearbook/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoMachineRepo implements MachineRepository using MongoDB.
type MongoMachineRepo struct {
	coll *mongo.Collection
}

// NewMongoMachineRepo creates a new instance of MachineRepository using MongoDB.
func NewMongoMachineRepo() MachineRepository {
	repo := &MongoMachineRepo{coll: database.Collection("machines")}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoMachineRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "owner_id", Value: 1}}},
		{Keys: bson.D{{Key: "category_id", Value: 1}}},
		{Keys: bson.D{{Key: "name", Value: "text"}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Create inserts a new machine document.
func (r *MongoMachineRepo) Create(machine *models.Machine) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	machine.CreatedAt = now
	machine.UpdatedAt = now
	if machine.Images == nil {
		machine.Images = []models.MachineImage{}
	}

	if _, err := r.coll.InsertOne(ctx, machine); err != nil {
		return fmt.Errorf("failed to create machine: %w", err)
	}
	return nil
}

// Update modifies an existing machine document.
func (r *MongoMachineRepo) Update(machine *models.Machine) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	machine.UpdatedAt = time.Now()
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": machine.ID}, bson.M{"$set": machine})
	if err != nil {
		return fmt.Errorf("failed to update machine with id %s: %w", machine.ID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("machine with id %s not found", machine.ID)
	}
	return nil
}

// Delete removes a machine document by its ID.
func (r *MongoMachineRepo) Delete(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete machine with id %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("machine with id %s not found", id)
	}
	return nil
}

// GetByID retrieves a machine by its unique ID.
func (r *MongoMachineRepo) GetByID(id string) (*models.Machine, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var machine models.Machine
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&machine); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch machine with id %s: %w", id, err)
	}
	return &machine, nil
}

// GetAll retrieves all machine listings.
func (r *MongoMachineRepo) GetAll() ([]models.Machine, error) {
	return r.find(bson.M{})
}

// GetByOwner retrieves all machines listed by an owner.
func (r *MongoMachineRepo) GetByOwner(ownerID string) ([]models.Machine, error) {
	return r.find(bson.M{"owner_id": ownerID})
}

// Search retrieves machines matching the given filters.
func (r *MongoMachineRepo) Search(req models.MachineSearchRequest) ([]models.Machine, error) {
	filter := bson.M{}
	if req.Query != "" {
		filter["name"] = bson.M{"$regex": primitive.Regex{Pattern: req.Query, Options: "i"}}
	}
	if req.CategoryID != "" {
		filter["category_id"] = req.CategoryID
	}
	if req.Condition != "" {
		filter["condition"] = req.Condition
	}
	if req.Available != nil {
		filter["available"] = *req.Available
	}
	price := bson.M{}
	if req.MinPrice > 0 {
		price["$gte"] = req.MinPrice
	}
	if req.MaxPrice > 0 {
		price["$lte"] = req.MaxPrice
	}
	if len(price) > 0 {
		filter["base_price"] = price
	}
	return r.find(filter)
}

// SetAvailability toggles whether a machine can be booked.
func (r *MongoMachineRepo) SetAvailability(id string, available bool) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{"available": available, "updated_at": time.Now()}}
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to update availability for machine %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("machine with id %s not found", id)
	}
	return nil
}

// AddImage appends an image subdocument to a machine.
func (r *MongoMachineRepo) AddImage(machineID string, img models.MachineImage) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	update := bson.M{
		"$push": bson.M{"images": img},
		"$set":  bson.M{"updated_at": time.Now()},
	}
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": machineID}, update)
	if err != nil {
		return fmt.Errorf("failed to add image to machine %s: %w", machineID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("machine with id %s not found", machineID)
	}
	return nil
}

// RemoveImage pulls an image subdocument from a machine by image ID.
func (r *MongoMachineRepo) RemoveImage(machineID, imageID string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	update := bson.M{
		"$pull": bson.M{"images": bson.M{"id": imageID}},
		"$set":  bson.M{"updated_at": time.Now()},
	}
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": machineID}, update)
	if err != nil {
		return fmt.Errorf("failed to remove image %s from machine %s: %w", imageID, machineID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("machine with id %s not found", machineID)
	}
	return nil
}

// SetPrimaryImage marks one image primary and clears the flag on the rest.
func (r *MongoMachineRepo) SetPrimaryImage(machineID, imageID string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	// Clear all primary flags first, then set the requested one.
	clear := bson.M{"$set": bson.M{"images.$[].primary": false}}
	if _, err := r.coll.UpdateOne(ctx, bson.M{"id": machineID}, clear); err != nil {
		return fmt.Errorf("failed to clear primary flags on machine %s: %w", machineID, err)
	}

	set := bson.M{"$set": bson.M{"images.$[img].primary": true, "updated_at": time.Now()}}
	opts := options.Update().SetArrayFilters(options.ArrayFilters{
		Filters: []interface{}{bson.M{"img.id": imageID}},
	})
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": machineID}, set, opts)
	if err != nil {
		return fmt.Errorf("failed to set primary image %s on machine %s: %w", imageID, machineID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("machine with id %s not found", machineID)
	}
	return nil
}

func (r *MongoMachineRepo) find(filter bson.M) ([]models.Machine, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve machines: %w", err)
	}
	defer cursor.Close(ctx)

	var machines []models.Machine
	for cursor.Next(ctx) {
		var m models.Machine
		if err := cursor.Decode(&m); err != nil {
			return nil, fmt.Errorf("failed to decode machine: %w", err)
		}
		machines = append(machines, m)
	}
	return machines, nil
}
