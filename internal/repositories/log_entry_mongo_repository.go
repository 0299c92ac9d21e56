package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"soxutil/internal/models"
)

// LogEntryCollection is the MongoDB collection holding log entry documents.
const LogEntryCollection = "log_entries"

// MongoLogEntryRepository is a MongoDB implementation of LogEntryRepository.
type MongoLogEntryRepository struct {
	collection *mongo.Collection
}

// NewMongoLogEntryRepository creates a new instance of MongoLogEntryRepository.
// db may be nil when MongoDB was unreachable at startup; operations then
// fail at first use.
func NewMongoLogEntryRepository(db *mongo.Database) *MongoLogEntryRepository {
	repo := &MongoLogEntryRepository{}
	if db != nil {
		repo.collection = db.Collection(LogEntryCollection)
	}
	return repo
}

func (r *MongoLogEntryRepository) coll() (*mongo.Collection, error) {
	if r.collection == nil {
		return nil, fmt.Errorf("document store is not initialized")
	}
	return r.collection, nil
}

// Get fetches a single log entry by its hex ObjectID. An id that does not
// parse is treated the same as a missing document.
func (r *MongoLogEntryRepository) Get(ctx context.Context, id string) (*models.LogEntry, error) {
	coll, err := r.coll()
	if err != nil {
		return nil, err
	}
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}
	var entry models.LogEntry
	err = coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&entry)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get log entry %s: %w", id, err)
	}
	return &entry, nil
}

// GetAll returns log entries in the collection's natural cursor order,
// offset by skip and bounded to limit.
func (r *MongoLogEntryRepository) GetAll(ctx context.Context, skip, limit int) ([]models.LogEntry, error) {
	coll, err := r.coll()
	if err != nil {
		return nil, err
	}
	opts := options.Find().SetSkip(int64(skip)).SetLimit(int64(limit))
	cursor, err := coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list log entries: %w", err)
	}
	defer cursor.Close(ctx)

	entries := []models.LogEntry{}
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode log entries: %w", err)
	}
	return entries, nil
}

// Create inserts the document and re-reads it so server-assigned fields
// are populated on the returned record.
func (r *MongoLogEntryRepository) Create(ctx context.Context, input *models.LogEntryCreate) (*models.LogEntry, error) {
	coll, err := r.coll()
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	metadata := input.Metadata
	if metadata == nil {
		metadata = map[string]interface{}{}
	}
	tags := input.Tags
	if tags == nil {
		tags = []string{}
	}

	doc := bson.M{
		"level":      input.Level,
		"message":    input.Message,
		"service":    input.Service,
		"metadata":   metadata,
		"tags":       tags,
		"created_at": now,
		"updated_at": now,
	}

	result, err := coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("failed to create log entry: %w", err)
	}

	var entry models.LogEntry
	if err := coll.FindOne(ctx, bson.M{"_id": result.InsertedID}).Decode(&entry); err != nil {
		return nil, fmt.Errorf("failed to read back created log entry: %w", err)
	}
	return &entry, nil
}

// Update performs a $set with the given fields. The identity field is
// stripped from the input so a client can never rewrite it.
func (r *MongoLogEntryRepository) Update(ctx context.Context, id string, fields map[string]interface{}) (*models.LogEntry, error) {
	coll, err := r.coll()
	if err != nil {
		return nil, err
	}
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}

	set := bson.M{}
	for key, value := range fields {
		if key == "_id" || key == "id" {
			continue
		}
		set[key] = value
	}
	if len(set) == 0 {
		return nil, nil
	}

	result, err := coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": set})
	if err != nil {
		return nil, fmt.Errorf("failed to update log entry %s: %w", id, err)
	}
	if result.ModifiedCount == 0 {
		return nil, nil
	}
	return r.Get(ctx, id)
}

// Delete removes the document and reports whether one was actually removed.
func (r *MongoLogEntryRepository) Delete(ctx context.Context, id string) (bool, error) {
	coll, err := r.coll()
	if err != nil {
		return false, err
	}
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}
	result, err := coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return false, fmt.Errorf("failed to delete log entry %s: %w", id, err)
	}
	return result.DeletedCount > 0, nil
}
