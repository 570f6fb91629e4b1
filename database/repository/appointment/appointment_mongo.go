// File: database/repository/appointment/appointment_mongo.go
package appointmentRepo

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/itelsaia/agente-itelsa-ia/database"
	"github.com/itelsaia/agente-itelsa-ia/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoAppointmentRepo implements AppointmentRepository using MongoDB.
type MongoAppointmentRepo struct {
	coll *mongo.Collection
}

// NewMongoAppointmentRepo creates a new instance of AppointmentRepository using MongoDB.
func NewMongoAppointmentRepo() AppointmentRepository {
	coll := database.Collection("appointments")
	repo := &MongoAppointmentRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

// newContext creates a context with the given timeout.
func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoAppointmentRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "email", Value: 1}, {Key: "timestamp", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// OutcomeState walks a user's records oldest-first and summarizes them.
func (r *MongoAppointmentRepo) OutcomeState(email string) (models.OutcomeState, error) {
	records, err := r.ListByUser(email)
	if err != nil {
		return models.OutcomeState{}, err
	}

	var state models.OutcomeState
	for _, rec := range records {
		if rec.IsDecline() {
			state.HasDecline = true
		} else {
			state.HasBooking = true
		}
		// Records are ordered by timestamp, so the last iteration wins.
		state.LastRecordID = rec.ID
		state.LastIsDecline = rec.IsDecline()
	}
	return state, nil
}

// Append inserts a new outcome record.
func (r *MongoAppointmentRepo) Append(record *models.AppointmentRecord) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	if record.Timestamp.IsZero() {
		record.Timestamp = time.Now()
	}
	record.Email = strings.ToLower(strings.TrimSpace(record.Email))

	if _, err := r.coll.InsertOne(ctx, record); err != nil {
		return fmt.Errorf("failed to append appointment record: %w", err)
	}
	return nil
}

// Update rewrites an existing record in place. The record keeps its identity
// so a corrected decline never shows up twice in the history.
func (r *MongoAppointmentRepo) Update(id string, record *models.AppointmentRecord) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	record.ID = id
	record.Timestamp = time.Now()
	record.Email = strings.ToLower(strings.TrimSpace(record.Email))

	filter := bson.M{"id": id}
	update := bson.M{"$set": record}

	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update appointment record %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("appointment record %s not found", id)
	}
	return nil
}

// ListByUser returns a user's records sorted by timestamp, oldest first.
func (r *MongoAppointmentRepo) ListByUser(email string) ([]models.AppointmentRecord, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	normalized := strings.ToLower(strings.TrimSpace(email))
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: 1}})

	cursor, err := r.coll.Find(ctx, bson.M{"email": normalized}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointment records for %s: %w", normalized, err)
	}
	defer cursor.Close(ctx)

	var records []models.AppointmentRecord
	for cursor.Next(ctx) {
		var rec models.AppointmentRecord
		if err := cursor.Decode(&rec); err != nil {
			return nil, fmt.Errorf("failed to decode appointment record: %w", err)
		}
		records = append(records, rec)
	}
	return records, nil
}

// Stats aggregates booking outcomes across all users.
func (r *MongoAppointmentRepo) Stats() (models.AppointmentStats, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return models.AppointmentStats{}, fmt.Errorf("failed to load appointment records: %w", err)
	}
	defer cursor.Close(ctx)

	stats := models.AppointmentStats{CheckedAt: time.Now()}
	users := make(map[string]struct{})
	cutoff := time.Now().AddDate(0, 0, -30)

	for cursor.Next(ctx) {
		var rec models.AppointmentRecord
		if err := cursor.Decode(&rec); err != nil {
			return models.AppointmentStats{}, fmt.Errorf("failed to decode appointment record: %w", err)
		}
		stats.TotalRecords++
		if rec.IsDecline() {
			stats.Declined++
		} else {
			stats.Booked++
		}
		if rec.Email != "" {
			users[rec.Email] = struct{}{}
		}
		if rec.Timestamp.After(cutoff) {
			stats.RecentRecords++
		}
	}

	stats.UniqueUsers = len(users)
	if stats.TotalRecords > 0 {
		stats.ConversionRate = float64(stats.Booked) / float64(stats.TotalRecords) * 100
	}
	return stats, nil
}
