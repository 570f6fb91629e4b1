// File: database/repository/user/user_mongo.go
package userRepo

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

// MongoUserRepo implements UserRepository using MongoDB.
type MongoUserRepo struct {
	coll *mongo.Collection
}

// NewMongoUserRepo creates a new instance of UserRepository using MongoDB.
func NewMongoUserRepo() UserRepository {
	coll := database.Collection("users")
	repo := &MongoUserRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

// newContext creates a context with the given timeout.
func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// ensureIndexes creates indexes for fields frequently used in queries.
func (r *MongoUserRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// FindByEmail retrieves a profile by contact email. Emails are matched
// case-insensitively since they arrive typed by hand in chat.
func (r *MongoUserRepo) FindByEmail(email string) (*models.UserProfile, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	normalized := strings.ToLower(strings.TrimSpace(email))

	var profile models.UserProfile
	if err := r.coll.FindOne(ctx, bson.M{"email": normalized}).Decode(&profile); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch profile with email %s: %w", normalized, err)
	}
	return &profile, nil
}

// Save upserts a profile keyed by contact email.
func (r *MongoUserRepo) Save(profile *models.UserProfile) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	profile.Email = strings.ToLower(strings.TrimSpace(profile.Email))
	profile.UpdatedAt = now
	if profile.ID == "" {
		profile.ID = uuid.New().String()
		profile.CreatedAt = now
	}

	filter := bson.M{"email": profile.Email}
	update := bson.M{"$set": profile}
	opts := options.Update().SetUpsert(true)

	if _, err := r.coll.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("failed to save profile for %s: %w", profile.Email, err)
	}
	return nil
}
