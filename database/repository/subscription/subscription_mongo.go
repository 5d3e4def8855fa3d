package subscriptionRepo

import (
	"context"
	"fmt"
	"time"

	"padelwatch/database"
	"padelwatch/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoSubscriptionRepo implements Repository using MongoDB.
type MongoSubscriptionRepo struct {
	coll *mongo.Collection
}

// NewMongoSubscriptionRepo creates a new instance of Repository using MongoDB.
func NewMongoSubscriptionRepo() Repository {
	coll := database.MongoClient.Database("padelwatch").Collection("subscriptions")
	repo := &MongoSubscriptionRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

// newContext creates a context with the given timeout.
func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// ensureIndexes creates the lookup indexes and the compound unique index that
// enforces the one-alert-per-criteria rule.
func (r *MongoSubscriptionRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "date", Value: 1}}},
		{
			Keys: bson.D{
				{Key: "email", Value: 1},
				{Key: "date", Value: 1},
				{Key: "min_time", Value: 1},
				{Key: "min_duration", Value: 1},
			},
			Options: options.Index().SetUnique(true),
		},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Create inserts a new subscription document.
func (r *MongoSubscriptionRepo) Create(sub *models.Subscription) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	if sub.CreatedAt.IsZero() {
		sub.CreatedAt = time.Now()
	}

	if _, err := r.coll.InsertOne(ctx, sub); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("subscription for %s on %s: %w", sub.Email, sub.Date, ErrDuplicate)
		}
		return fmt.Errorf("failed to create subscription: %w", err)
	}
	return nil
}

// ListAll retrieves every stored subscription.
func (r *MongoSubscriptionRepo) ListAll() ([]models.Subscription, error) {
	return r.list(bson.M{})
}

// ListByEmail retrieves the subscriptions registered for one address.
func (r *MongoSubscriptionRepo) ListByEmail(email string) ([]models.Subscription, error) {
	return r.list(bson.M{"email": email})
}

func (r *MongoSubscriptionRepo) list(filter bson.M) ([]models.Subscription, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve subscriptions: %w", err)
	}
	defer cursor.Close(ctx)

	var subs []models.Subscription
	for cursor.Next(ctx) {
		var s models.Subscription
		if err := cursor.Decode(&s); err != nil {
			return nil, fmt.Errorf("failed to decode subscription: %w", err)
		}
		subs = append(subs, s)
	}
	return subs, nil
}

// Delete removes a subscription document by its ID.
func (r *MongoSubscriptionRepo) Delete(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete subscription with id %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("subscription with id %s: %w", id, ErrNotFound)
	}
	return nil
}

// DeleteExpired removes subscriptions whose target date is strictly before
// the given date. The "YYYY-MM-DD" format makes the string comparison
// equivalent to a date comparison.
func (r *MongoSubscriptionRepo) DeleteExpired(before string) (int64, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	result, err := r.coll.DeleteMany(ctx, bson.M{"date": bson.M{"$lt": before}})
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired subscriptions: %w", err)
	}
	return result.DeletedCount, nil
}
