package snapshotRepo

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

// MongoSnapshotRepo implements Repository using MongoDB.
type MongoSnapshotRepo struct {
	coll *mongo.Collection
}

// snapshotDoc is the stored shape: one document per monitored date.
type snapshotDoc struct {
	Date      string        `bson:"date"`
	Slots     []models.Slot `bson:"slots"`
	UpdatedAt time.Time     `bson:"updated_at"`
}

// NewMongoSnapshotRepo creates a new instance of Repository using MongoDB.
func NewMongoSnapshotRepo() Repository {
	coll := database.MongoClient.Database("padelwatch").Collection("snapshots")
	repo := &MongoSnapshotRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

// newContext creates a context with the given timeout.
func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoSnapshotRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "date", Value: 1}}, Options: options.Index().SetUnique(true)},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Get retrieves the slot set stored for date. A date that was never
// snapshotted yields (nil, nil).
func (r *MongoSnapshotRepo) Get(date string) ([]models.Slot, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var doc snapshotDoc
	if err := r.coll.FindOne(ctx, bson.M{"date": date}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch snapshot for %s: %w", date, err)
	}
	return doc.Slots, nil
}

// Put replaces the slot set for date in a single upsert, so readers never
// observe a partially written snapshot.
func (r *MongoSnapshotRepo) Put(date string, slots []models.Slot) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	doc := snapshotDoc{
		Date:      date,
		Slots:     slots,
		UpdatedAt: time.Now(),
	}
	opts := options.Replace().SetUpsert(true)
	if _, err := r.coll.ReplaceOne(ctx, bson.M{"date": date}, doc, opts); err != nil {
		return fmt.Errorf("failed to store snapshot for %s: %w", date, err)
	}
	return nil
}
