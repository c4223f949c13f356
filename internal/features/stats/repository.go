package stats

import (
	"context"

	"go-support/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type SnapshotRepository interface {
	Create(ctx context.Context, snapshot *TicketStats) error
	Latest(ctx context.Context, limit int64) ([]TicketStats, error)
}

type SnapshotRepositoryImpl struct {
	collection *mongo.Collection
}

func NewSnapshotRepository(db *database.MongodbDB) SnapshotRepository {
	return &SnapshotRepositoryImpl{
		collection: db.DB.Collection("ticket_stats"),
	}
}

func (r *SnapshotRepositoryImpl) Create(ctx context.Context, snapshot *TicketStats) error {
	result, err := r.collection.InsertOne(ctx, snapshot)
	if err != nil {
		return err
	}
	snapshot.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

// Latest returns the most recent snapshots first
func (r *SnapshotRepositoryImpl) Latest(ctx context.Context, limit int64) ([]TicketStats, error) {
	opts := options.Find().SetSort(bson.D{{Key: "taken_at", Value: -1}}).SetLimit(limit)
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	snapshots := []TicketStats{}
	if err := cursor.All(ctx, &snapshots); err != nil {
		return nil, err
	}
	return snapshots, nil
}
