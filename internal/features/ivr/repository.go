package ivr

import (
	"context"

	"go-support/internal/database"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type CallRepository interface {
	Create(ctx context.Context, call *Call) error
}

type CallRepositoryImpl struct {
	collection *mongo.Collection
}

func NewCallRepository(db *database.MongodbDB) CallRepository {
	return &CallRepositoryImpl{
		collection: db.DB.Collection("ivr_calls"),
	}
}

// Create inserts a call log
func (r *CallRepositoryImpl) Create(ctx context.Context, call *Call) error {
	result, err := r.collection.InsertOne(ctx, call)
	if err != nil {
		return err
	}

	call.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}
