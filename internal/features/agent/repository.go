package agent

import (
	"context"

	"go-support/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type AgentRepository interface {
	FindActive(ctx context.Context) ([]Agent, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]Agent, error)
	// UpsertByEmail is used by the seeder; the API never writes agents.
	UpsertByEmail(ctx context.Context, agent *Agent) error
}

type AgentRepositoryImpl struct {
	collection *mongo.Collection
}

func NewAgentRepository(db *database.MongodbDB) AgentRepository {
	return &AgentRepositoryImpl{
		collection: db.DB.Collection("agents"),
	}
}

// FindActive lists active agents by name
func (r *AgentRepositoryImpl) FindActive(ctx context.Context) ([]Agent, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"is_active": true}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	agents := []Agent{}
	if err := cursor.All(ctx, &agents); err != nil {
		return nil, err
	}
	return agents, nil
}

func (r *AgentRepositoryImpl) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]Agent, error) {
	if len(ids) == 0 {
		return []Agent{}, nil
	}
	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	agents := []Agent{}
	if err := cursor.All(ctx, &agents); err != nil {
		return nil, err
	}
	return agents, nil
}

func (r *AgentRepositoryImpl) UpsertByEmail(ctx context.Context, agent *Agent) error {
	_, err := r.collection.UpdateOne(ctx,
		bson.M{"email": agent.Email},
		bson.M{
			"$set": bson.M{
				"name":      agent.Name,
				"role":      agent.Role,
				"is_active": agent.IsActive,
			},
			"$setOnInsert": bson.M{"created_at": agent.CreatedAt},
		},
		options.Update().SetUpsert(true),
	)
	return err
}
