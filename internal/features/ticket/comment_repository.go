package ticket

import (
	"context"

	"go-support/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// TicketCommentRepository defines the interface for ticket comment operations
type TicketCommentRepository interface {
	Create(ctx context.Context, comment *TicketComment) error
	FindByTicketID(ctx context.Context, ticketID primitive.ObjectID) ([]TicketComment, error)
	EnsureIndexes(ctx context.Context) error
}

// TicketCommentRepositoryImpl implements TicketCommentRepository
type TicketCommentRepositoryImpl struct {
	collection *mongo.Collection
}

// NewTicketCommentRepository creates a new ticket comment repository
func NewTicketCommentRepository(db *database.MongodbDB) TicketCommentRepository {
	return &TicketCommentRepositoryImpl{
		collection: db.DB.Collection("ticket_comments"),
	}
}

// Create inserts a new comment
func (r *TicketCommentRepositoryImpl) Create(ctx context.Context, comment *TicketComment) error {
	result, err := r.collection.InsertOne(ctx, comment)
	if err != nil {
		return err
	}

	comment.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

// FindByTicketID retrieves all comments for a ticket, newest first
func (r *TicketCommentRepositoryImpl) FindByTicketID(ctx context.Context, ticketID primitive.ObjectID) ([]TicketComment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"ticket_id": ticketID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	comments := []TicketComment{}
	if err = cursor.All(ctx, &comments); err != nil {
		return nil, err
	}

	return comments, nil
}

func (r *TicketCommentRepositoryImpl) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "ticket_id", Value: 1}, {Key: "created_at", Value: -1}},
		Options: options.Index().SetName("ticket_id_created_at"),
	})
	return err
}
