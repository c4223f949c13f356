package ticket

import (
	"context"
	"errors"

	"go-support/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	ErrTicketNotFound        = errors.New("ticket not found")
	ErrDuplicateTicketNumber = errors.New("duplicate ticket number")
)

// TicketRepository defines the interface for ticket persistence
type TicketRepository interface {
	Create(ctx context.Context, ticket *Ticket) error
	FindAll(ctx context.Context) ([]Ticket, error)
	FindByStatuses(ctx context.Context, statuses []string, limit int64) ([]Ticket, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*Ticket, error)
	Update(ctx context.Context, id primitive.ObjectID, set bson.M) error
	CountByStatus(ctx context.Context) ([]StatusCount, error)
	EnsureIndexes(ctx context.Context) error
}

// TicketRepositoryImpl implements TicketRepository
type TicketRepositoryImpl struct {
	collection *mongo.Collection
}

// NewTicketRepository creates a new ticket repository
func NewTicketRepository(db *database.MongodbDB) TicketRepository {
	return &TicketRepositoryImpl{
		collection: db.DB.Collection("tickets"),
	}
}

// Create inserts a new ticket. A clash on ticket_number is reported as
// ErrDuplicateTicketNumber.
func (r *TicketRepositoryImpl) Create(ctx context.Context, ticket *Ticket) error {
	result, err := r.collection.InsertOne(ctx, ticket)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateTicketNumber
		}
		return err
	}

	ticket.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

// FindAll retrieves every ticket, newest first
func (r *TicketRepositoryImpl) FindAll(ctx context.Context) ([]Ticket, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	return r.find(ctx, bson.M{}, opts)
}

// FindByStatuses retrieves the newest tickets in any of the statuses
func (r *TicketRepositoryImpl) FindByStatuses(ctx context.Context, statuses []string, limit int64) ([]Ticket, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit)
	return r.find(ctx, bson.M{"status": bson.M{"$in": statuses}}, opts)
}

func (r *TicketRepositoryImpl) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]Ticket, error) {
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	tickets := []Ticket{}
	if err = cursor.All(ctx, &tickets); err != nil {
		return nil, err
	}
	return tickets, nil
}

// FindByID retrieves a ticket by ID
func (r *TicketRepositoryImpl) FindByID(ctx context.Context, id primitive.ObjectID) (*Ticket, error) {
	var ticket Ticket
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&ticket)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrTicketNotFound
		}
		return nil, err
	}
	return &ticket, nil
}

// Update applies set to the ticket
func (r *TicketRepositoryImpl) Update(ctx context.Context, id primitive.ObjectID, set bson.M) error {
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return err
	}

	if result.MatchedCount == 0 {
		return ErrTicketNotFound
	}
	return nil
}

// CountByStatus groups tickets by status
func (r *TicketRepositoryImpl) CountByStatus(ctx context.Context) ([]StatusCount, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$status"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	counts := []StatusCount{}
	if err = cursor.All(ctx, &counts); err != nil {
		return nil, err
	}
	return counts, nil
}

// EnsureIndexes makes ticket numbers unique and backs the dashboard queries.
func (r *TicketRepositoryImpl) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "ticket_number", Value: 1}},
			Options: options.Index().SetName("ticket_number_unique").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "status", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("status_created_at"),
		},
		{
			Keys:    bson.D{{Key: "created_at", Value: -1}},
			Options: options.Index().SetName("created_at_desc"),
		},
	})
	return err
}
