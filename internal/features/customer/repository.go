package customer

import (
	"context"
	"errors"

	"go-support/internal/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrCustomerNotFound = errors.New("customer not found")

// CustomerRepository defines persistence for customers
type CustomerRepository interface {
	Create(ctx context.Context, customer *Customer) error
	UpsertByEmail(ctx context.Context, customer *Customer) error
	FindByEmail(ctx context.Context, email string) (*Customer, error)
	FindAll(ctx context.Context) ([]Customer, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]Customer, error)
	EnsureIndexes(ctx context.Context) error
}

type CustomerRepositoryImpl struct {
	collection *mongo.Collection
}

func NewCustomerRepository(db *database.MongodbDB) CustomerRepository {
	return &CustomerRepositoryImpl{
		collection: db.DB.Collection("customers"),
	}
}

// Create inserts a new customer document
func (r *CustomerRepositoryImpl) Create(ctx context.Context, customer *Customer) error {
	result, err := r.collection.InsertOne(ctx, customer)
	if err != nil {
		return err
	}

	customer.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

// UpsertByEmail overwrites the mutable fields of the customer holding the email,
// or inserts one. Identity and created_at are only written on insert.
func (r *CustomerRepositoryImpl) UpsertByEmail(ctx context.Context, customer *Customer) error {
	if customer.Email == nil {
		return errors.New("upsert requires an email")
	}

	filter := bson.M{"email": *customer.Email}
	update := bson.M{
		"$set": bson.M{
			"name":         customer.Name,
			"phone":        customer.Phone,
			"company_name": customer.CompanyName,
			"address":      customer.Address,
		},
		"$setOnInsert": bson.M{
			"created_at": customer.CreatedAt,
		},
	}
	opts := options.Update().SetUpsert(true)

	_, err := r.collection.UpdateOne(ctx, filter, update, opts)
	if mongo.IsDuplicateKeyError(err) {
		// A concurrent upsert inserted the email first; this attempt now matches it.
		_, err = r.collection.UpdateOne(ctx, filter, update, opts)
	}
	return err
}

// FindByEmail retrieves the customer holding the email
func (r *CustomerRepositoryImpl) FindByEmail(ctx context.Context, email string) (*Customer, error) {
	var customer Customer
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&customer)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}
	return &customer, nil
}

// FindAll lists every customer by name
func (r *CustomerRepositoryImpl) FindAll(ctx context.Context) ([]Customer, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	customers := []Customer{}
	if err := cursor.All(ctx, &customers); err != nil {
		return nil, err
	}
	return customers, nil
}

func (r *CustomerRepositoryImpl) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]Customer, error) {
	if len(ids) == 0 {
		return []Customer{}, nil
	}
	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	customers := []Customer{}
	if err := cursor.All(ctx, &customers); err != nil {
		return nil, err
	}
	return customers, nil
}

// EnsureIndexes backs the upsert with a unique index over string emails only,
// so customers without an email never collide.
func (r *CustomerRepositoryImpl) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "email", Value: 1}},
			Options: options.Index().
				SetName("email_unique").
				SetUnique(true).
				SetPartialFilterExpression(bson.M{"email": bson.M{"$type": "string"}}),
		},
		{
			Keys:    bson.D{{Key: "name", Value: 1}},
			Options: options.Index().SetName("name_asc"),
		},
	})
	return err
}
