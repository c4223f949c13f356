package customer

import (
	"context"
	"errors"
	"time"

	"go-support/pkg/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type CustomerService interface {
	// ResolveCustomer returns the canonical customer for the contact. Requests
	// sharing an email converge on one record; requests without one always
	// create a new record.
	ResolveCustomer(ctx context.Context, contact ContactFields) (*Customer, error)
	ListCustomers(ctx context.Context) ([]Customer, error)
	CustomersByID(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]*Customer, error)
}

type CustomerServiceImpl struct {
	Repo   CustomerRepository
	Logger *zap.Logger
	Now    func() time.Time
}

func NewCustomerService(repo CustomerRepository, logger *zap.Logger) CustomerService {
	return &CustomerServiceImpl{
		Repo:   repo,
		Logger: logger,
		Now:    utils.Now,
	}
}

func (s *CustomerServiceImpl) ResolveCustomer(ctx context.Context, contact ContactFields) (*Customer, error) {
	name := utils.OptionalString(contact.Name)
	if name == nil {
		return nil, utils.NewRequiredFieldError("customer_name")
	}

	customer := &Customer{
		Name:        *name,
		Email:       utils.OptionalString(contact.Email),
		Phone:       utils.OptionalString(contact.Phone),
		CompanyName: utils.OptionalString(contact.CompanyName),
		Address:     utils.OptionalString(contact.Address),
		CreatedAt:   s.Now(),
	}

	if customer.Email == nil {
		if err := s.Repo.Create(ctx, customer); err != nil {
			return nil, utils.NewStoreError("Failed to create customer", err)
		}
		return customer, nil
	}

	if err := s.Repo.UpsertByEmail(ctx, customer); err != nil {
		return nil, utils.NewStoreError("Failed to create customer", err)
	}

	resolved, err := s.Repo.FindByEmail(ctx, *customer.Email)
	if err != nil {
		if errors.Is(err, ErrCustomerNotFound) {
			s.Logger.Error("Customer missing after upsert", zap.String("email", *customer.Email))
			return nil, utils.NewConsistencyError("Customer not found after upsert")
		}
		return nil, utils.NewStoreError("Failed to create customer", err)
	}
	return resolved, nil
}

func (s *CustomerServiceImpl) ListCustomers(ctx context.Context) ([]Customer, error) {
	customers, err := s.Repo.FindAll(ctx)
	if err != nil {
		return nil, utils.NewStoreError("Failed to fetch customers", err)
	}
	return customers, nil
}

// CustomersByID loads the referenced customers keyed by id. Missing ids are
// simply absent from the map.
func (s *CustomerServiceImpl) CustomersByID(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]*Customer, error) {
	customers, err := s.Repo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[primitive.ObjectID]*Customer, len(customers))
	for i := range customers {
		byID[customers[i].ID] = &customers[i]
	}
	return byID, nil
}
