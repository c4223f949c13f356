package customer

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"go-support/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// memoryRepository mimics the upsert and lookup semantics of the Mongo repository.
type memoryRepository struct {
	mu        sync.Mutex
	customers []Customer
	upsertErr error
	loseWrite bool
}

func (m *memoryRepository) Create(_ context.Context, customer *Customer) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	customer.ID = primitive.NewObjectID()
	m.customers = append(m.customers, *customer)
	return nil
}

func (m *memoryRepository) UpsertByEmail(_ context.Context, customer *Customer) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.upsertErr != nil {
		return m.upsertErr
	}
	if m.loseWrite {
		return nil
	}
	for i := range m.customers {
		existing := &m.customers[i]
		if existing.Email != nil && *existing.Email == *customer.Email {
			existing.Name = customer.Name
			existing.Phone = customer.Phone
			existing.CompanyName = customer.CompanyName
			existing.Address = customer.Address
			return nil
		}
	}
	inserted := *customer
	inserted.ID = primitive.NewObjectID()
	m.customers = append(m.customers, inserted)
	return nil
}

func (m *memoryRepository) FindByEmail(_ context.Context, email string) (*Customer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.customers {
		if c.Email != nil && *c.Email == email {
			found := c
			return &found, nil
		}
	}
	return nil, ErrCustomerNotFound
}

func (m *memoryRepository) FindAll(_ context.Context) ([]Customer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Customer{}, m.customers...), nil
}

func (m *memoryRepository) FindByIDs(_ context.Context, ids []primitive.ObjectID) ([]Customer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	wanted := map[primitive.ObjectID]bool{}
	for _, id := range ids {
		wanted[id] = true
	}
	var found []Customer
	for _, c := range m.customers {
		if wanted[c.ID] {
			found = append(found, c)
		}
	}
	return found, nil
}

func (m *memoryRepository) EnsureIndexes(context.Context) error { return nil }

func newTestService(repo CustomerRepository) *CustomerServiceImpl {
	fixed := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	return &CustomerServiceImpl{
		Repo:   repo,
		Logger: zap.NewNop(),
		Now:    func() time.Time { return fixed },
	}
}

func TestResolveCustomer_SameEmailConverges(t *testing.T) {
	repo := &memoryRepository{}
	svc := newTestService(repo)
	ctx := context.Background()

	first, err := svc.ResolveCustomer(ctx, ContactFields{Name: "Ann", Email: "a@x.com", Phone: "111"})
	require.NoError(t, err)

	second, err := svc.ResolveCustomer(ctx, ContactFields{Name: "Ann B", Email: "a@x.com"})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "Ann B", second.Name)
	assert.Nil(t, second.Phone, "blank phone overwrites the stored value with null")
	assert.Len(t, repo.customers, 1)
}

func TestResolveCustomer_NoEmailAlwaysCreates(t *testing.T) {
	repo := &memoryRepository{}
	svc := newTestService(repo)
	ctx := context.Background()

	first, err := svc.ResolveCustomer(ctx, ContactFields{Name: "Bob"})
	require.NoError(t, err)
	second, err := svc.ResolveCustomer(ctx, ContactFields{Name: "Bob", Email: "   "})
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
	assert.Nil(t, second.Email)
	assert.Len(t, repo.customers, 2)
}

func TestResolveCustomer_TrimsAndNullsOptionalFields(t *testing.T) {
	svc := newTestService(&memoryRepository{})

	customer, err := svc.ResolveCustomer(context.Background(), ContactFields{
		Name:        "  Cara  ",
		Email:       " c@x.com ",
		CompanyName: "",
		Address:     " 1 Main St ",
	})
	require.NoError(t, err)

	assert.Equal(t, "Cara", customer.Name)
	require.NotNil(t, customer.Email)
	assert.Equal(t, "c@x.com", *customer.Email)
	assert.Nil(t, customer.CompanyName)
	require.NotNil(t, customer.Address)
	assert.Equal(t, "1 Main St", *customer.Address)
}

func TestResolveCustomer_RequiresName(t *testing.T) {
	repo := &memoryRepository{}
	svc := newTestService(repo)

	_, err := svc.ResolveCustomer(context.Background(), ContactFields{Name: "  ", Email: "a@x.com"})

	require.Error(t, err)
	assert.True(t, utils.IsKind(err, utils.KindValidation))
	assert.Empty(t, repo.customers)
}

func TestResolveCustomer_MissingAfterUpsertIsConsistencyError(t *testing.T) {
	svc := newTestService(&memoryRepository{loseWrite: true})

	_, err := svc.ResolveCustomer(context.Background(), ContactFields{Name: "Dan", Email: "d@x.com"})

	require.Error(t, err)
	assert.True(t, utils.IsKind(err, utils.KindConsistency))
	assert.Equal(t, 500, utils.ToDomainError(err).HTTPStatus)
}

func TestResolveCustomer_StoreFailure(t *testing.T) {
	svc := newTestService(&memoryRepository{upsertErr: errors.New("connection reset")})

	_, err := svc.ResolveCustomer(context.Background(), ContactFields{Name: "Eve", Email: "e@x.com"})

	require.Error(t, err)
	domainErr := utils.ToDomainError(err)
	assert.Equal(t, utils.KindStore, domainErr.Kind)
	assert.Equal(t, "connection reset", domainErr.Details)
}

func TestResolveCustomer_ConcurrentSameEmail(t *testing.T) {
	repo := &memoryRepository{}
	svc := newTestService(repo)

	var wg sync.WaitGroup
	ids := make([]primitive.ObjectID, 10)
	for i := range ids {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			customer, err := svc.ResolveCustomer(context.Background(), ContactFields{Name: "Fay", Email: "f@x.com"})
			if assert.NoError(t, err) {
				ids[i] = customer.ID
			}
		}(i)
	}
	wg.Wait()

	for _, id := range ids {
		assert.Equal(t, ids[0], id)
	}
	assert.Len(t, repo.customers, 1)
}

func TestCustomersByID(t *testing.T) {
	repo := &memoryRepository{}
	svc := newTestService(repo)
	ctx := context.Background()

	known, err := svc.ResolveCustomer(ctx, ContactFields{Name: "Gus"})
	require.NoError(t, err)

	byID, err := svc.CustomersByID(ctx, []primitive.ObjectID{known.ID, primitive.NewObjectID()})
	require.NoError(t, err)

	assert.Len(t, byID, 1)
	assert.Equal(t, "Gus", byID[known.ID].Name)
}
