package ticket

import (
	"context"
	"sort"
	"sync"
	"time"

	"go-support/internal/cache"
	common_models "go-support/internal/common/models"
	"go-support/internal/events"
	"go-support/internal/features/agent"
	"go-support/internal/features/customer"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type memoryTicketRepo struct {
	mu            sync.Mutex
	tickets       []Ticket
	duplicates    int
	createCalls   int
	lastStatuses  []string
	lastLimit     int64
	findAllCalled int
}

func (r *memoryTicketRepo) Create(_ context.Context, t *Ticket) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.createCalls++
	if r.duplicates > 0 {
		r.duplicates--
		return ErrDuplicateTicketNumber
	}
	t.ID = primitive.NewObjectID()
	r.tickets = append(r.tickets, *t)
	return nil
}

func (r *memoryTicketRepo) FindAll(_ context.Context) ([]Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.findAllCalled++
	out := append([]Ticket{}, r.tickets...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *memoryTicketRepo) FindByStatuses(_ context.Context, statuses []string, limit int64) ([]Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastStatuses, r.lastLimit = statuses, limit
	wanted := map[string]bool{}
	for _, s := range statuses {
		wanted[s] = true
	}
	var out []Ticket
	for _, t := range r.tickets {
		if wanted[t.Status] {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *memoryTicketRepo) FindByID(_ context.Context, id primitive.ObjectID) (*Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.tickets {
		if t.ID == id {
			found := t
			return &found, nil
		}
	}
	return nil, ErrTicketNotFound
}

func (r *memoryTicketRepo) Update(_ context.Context, id primitive.ObjectID, set bson.M) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.tickets {
		t := &r.tickets[i]
		if t.ID != id {
			continue
		}
		for field, value := range set {
			switch field {
			case "status":
				t.Status = value.(string)
			case "priority":
				t.Priority = value.(string)
			case "type":
				t.Type = value.(string)
			case "title":
				t.Title = value.(string)
			case "description":
				t.Description = optionalValue(value)
			case "tracking_number":
				t.TrackingNumber = optionalValue(value)
			case "assigned_to":
				if value == nil {
					t.AssignedTo = nil
				} else {
					oid := value.(primitive.ObjectID)
					t.AssignedTo = &oid
				}
			case "updated_at":
				t.UpdatedAt = value.(time.Time)
			case "closed_at":
				closed := value.(time.Time)
				t.ClosedAt = &closed
			}
		}
		return nil
	}
	return ErrTicketNotFound
}

func optionalValue(v interface{}) *string {
	if v == nil {
		return nil
	}
	s := v.(string)
	return &s
}

func (r *memoryTicketRepo) CountByStatus(context.Context) ([]StatusCount, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	counts := map[string]int64{}
	for _, t := range r.tickets {
		counts[t.Status]++
	}
	var out []StatusCount
	for status, n := range counts {
		out = append(out, StatusCount{Status: status, Count: n})
	}
	return out, nil
}

func (r *memoryTicketRepo) EnsureIndexes(context.Context) error { return nil }

func (r *memoryTicketRepo) get(id primitive.ObjectID) Ticket {
	t, _ := r.FindByID(context.Background(), id)
	return *t
}

type memoryCommentRepo struct {
	mu       sync.Mutex
	comments []TicketComment
}

func (r *memoryCommentRepo) Create(_ context.Context, c *TicketComment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c.ID = primitive.NewObjectID()
	r.comments = append(r.comments, *c)
	return nil
}

func (r *memoryCommentRepo) FindByTicketID(_ context.Context, id primitive.ObjectID) ([]TicketComment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []TicketComment
	for _, c := range r.comments {
		if c.TicketID == id {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *memoryCommentRepo) EnsureIndexes(context.Context) error { return nil }

// memoryCustomerRepo backs a real customer service so ticket tests exercise
// identity resolution end to end.
type memoryCustomerRepo struct {
	mu        sync.Mutex
	customers []customer.Customer
}

func (r *memoryCustomerRepo) Create(_ context.Context, c *customer.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c.ID = primitive.NewObjectID()
	r.customers = append(r.customers, *c)
	return nil
}

func (r *memoryCustomerRepo) UpsertByEmail(_ context.Context, c *customer.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.customers {
		existing := &r.customers[i]
		if existing.Email != nil && *existing.Email == *c.Email {
			existing.Name, existing.Phone = c.Name, c.Phone
			existing.CompanyName, existing.Address = c.CompanyName, c.Address
			return nil
		}
	}
	inserted := *c
	inserted.ID = primitive.NewObjectID()
	r.customers = append(r.customers, inserted)
	return nil
}

func (r *memoryCustomerRepo) FindByEmail(_ context.Context, email string) (*customer.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.customers {
		if c.Email != nil && *c.Email == email {
			found := c
			return &found, nil
		}
	}
	return nil, customer.ErrCustomerNotFound
}

func (r *memoryCustomerRepo) FindAll(context.Context) ([]customer.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]customer.Customer{}, r.customers...), nil
}

func (r *memoryCustomerRepo) FindByIDs(_ context.Context, ids []primitive.ObjectID) ([]customer.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	wanted := map[primitive.ObjectID]bool{}
	for _, id := range ids {
		wanted[id] = true
	}
	var out []customer.Customer
	for _, c := range r.customers {
		if wanted[c.ID] {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *memoryCustomerRepo) EnsureIndexes(context.Context) error { return nil }

type memoryAgentService struct {
	agents map[primitive.ObjectID]*agent.Agent
}

func (s *memoryAgentService) ListActiveAgents(context.Context) ([]agent.Agent, error) {
	var out []agent.Agent
	for _, a := range s.agents {
		if a.IsActive {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (s *memoryAgentService) AgentsByID(_ context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]*agent.Agent, error) {
	out := map[primitive.ObjectID]*agent.Agent{}
	for _, id := range ids {
		if a, ok := s.agents[id]; ok {
			out[id] = a
		}
	}
	return out, nil
}

type recordingAudit struct {
	mu      sync.Mutex
	entries []common_models.AuditLog
}

func (a *recordingAudit) LogChange(_ context.Context, action common_models.AuditAction, module, recordID string, changes map[string]common_models.Change) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.entries = append(a.entries, common_models.AuditLog{Action: action, Module: module, RecordID: recordID, Changes: changes})
	return nil
}

func (a *recordingAudit) ListLogs(_ context.Context, module, recordID string, _, _ int64) ([]common_models.AuditLog, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	var out []common_models.AuditLog
	for _, e := range a.entries {
		if e.Module == module && e.RecordID == recordID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (a *recordingAudit) History(ctx context.Context, module, recordID string) ([]common_models.AuditLog, error) {
	return a.ListLogs(ctx, module, recordID, 1, 100)
}

type memoryCache struct {
	mu      sync.Mutex
	values  map[string][]byte
	gets    int
	deletes int
}

func newMemoryCache() *memoryCache { return &memoryCache{values: map[string][]byte{}} }

func (c *memoryCache) Get(_ context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	v, ok := c.values[key]
	if !ok {
		return nil, cache.ErrCacheMiss
	}
	return v, nil
}

func (c *memoryCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values[key] = value
	return nil
}

func (c *memoryCache) Delete(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.deletes++
	for _, k := range keys {
		delete(c.values, k)
	}
	return nil
}

func (c *memoryCache) Ping(context.Context) error { return nil }

func (c *memoryCache) Enabled() bool { return true }

type fixture struct {
	svc       *TicketServiceImpl
	tickets   *memoryTicketRepo
	comments  *memoryCommentRepo
	customers *memoryCustomerRepo
	agents    *memoryAgentService
	audit     *recordingAudit
	mu        sync.Mutex
	published []events.Event
	clock     time.Time
}

func newFixture() *fixture {
	f := &fixture{
		tickets:   &memoryTicketRepo{},
		comments:  &memoryCommentRepo{},
		customers: &memoryCustomerRepo{},
		agents:    &memoryAgentService{agents: map[primitive.ObjectID]*agent.Agent{}},
		audit:     &recordingAudit{},
		clock:     time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC),
	}

	dispatcher := events.NewInMemoryDispatcher(zap.NewNop())
	for _, eventType := range events.AllEventTypes {
		dispatcher.Subscribe(eventType, func(_ context.Context, e events.Event) error {
			f.mu.Lock()
			f.published = append(f.published, e)
			f.mu.Unlock()
			return nil
		})
	}

	now := func() time.Time { return f.clock }
	customerService := &customer.CustomerServiceImpl{Repo: f.customers, Logger: zap.NewNop(), Now: now}

	f.svc = &TicketServiceImpl{
		Repo:        f.tickets,
		CommentRepo: f.comments,
		Customers:   customerService,
		Agents:      f.agents,
		Audit:       f.audit,
		Events:      dispatcher,
		Cache:       cache.NoopCache{},
		CacheTTL:    time.Minute,
		Logger:      zap.NewNop(),
		Now:         now,
	}
	return f
}

func (f *fixture) advance(d time.Duration) { f.clock = f.clock.Add(d) }
