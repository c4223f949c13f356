package ticket

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"go-support/internal/cache"
	common_models "go-support/internal/common/models"
	"go-support/internal/config"
	"go-support/internal/events"
	"go-support/internal/features/agent"
	"go-support/internal/features/audit"
	"go-support/internal/features/customer"
	"go-support/internal/logger"
	"go-support/pkg/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

const (
	auditModule = "tickets"

	// OpenTicketsLimit caps the open-tickets dashboard.
	OpenTicketsLimit = 20

	maxTicketNumberAttempts = 3
	openTicketsCacheKey     = "tickets:open"
)

// TicketService defines the ticket workflow
type TicketService interface {
	CreateTicket(ctx context.Context, req CreateTicketRequest) (*TicketView, error)
	ListTickets(ctx context.Context) ([]TicketView, error)
	ListOpenTickets(ctx context.Context) ([]OpenTicketView, error)
	UpdateTicket(ctx context.Context, id string, patch TicketPatch) error
	AddComment(ctx context.Context, ticketID string, req AddCommentRequest) (primitive.ObjectID, error)
	ListComments(ctx context.Context, ticketID string) ([]CommentView, error)
	History(ctx context.Context, ticketID string) ([]common_models.AuditLog, error)
	ExportTickets(ctx context.Context) ([]byte, error)
}

// TicketServiceImpl implements TicketService
type TicketServiceImpl struct {
	Repo        TicketRepository
	CommentRepo TicketCommentRepository
	Customers   customer.CustomerService
	Agents      agent.AgentService
	Audit       audit.AuditService
	Events      events.Dispatcher
	Cache       cache.Cache
	CacheTTL    time.Duration
	Logger      *zap.Logger
	Now         func() time.Time
}

// NewTicketService creates a new ticket service
func NewTicketService(
	repo TicketRepository,
	commentRepo TicketCommentRepository,
	customers customer.CustomerService,
	agents agent.AgentService,
	auditService audit.AuditService,
	dispatcher events.Dispatcher,
	c cache.Cache,
	cfg *config.Config,
	log *zap.Logger,
) TicketService {
	return &TicketServiceImpl{
		Repo:        repo,
		CommentRepo: commentRepo,
		Customers:   customers,
		Agents:      agents,
		Audit:       auditService,
		Events:      dispatcher,
		Cache:       c,
		CacheTTL:    cfg.OpenTicketsCacheTTL(),
		Logger:      log,
		Now:         utils.Now,
	}
}

// CreateTicket resolves the customer and inserts a new open ticket.
func (s *TicketServiceImpl) CreateTicket(ctx context.Context, req CreateTicketRequest) (*TicketView, error) {
	if utils.OptionalString(req.CustomerName) == nil {
		return nil, utils.NewRequiredFieldError("customer_name")
	}
	title := utils.OptionalString(req.TicketTitle)
	if title == nil {
		return nil, utils.NewRequiredFieldError("ticket_title")
	}

	now := s.Now()

	cust, err := s.Customers.ResolveCustomer(ctx, customer.ContactFields{
		Name:        req.CustomerName,
		Email:       req.CustomerEmail,
		Phone:       req.CustomerPhone,
		CompanyName: req.CompanyName,
		Address:     req.CustomerAddress,
	})
	if err != nil {
		return nil, err
	}
	// The resolve may have rewritten customer fields shown on the dashboard,
	// even when the insert below fails.
	defer s.invalidateOpenTickets(ctx)

	ticket := &Ticket{
		CustomerID:     cust.ID,
		Title:          *title,
		Description:    utils.OptionalString(req.TicketDescription),
		Type:           utils.StringOr(req.TicketType, DefaultType),
		Status:         StatusOpen,
		Priority:       utils.StringOr(req.Priority, DefaultPriority),
		Source:         utils.StringOr(req.Source, DefaultSource),
		TrackingNumber: utils.OptionalString(req.TrackingNumber),
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.insertWithFreshNumber(ctx, ticket); err != nil {
		return nil, utils.NewStoreError("Failed to create ticket", err)
	}

	s.Logger.Info("Ticket created",
		zap.String(logger.FieldTicketID, ticket.ID.Hex()),
		zap.String(logger.FieldCustomerID, cust.ID.Hex()),
		zap.String("ticket_number", ticket.TicketNumber),
	)

	s.recordAudit(ctx, common_models.AuditActionCreate, ticket.ID, map[string]common_models.Change{
		"status": {Old: nil, New: ticket.Status},
	})
	s.publish(ctx, events.NewEvent(events.EventTicketCreated, ticket.ID.Hex(), events.TicketCreatedPayload{
		TicketNumber: ticket.TicketNumber,
		CustomerID:   cust.ID.Hex(),
		Title:        ticket.Title,
		Priority:     ticket.Priority,
	}))

	return &TicketView{Ticket: *ticket, Customers: cust}, nil
}

// insertWithFreshNumber draws a ticket number and inserts, drawing again
// when the unique index reports a clash.
func (s *TicketServiceImpl) insertWithFreshNumber(ctx context.Context, ticket *Ticket) error {
	var err error
	for attempt := 1; attempt <= maxTicketNumberAttempts; attempt++ {
		ticket.TicketNumber, err = utils.GenerateTicketNumber()
		if err != nil {
			return err
		}

		err = s.Repo.Create(ctx, ticket)
		if !errors.Is(err, ErrDuplicateTicketNumber) {
			return err
		}
		s.Logger.Warn("Ticket number collision",
			zap.String("ticket_number", ticket.TicketNumber),
			zap.Int("attempt", attempt),
		)
	}
	return err
}

// ListTickets returns every ticket with its customer, newest first.
func (s *TicketServiceImpl) ListTickets(ctx context.Context) ([]TicketView, error) {
	tickets, err := s.Repo.FindAll(ctx)
	if err != nil {
		return nil, utils.NewStoreError("Failed to fetch tickets", err)
	}

	customers, err := s.Customers.CustomersByID(ctx, customerIDs(tickets))
	if err != nil {
		return nil, utils.NewStoreError("Failed to fetch tickets", err)
	}

	return AssembleTicketViews(tickets, customers), nil
}

// ListOpenTickets returns the newest open or working tickets, at most OpenTicketsLimit.
func (s *TicketServiceImpl) ListOpenTickets(ctx context.Context) ([]OpenTicketView, error) {
	if views, ok := s.cachedOpenTickets(ctx); ok {
		return views, nil
	}

	tickets, err := s.Repo.FindByStatuses(ctx, OpenStatuses, OpenTicketsLimit)
	if err != nil {
		return nil, utils.NewStoreError("Failed to fetch open tickets", err)
	}

	customers, err := s.Customers.CustomersByID(ctx, customerIDs(tickets))
	if err != nil {
		return nil, utils.NewStoreError("Failed to fetch open tickets", err)
	}

	views := AssembleOpenTicketViews(tickets, customers)
	s.storeOpenTickets(ctx, views)
	return views, nil
}

func (s *TicketServiceImpl) cachedOpenTickets(ctx context.Context) ([]OpenTicketView, bool) {
	if s.Cache == nil || !s.Cache.Enabled() {
		return nil, false
	}

	data, err := s.Cache.Get(ctx, openTicketsCacheKey)
	if err != nil {
		if !errors.Is(err, cache.ErrCacheMiss) {
			s.Logger.Warn("Open tickets cache read failed", zap.Error(err))
		}
		return nil, false
	}

	var views []OpenTicketView
	if err := json.Unmarshal(data, &views); err != nil {
		s.Logger.Warn("Discarding unreadable open tickets cache entry", zap.Error(err))
		return nil, false
	}
	return views, true
}

func (s *TicketServiceImpl) storeOpenTickets(ctx context.Context, views []OpenTicketView) {
	if s.Cache == nil || !s.Cache.Enabled() || s.CacheTTL <= 0 {
		return
	}

	data, err := json.Marshal(views)
	if err != nil {
		return
	}
	if err := s.Cache.Set(ctx, openTicketsCacheKey, data, s.CacheTTL); err != nil {
		s.Logger.Warn("Open tickets cache write failed", zap.Error(err))
	}
}

func (s *TicketServiceImpl) invalidateOpenTickets(ctx context.Context) {
	if s.Cache == nil || !s.Cache.Enabled() {
		return
	}
	if err := s.Cache.Delete(ctx, openTicketsCacheKey); err != nil {
		s.Logger.Warn("Open tickets cache invalidation failed", zap.Error(err))
	}
}

// UpdateTicket applies the patchable fields of patch. updated_at is always
// stamped; closing stamps closed_at, which is never cleared afterwards.
func (s *TicketServiceImpl) UpdateTicket(ctx context.Context, id string, patch TicketPatch) error {
	ticketID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return utils.NewNotFound("Ticket")
	}

	set, err := buildTicketUpdate(patch)
	if err != nil {
		return err
	}

	existing, err := s.Repo.FindByID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, ErrTicketNotFound) {
			return utils.NewNotFound("Ticket")
		}
		return utils.NewStoreError("Failed to update ticket", err)
	}

	fields := make([]string, 0, len(set))
	for field := range set {
		fields = append(fields, field)
	}

	now := s.Now()
	set["updated_at"] = now
	if set["status"] == StatusClosed {
		set["closed_at"] = now
	}

	if err := s.Repo.Update(ctx, ticketID, set); err != nil {
		if errors.Is(err, ErrTicketNotFound) {
			return utils.NewNotFound("Ticket")
		}
		return utils.NewStoreError("Failed to update ticket", err)
	}

	s.recordAudit(ctx, common_models.AuditActionUpdate, ticketID, diffTicket(existing, set))
	s.invalidateOpenTickets(ctx)

	status, _ := set["status"].(string)
	s.publish(ctx, events.NewEvent(events.EventTicketUpdated, ticketID.Hex(), events.TicketUpdatedPayload{
		Fields: fields,
		Status: status,
	}))
	return nil
}

// AddComment stores a comment. The ticket is not checked for existence.
func (s *TicketServiceImpl) AddComment(ctx context.Context, ticketID string, req AddCommentRequest) (primitive.ObjectID, error) {
	tid, err := primitive.ObjectIDFromHex(ticketID)
	if err != nil {
		return primitive.NilObjectID, utils.NewValidationError("Invalid ticket id")
	}

	text := utils.OptionalString(req.Comment)
	if text == nil {
		return primitive.NilObjectID, utils.NewRequiredFieldError("comment")
	}

	var agentID *primitive.ObjectID
	if raw := strings.TrimSpace(req.AgentID); raw != "" {
		oid, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			return primitive.NilObjectID, utils.NewValidationError("Invalid agent_id")
		}
		agentID = &oid
	}

	comment := &TicketComment{
		TicketID:   tid,
		AgentID:    agentID,
		Comment:    *text,
		IsInternal: req.IsInternal,
		CreatedAt:  s.Now(),
	}
	if err := s.CommentRepo.Create(ctx, comment); err != nil {
		return primitive.NilObjectID, utils.NewStoreError("Failed to add comment", err)
	}

	payload := events.CommentAddedPayload{CommentID: comment.ID.Hex(), IsInternal: comment.IsInternal}
	if agentID != nil {
		hex := agentID.Hex()
		payload.AgentID = &hex
	}
	s.publish(ctx, events.NewEvent(events.EventCommentAdded, tid.Hex(), payload))

	return comment.ID, nil
}

// ListComments returns a ticket's comments with their authors, newest first.
func (s *TicketServiceImpl) ListComments(ctx context.Context, ticketID string) ([]CommentView, error) {
	tid, err := primitive.ObjectIDFromHex(ticketID)
	if err != nil {
		return nil, utils.NewValidationError("Invalid ticket id")
	}

	comments, err := s.CommentRepo.FindByTicketID(ctx, tid)
	if err != nil {
		return nil, utils.NewStoreError("Failed to fetch comments", err)
	}

	agents, err := s.Agents.AgentsByID(ctx, agentIDs(comments))
	if err != nil {
		return nil, utils.NewStoreError("Failed to fetch comments", err)
	}

	return AssembleCommentViews(comments, agents), nil
}

// History lists the audit entries recorded for a ticket.
func (s *TicketServiceImpl) History(ctx context.Context, ticketID string) ([]common_models.AuditLog, error) {
	tid, err := primitive.ObjectIDFromHex(ticketID)
	if err != nil {
		return nil, utils.NewValidationError("Invalid ticket id")
	}
	return s.Audit.History(ctx, auditModule, tid.Hex())
}

func (s *TicketServiceImpl) recordAudit(ctx context.Context, action common_models.AuditAction, id primitive.ObjectID, changes map[string]common_models.Change) {
	if s.Audit == nil {
		return
	}
	if err := s.Audit.LogChange(ctx, action, auditModule, id.Hex(), changes); err != nil {
		s.Logger.Warn("Failed to write audit entry",
			zap.String(logger.FieldTicketID, id.Hex()),
			zap.Error(err),
		)
	}
}

func (s *TicketServiceImpl) publish(ctx context.Context, event events.Event) {
	if s.Events == nil {
		return
	}
	_ = s.Events.Publish(ctx, event)
}

var (
	requiredTextFields = []string{"status", "priority", "type", "title"}
	nullableTextFields = []string{"description", "tracking_number"}
)

// buildTicketUpdate turns the patchable fields of patch into a $set document.
// Unknown keys are ignored.
func buildTicketUpdate(patch TicketPatch) (bson.M, error) {
	set := bson.M{}

	for _, field := range requiredTextFields {
		raw, ok := patch[field]
		if !ok {
			continue
		}
		value, isString := raw.(string)
		if !isString || strings.TrimSpace(value) == "" {
			return nil, utils.NewValidationError(field + " must be a non-empty string")
		}
		set[field] = strings.TrimSpace(value)
	}

	for _, field := range nullableTextFields {
		raw, ok := patch[field]
		if !ok {
			continue
		}
		if raw == nil {
			set[field] = nil
			continue
		}
		value, isString := raw.(string)
		if !isString {
			return nil, utils.NewValidationError(field + " must be a string or null")
		}
		if trimmed := utils.OptionalString(value); trimmed != nil {
			set[field] = *trimmed
		} else {
			set[field] = nil
		}
	}

	if raw, ok := patch["assigned_to"]; ok {
		assignee, err := parseAssignee(raw)
		if err != nil {
			return nil, err
		}
		if assignee == nil {
			set["assigned_to"] = nil
		} else {
			set["assigned_to"] = *assignee
		}
	}

	return set, nil
}

// parseAssignee maps null and "" to unassigned.
func parseAssignee(raw interface{}) (*primitive.ObjectID, error) {
	if raw == nil {
		return nil, nil
	}
	value, ok := raw.(string)
	if !ok {
		return nil, utils.NewValidationError("assigned_to must be an agent id")
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	oid, err := primitive.ObjectIDFromHex(value)
	if err != nil {
		return nil, utils.NewValidationError("assigned_to must be an agent id")
	}
	return &oid, nil
}

// diffTicket lists the patched fields whose value actually changed.
func diffTicket(before *Ticket, set bson.M) map[string]common_models.Change {
	current := map[string]interface{}{
		"status":          before.Status,
		"priority":        before.Priority,
		"type":            before.Type,
		"title":           before.Title,
		"description":     derefString(before.Description),
		"tracking_number": derefString(before.TrackingNumber),
		"assigned_to":     hexOrNil(before.AssignedTo),
	}

	changes := map[string]common_models.Change{}
	for field, old := range current {
		newValue, ok := set[field]
		if !ok {
			continue
		}
		if oid, isID := newValue.(primitive.ObjectID); isID {
			newValue = oid.Hex()
		}
		if old != newValue {
			changes[field] = common_models.Change{Old: old, New: newValue}
		}
	}
	if closedAt, ok := set["closed_at"]; ok {
		changes["closed_at"] = common_models.Change{Old: before.ClosedAt, New: closedAt}
	}
	return changes
}

func derefString(s *string) interface{} {
	if s == nil {
		return nil
	}
	return *s
}

func hexOrNil(id *primitive.ObjectID) interface{} {
	if id == nil {
		return nil
	}
	return id.Hex()
}
