package ivr

import (
	"context"
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"

	"go-support/internal/events"
	"go-support/pkg/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type IVRService interface {
	LogCall(ctx context.Context, req LogCallRequest) (primitive.ObjectID, error)
}

type IVRServiceImpl struct {
	Repo   CallRepository
	Events events.Dispatcher
	Logger *zap.Logger
	Now    func() time.Time
}

func NewIVRService(repo CallRepository, dispatcher events.Dispatcher, logger *zap.Logger) IVRService {
	return &IVRServiceImpl{
		Repo:   repo,
		Events: dispatcher,
		Logger: logger,
		Now:    utils.Now,
	}
}

// LogCall records a call. Referenced customers and tickets are not checked.
func (s *IVRServiceImpl) LogCall(ctx context.Context, req LogCallRequest) (primitive.ObjectID, error) {
	phone := utils.OptionalString(req.PhoneNumber)
	if phone == nil {
		return primitive.NilObjectID, utils.NewRequiredFieldError("phone_number")
	}

	duration, err := parseDuration(req.CallDuration)
	if err != nil {
		return primitive.NilObjectID, err
	}

	callType := utils.OptionalString(req.CallType)
	if callType == nil {
		return primitive.NilObjectID, utils.NewRequiredFieldError("call_type")
	}

	customerID, err := optionalObjectID("customer_id", req.CustomerID)
	if err != nil {
		return primitive.NilObjectID, err
	}
	ticketID, err := optionalObjectID("ticket_id", req.TicketID)
	if err != nil {
		return primitive.NilObjectID, err
	}

	call := &Call{
		CustomerID:   customerID,
		TicketID:     ticketID,
		PhoneNumber:  *phone,
		CallDuration: duration,
		CallType:     *callType,
		Notes:        utils.OptionalString(req.Notes),
		CreatedAt:    s.Now(),
	}
	if err := s.Repo.Create(ctx, call); err != nil {
		return primitive.NilObjectID, utils.NewStoreError("Failed to log IVR call", err)
	}

	s.Logger.Info("IVR call logged",
		zap.String("call_id", call.ID.Hex()),
		zap.String("call_type", call.CallType),
	)

	if s.Events != nil {
		payload := events.IVRCallLoggedPayload{
			CallID:      call.ID.Hex(),
			PhoneNumber: call.PhoneNumber,
			CallType:    call.CallType,
		}
		var ticketHex string
		if customerID != nil {
			hex := customerID.Hex()
			payload.CustomerID = &hex
		}
		if ticketID != nil {
			ticketHex = ticketID.Hex()
		}
		_ = s.Events.Publish(ctx, events.NewEvent(events.EventIVRCallLogged, ticketHex, payload))
	}

	return call.ID, nil
}

// parseDuration accepts a JSON number or a numeric string.
func parseDuration(raw interface{}) (float64, error) {
	var value float64
	switch v := raw.(type) {
	case nil:
		return 0, utils.NewRequiredFieldError("call_duration")
	case float64:
		value = v
	case json.Number:
		parsed, err := v.Float64()
		if err != nil {
			return 0, utils.NewValidationError("call_duration must be a number")
		}
		value = parsed
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return 0, utils.NewRequiredFieldError("call_duration")
		}
		parsed, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return 0, utils.NewValidationError("call_duration must be a number")
		}
		value = parsed
	default:
		return 0, utils.NewValidationError("call_duration must be a number")
	}

	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, utils.NewValidationError("call_duration must be a number")
	}
	return value, nil
}

func optionalObjectID(field, raw string) (*primitive.ObjectID, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	oid, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return nil, utils.NewValidationError("Invalid " + field)
	}
	return &oid, nil
}
