package system

import (
	"context"
	"encoding/json"
	"sync"

	"go-support/internal/events"

	"github.com/gofiber/contrib/websocket"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const clientBuffer = 32

// WebSocketController fans ticket events out to connected dashboards.
type WebSocketController struct {
	mu      sync.RWMutex
	clients map[string]chan []byte
	logger  *zap.Logger
}

func NewWebSocketController(dispatcher events.Dispatcher, logger *zap.Logger) *WebSocketController {
	h := &WebSocketController{
		clients: make(map[string]chan []byte),
		logger:  logger,
	}
	for _, eventType := range events.AllEventTypes {
		dispatcher.Subscribe(eventType, h.Broadcast)
	}
	return h
}

// Broadcast queues the event for every client. Clients that are not
// keeping up miss it.
func (h *WebSocketController) Broadcast(_ context.Context, event events.Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for id, send := range h.clients {
		select {
		case send <- data:
		default:
			h.logger.Warn("websocket client too slow, dropping event",
				zap.String("client_id", id),
				zap.String("event_type", string(event.Type)),
			)
		}
	}
	return nil
}

func (h *WebSocketController) register() (string, chan []byte) {
	id := uuid.NewString()
	send := make(chan []byte, clientBuffer)

	h.mu.Lock()
	h.clients[id] = send
	h.mu.Unlock()
	return id, send
}

func (h *WebSocketController) unregister(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if send, ok := h.clients[id]; ok {
		delete(h.clients, id)
		close(send)
	}
}

// ClientCount reports the connected clients.
func (h *WebSocketController) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// HandleWebSocket streams events until the client goes away. Incoming
// messages are read only to notice the close.
func (h *WebSocketController) HandleWebSocket(c *websocket.Conn) {
	id, send := h.register()
	defer h.unregister(id)
	h.logger.Debug("websocket client connected", zap.String("client_id", id))

	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := c.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case msg, ok := <-send:
			if !ok {
				return
			}
			if err := c.WriteMessage(websocket.TextMessage, msg); err != nil {
				h.logger.Debug("websocket write failed", zap.String("client_id", id), zap.Error(err))
				return
			}
		case <-closed:
			h.logger.Debug("websocket client disconnected", zap.String("client_id", id))
			return
		}
	}
}
