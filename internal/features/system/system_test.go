package system

import (
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"go-support/internal/cache"
	"go-support/internal/events"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubPinger struct{ err error }

func (p stubPinger) Ping(context.Context) error { return p.err }

type downCache struct{ cache.NoopCache }

func (downCache) Enabled() bool              { return true }
func (downCache) Ping(context.Context) error { return errors.New("refused") }

func readiness(t *testing.T, api *HealthApi) (int, map[string]interface{}) {
	t.Helper()
	app := fiber.New()
	api.Setup(app)

	resp, err := app.Test(httptest.NewRequest("GET", "/health/ready", nil))
	require.NoError(t, err)
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body
}

func TestHealth(t *testing.T) {
	app := fiber.New()
	(&HealthApi{mongo: stubPinger{}, cache: cache.NoopCache{}}).Setup(app)

	resp, err := app.Test(httptest.NewRequest("GET", "/health", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
}

func TestReadiness(t *testing.T) {
	status, body := readiness(t, &HealthApi{mongo: stubPinger{}, cache: cache.NoopCache{}})
	assert.Equal(t, 200, status)
	assert.Equal(t, map[string]interface{}{"mongodb": "ok", "redis": "disabled"}, body["checks"])

	status, body = readiness(t, &HealthApi{mongo: stubPinger{err: errors.New("no reachable servers")}, cache: cache.NoopCache{}})
	assert.Equal(t, 503, status)
	assert.Equal(t, false, body["ready"])

	status, body = readiness(t, &HealthApi{mongo: stubPinger{}, cache: downCache{}})
	assert.Equal(t, 503, status)
	assert.Equal(t, "unreachable", body["checks"].(map[string]interface{})["redis"])
}

func TestWebSocketController_BroadcastsDispatchedEvents(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher(zap.NewNop())
	hub := NewWebSocketController(dispatcher, zap.NewNop())

	id, send := hub.register()
	assert.Equal(t, 1, hub.ClientCount())

	require.NoError(t, dispatcher.Publish(context.Background(), events.NewEvent(events.EventTicketCreated, "t1", nil)))

	var received events.Event
	require.NoError(t, json.Unmarshal(<-send, &received))
	assert.Equal(t, events.EventTicketCreated, received.Type)
	assert.Equal(t, "t1", received.TicketID)

	hub.unregister(id)
	assert.Equal(t, 0, hub.ClientCount())
	_, open := <-send
	assert.False(t, open)
}

func TestWebSocketController_DropsForSlowClients(t *testing.T) {
	hub := NewWebSocketController(events.NewInMemoryDispatcher(nil), zap.NewNop())
	_, send := hub.register()

	for i := 0; i < clientBuffer+5; i++ {
		require.NoError(t, hub.Broadcast(context.Background(), events.NewEvent(events.EventCommentAdded, "t", nil)))
	}
	assert.Len(t, send, clientBuffer)
}

func TestWebSocketRoute_RequiresUpgrade(t *testing.T) {
	app := fiber.New()
	NewWebSocketApi(NewWebSocketController(events.NewInMemoryDispatcher(nil), zap.NewNop())).Setup(app)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/ws", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUpgradeRequired, resp.StatusCode)
}
