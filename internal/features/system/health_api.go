package system

import (
	"context"
	"time"

	"go-support/internal/cache"
	"go-support/internal/database"

	"github.com/gofiber/fiber/v2"
)

const readinessTimeout = 2 * time.Second

// Pinger reports whether a backing service is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthApi struct {
	mongo Pinger
	cache cache.Cache
}

func NewHealthApi(db *database.MongodbDB, c cache.Cache) *HealthApi {
	return &HealthApi{mongo: db, cache: c}
}

// Setup registers health check routes
func (h *HealthApi) Setup(app *fiber.App) {
	app.Get("/health", h.HealthCheck)
	app.Get("/health/ready", h.ReadinessCheck)
}

// HealthCheck godoc
// @Summary      Health Check
// @Description  Check if the server is up
// @Tags         health
// @Produce      plain
// @Success      200  {string}  string  "OK"
// @Router       /health [get]
func (h *HealthApi) HealthCheck(c *fiber.Ctx) error {
	return c.SendString("OK")
}

// ReadinessCheck godoc
// @Summary      Readiness Check
// @Description  Ping MongoDB and, when configured, Redis
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      503  {object}  map[string]interface{}
// @Router       /health/ready [get]
func (h *HealthApi) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), readinessTimeout)
	defer cancel()

	checks := fiber.Map{}
	ready := true

	if err := h.mongo.Ping(ctx); err != nil {
		checks["mongodb"] = err.Error()
		ready = false
	} else {
		checks["mongodb"] = "ok"
	}

	switch {
	case h.cache == nil || !h.cache.Enabled():
		checks["redis"] = "disabled"
	case h.cache.Ping(ctx) != nil:
		checks["redis"] = "unreachable"
		ready = false
	default:
		checks["redis"] = "ok"
	}

	status := fiber.StatusOK
	if !ready {
		status = fiber.StatusServiceUnavailable
	}
	return c.Status(status).JSON(fiber.Map{
		"ready":  ready,
		"checks": checks,
	})
}
