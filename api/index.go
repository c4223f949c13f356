// Package handler exposes the API as a single serverless function.
package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"go-support/internal/server"
	"go-support/pkg/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"go.uber.org/fx"
)

const startTimeout = 15 * time.Second

var (
	// appOptions builds the *fiber.App served by Handler.
	appOptions = fx.Options(server.Module, fx.NopLogger)

	mu     sync.Mutex
	served http.HandlerFunc
)

// Handler serves one request. The first request on a warm instance builds
// the application; a failed build is retried by the next request.
func Handler(w http.ResponseWriter, r *http.Request) {
	h, err := load(r.Context())
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(utils.ErrorResponse{
			Error:   "Service unavailable",
			Details: err.Error(),
		})
		return
	}
	h(w, r)
}

func load(ctx context.Context) (http.HandlerFunc, error) {
	mu.Lock()
	defer mu.Unlock()

	if served != nil {
		return served, nil
	}

	var app *fiber.App
	fxApp := fx.New(appOptions, fx.Populate(&app))
	if err := fxApp.Err(); err != nil {
		return nil, err
	}

	startCtx, cancel := context.WithTimeout(ctx, startTimeout)
	defer cancel()
	if err := fxApp.Start(startCtx); err != nil {
		return nil, err
	}

	served = adaptor.FiberApp(app)
	return served, nil
}
