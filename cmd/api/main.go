package main

import (
	"go-support/internal/features/stats"
	"go-support/internal/server"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

// @title           go-support API
// @version         1.0
// @description     Support ticketing backend: customers, tickets, comments and IVR call logs.

// @contact.name    API Support
// @contact.email   support@example.com

// @license.name    Apache 2.0
// @license.url     http://www.apache.org/licenses/LICENSE-2.0.html

// @host            localhost:8080
// @BasePath        /
func main() {
	app := fx.New(
		server.Module,
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log}
		}),
		fx.Invoke(
			server.StartServer,
			stats.RegisterScheduler,
		),
	)

	app.Run()
}
