package server

import (
	"context"
	"fmt"
	"time"

	_ "go-support/docs" // registers the swagger document served by system.SwaggerApi
	"go-support/internal/cache"
	common_api "go-support/internal/common/api"
	"go-support/internal/config"
	"go-support/internal/database"
	"go-support/internal/events"
	"go-support/internal/features/agent"
	"go-support/internal/features/audit"
	"go-support/internal/features/customer"
	"go-support/internal/features/ivr"
	"go-support/internal/features/stats"
	"go-support/internal/features/system"
	"go-support/internal/features/ticket"
	"go-support/internal/logger"
	"go-support/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// NewFiberServer creates a new Fiber app instance
func NewFiberServer(cfg *config.Config, log *zap.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               cfg.AppId,
		DisableStartupMessage: true,
		ErrorHandler:          middleware.ErrorHandler(log),
	})

	app.Use(recover.New(recover.Config{EnableStackTrace: !cfg.IsProduction()}))
	app.Use(middleware.CORSMiddleware(cfg))
	app.Use(middleware.RequestLogger(log))
	app.Use(middleware.Timeout(cfg.RequestTimeout()))

	return app
}

// AsRoute is a helper function to reduce boilerplate.
// It tags the constructor so Fx knows to add it to the "routes" group.
func AsRoute(f any) any {
	return fx.Annotate(
		f,
		fx.As(new(common_api.Route)),
		fx.ResultTags(`group:"routes"`),
	)
}

// RegisterAllRoutes takes the group "routes" (slice of interfaces)
// and calls Setup() on each one.
func RegisterAllRoutes(app *fiber.App, routes []common_api.Route, log *zap.Logger) {
	for _, route := range routes {
		log.Debug("Setting up routes", zap.String("api", fmt.Sprintf("%T", route)))
		route.Setup(app)
	}
	log.Info("Routes registered", zap.Int("count", len(routes)))
}

// RegisterAllRoutesWithAnnotation wraps RegisterAllRoutes with fx annotations
var RegisterAllRoutesWithAnnotation = fx.Annotate(
	RegisterAllRoutes,
	fx.ParamTags(``, `group:"routes"`, ``),
)

type indexer interface {
	EnsureIndexes(ctx context.Context) error
}

// InitializeIndexes ensures that necessary database indexes are created
func InitializeIndexes(
	lc fx.Lifecycle,
	log *zap.Logger,
	customerRepo customer.CustomerRepository,
	ticketRepo ticket.TicketRepository,
	commentRepo ticket.TicketCommentRepository,
) {
	repos := map[string]indexer{
		"customers":       customerRepo,
		"tickets":         ticketRepo,
		"ticket_comments": commentRepo,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				defer cancel()

				for name, repo := range repos {
					if err := repo.EnsureIndexes(ctx); err != nil {
						log.Error("Failed to ensure indexes", zap.String("collection", name), zap.Error(err))
					}
				}
			}()
			return nil
		},
	})
}

// Module is the wiring shared by the long-running server and the
// serverless handler.
var Module = fx.Options(
	fx.Provide(
		config.LoadConfig,
		database.NewDatabase,
		logger.NewLogger,
		NewFiberServer,
		cache.NewCache,
		events.NewInMemoryDispatcher,

		// Repositories
		customer.NewCustomerRepository,
		agent.NewAgentRepository,
		ticket.NewTicketRepository,
		ticket.NewTicketCommentRepository,
		ivr.NewCallRepository,
		audit.NewAuditRepository,
		stats.NewSnapshotRepository,

		// Services
		customer.NewCustomerService,
		agent.NewAgentService,
		audit.NewAuditService,
		ticket.NewTicketService,
		ivr.NewIVRService,
		stats.NewStatsService,
		stats.NewScheduler,

		// Controllers
		customer.NewCustomerController,
		agent.NewAgentController,
		ticket.NewTicketController,
		ivr.NewIVRController,
		audit.NewAuditController,
		stats.NewStatsController,
		system.NewWebSocketController,

		// Routes
		AsRoute(system.NewHealthApi),
		AsRoute(system.NewSwaggerApi),
		AsRoute(system.NewWebSocketApi),
		AsRoute(customer.NewCustomerApi),
		AsRoute(agent.NewAgentApi),
		AsRoute(ticket.NewTicketApi),
		AsRoute(ivr.NewIVRApi),
		AsRoute(audit.NewAuditApi),
		AsRoute(stats.NewStatsApi),
	),
	fx.Invoke(
		RegisterAllRoutesWithAnnotation,
		InitializeIndexes,
	),
)

// StartServer creates a lifecycle hook to start Fiber in a goroutine
// and shut it down when the app exits.
func StartServer(lc fx.Lifecycle, shutdowner fx.Shutdowner, app *fiber.App, cfg *config.Config, log *zap.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				addr := fmt.Sprintf(":%s", cfg.Port)
				log.Info("HTTP server listening", zap.String("addr", addr))
				if err := app.Listen(addr); err != nil {
					log.Error("Server failed", zap.Error(err))
					_ = shutdowner.Shutdown(fx.ExitCode(1))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return app.ShutdownWithContext(ctx)
		},
	})
}
