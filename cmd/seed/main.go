package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"

	"go-support/internal/config"
	"go-support/internal/database"
	"go-support/internal/features/agent"
	"go-support/internal/logger"
	"go-support/pkg/utils"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

var agentsPath = flag.String("agents", "cmd/seed/data/agents.json", "path to the agents JSON file")

type agentSeed struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	IsActive bool   `json:"is_active"`
}

// Seed upserts the sample agents by email, then stops the app.
func Seed(lc fx.Lifecycle, agentRepo agent.AgentRepository, logger *zap.Logger, shutdowner fx.Shutdowner) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				exitCode := 0
				defer func() {
					if err := shutdowner.Shutdown(fx.ExitCode(exitCode)); err != nil {
						logger.Error("Failed to shutdown", zap.Error(err))
					}
				}()

				data, err := os.ReadFile(*agentsPath)
				if err != nil {
					logger.Error("Failed to read agents file", zap.String("path", *agentsPath), zap.Error(err))
					exitCode = 1
					return
				}

				var seeds []agentSeed
				if err := json.Unmarshal(data, &seeds); err != nil {
					logger.Error("Failed to parse agents file", zap.Error(err))
					exitCode = 1
					return
				}

				now := utils.Now()
				for _, s := range seeds {
					a := &agent.Agent{
						Name:      s.Name,
						Email:     s.Email,
						Role:      s.Role,
						IsActive:  s.IsActive,
						CreatedAt: now,
					}
					if err := agentRepo.UpsertByEmail(context.Background(), a); err != nil {
						logger.Error("Failed to seed agent", zap.String("email", s.Email), zap.Error(err))
						exitCode = 1
						continue
					}
					logger.Info("Seeded agent", zap.String("email", s.Email), zap.Bool("active", s.IsActive))
				}
				logger.Info("Agent seeding complete", zap.Int("count", len(seeds)))
			}()
			return nil
		},
	})
}

func main() {
	flag.Parse()

	fx.New(
		fx.Provide(
			config.LoadConfig,
			database.NewDatabase,
			logger.NewLogger,
			agent.NewAgentRepository,
		),
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log}
		}),
		fx.Invoke(Seed),
	).Run()
}
