package stats

import (
	"context"
	"fmt"
	"time"

	"go-support/internal/config"

	"github.com/robfig/cron/v3"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const snapshotTimeout = 30 * time.Second

// Scheduler takes ticket stats snapshots on a cron schedule.
type Scheduler struct {
	service  StatsService
	schedule string
	logger   *zap.Logger
	cron     *cron.Cron
}

func NewScheduler(service StatsService, cfg *config.Config, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		service:  service,
		schedule: cfg.TicketStatsSchedule,
		logger:   logger,
	}
}

// Start registers the snapshot job and starts the scheduler. An empty
// schedule disables it.
func (s *Scheduler) Start() error {
	if s.schedule == "" {
		s.logger.Info("Ticket stats snapshots disabled")
		return nil
	}

	s.cron = cron.New()
	if _, err := s.cron.AddFunc(s.schedule, s.run); err != nil {
		return fmt.Errorf("invalid TICKET_STATS_SCHEDULE %q: %w", s.schedule, err)
	}
	s.cron.Start()
	s.logger.Info("Ticket stats scheduler started", zap.String("schedule", s.schedule))
	return nil
}

// Stop waits for a running snapshot to finish.
func (s *Scheduler) Stop(ctx context.Context) error {
	if s.cron == nil {
		return nil
	}
	select {
	case <-s.cron.Stop().Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Scheduler) run() {
	ctx, cancel := context.WithTimeout(context.Background(), snapshotTimeout)
	defer cancel()

	if _, err := s.service.Snapshot(ctx); err != nil {
		s.logger.Error("Ticket stats snapshot failed", zap.Error(err))
	}
}

// RegisterScheduler ties the scheduler to the application lifecycle.
func RegisterScheduler(lc fx.Lifecycle, scheduler *Scheduler) {
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			return scheduler.Start()
		},
		OnStop: scheduler.Stop,
	})
}
