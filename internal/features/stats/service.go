package stats

import (
	"context"
	"time"

	"go-support/internal/features/ticket"
	"go-support/pkg/utils"

	"go.uber.org/zap"
)

const (
	defaultSnapshots = 24
	maxSnapshots     = 168
)

// StatusCounter is the slice of the ticket store the stats need.
type StatusCounter interface {
	CountByStatus(ctx context.Context) ([]ticket.StatusCount, error)
}

type StatsService interface {
	Live(ctx context.Context) (*TicketStats, error)
	Snapshot(ctx context.Context) (*TicketStats, error)
	ListSnapshots(ctx context.Context, limit int64) ([]TicketStats, error)
}

type StatsServiceImpl struct {
	Counter   StatusCounter
	Snapshots SnapshotRepository
	Logger    *zap.Logger
	Now       func() time.Time
}

func NewStatsService(tickets ticket.TicketRepository, snapshots SnapshotRepository, logger *zap.Logger) StatsService {
	return &StatsServiceImpl{
		Counter:   tickets,
		Snapshots: snapshots,
		Logger:    logger,
		Now:       utils.Now,
	}
}

// Live counts tickets per status now. Statuses with no tickets are absent.
func (s *StatsServiceImpl) Live(ctx context.Context) (*TicketStats, error) {
	counts, err := s.Counter.CountByStatus(ctx)
	if err != nil {
		return nil, utils.NewStoreError("Failed to fetch ticket stats", err)
	}

	result := &TicketStats{Counts: make(map[string]int64, len(counts)), TakenAt: s.Now()}
	for _, c := range counts {
		result.Counts[c.Status] = c.Count
		result.Total += c.Count
	}
	return result, nil
}

// Snapshot stores the live counts.
func (s *StatsServiceImpl) Snapshot(ctx context.Context) (*TicketStats, error) {
	current, err := s.Live(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.Snapshots.Create(ctx, current); err != nil {
		return nil, utils.NewStoreError("Failed to store ticket stats", err)
	}

	s.Logger.Info("Ticket stats snapshot",
		zap.Int64("total", current.Total),
		zap.Any("counts", current.Counts),
	)
	return current, nil
}

func (s *StatsServiceImpl) ListSnapshots(ctx context.Context, limit int64) ([]TicketStats, error) {
	if limit < 1 {
		limit = defaultSnapshots
	}
	if limit > maxSnapshots {
		limit = maxSnapshots
	}
	snapshots, err := s.Snapshots.Latest(ctx, limit)
	if err != nil {
		return nil, utils.NewStoreError("Failed to fetch ticket stats", err)
	}
	return snapshots, nil
}
