package service

import (
	"context"
	"time"

	"go.uber.org/zap"
)

type stagingSweeper interface {
	Sweep(now time.Time, ttl time.Duration) (int, error)
}

// RetentionService reclaims staged uploads that were never confirmed. It
// sweeps once at startup and then on a fixed interval until its context is
// cancelled.
type RetentionService struct {
	store    stagingSweeper
	metrics  *MetricsService
	logger   *zap.Logger
	ttl      time.Duration
	interval time.Duration
}

// NewRetentionService constructs the sweeper. Zero ttl defaults to 30 days,
// zero interval to 24 hours.
func NewRetentionService(store stagingSweeper, metrics *MetricsService, logger *zap.Logger, ttl, interval time.Duration) *RetentionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if ttl <= 0 {
		ttl = 30 * 24 * time.Hour
	}
	if interval <= 0 {
		interval = 24 * time.Hour
	}
	return &RetentionService{
		store:    store,
		metrics:  metrics,
		logger:   logger,
		ttl:      ttl,
		interval: interval,
	}
}

// Run blocks, sweeping immediately and then every interval, until ctx is
// cancelled.
func (s *RetentionService) Run(ctx context.Context) {
	s.SweepOnce()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.SweepOnce()
		}
	}
}

// SweepOnce performs a single reclamation pass. Failures are logged, never
// fatal.
func (s *RetentionService) SweepOnce() {
	removed, err := s.store.Sweep(time.Now().UTC(), s.ttl)
	if err != nil {
		s.logger.Error("staged upload sweep failed", zap.Error(err))
	}
	if removed > 0 {
		s.logger.Info("staged uploads reclaimed", zap.Int("removed", removed))
	}
	s.metrics.ObserveStagedSwept(removed)
}
