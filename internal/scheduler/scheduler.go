package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/erazemk/garderoba/internal/wardrobe"
)

// Scheduler runs the periodic sweep of abandoned staging records.
type Scheduler struct {
	cron     *cron.Cron
	engine   *wardrobe.Engine
	schedule string
	ttl      time.Duration
	logger   *zap.Logger
}

// NewScheduler creates a new scheduler instance.
func NewScheduler(engine *wardrobe.Engine, schedule string, ttl time.Duration, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}

	// robfig/cron/v3 default parser is standard cron (5 fields: min, hour,
	// dom, month, dow) plus descriptors like @hourly.
	return &Scheduler{
		cron:     cron.New(),
		engine:   engine,
		schedule: schedule,
		ttl:      ttl,
		logger:   logger,
	}
}

// Start starts the scheduler.
func (s *Scheduler) Start() error {
	s.logger.Info("starting scheduler", zap.String("schedule", s.schedule), zap.Duration("ttl", s.ttl))

	if _, err := s.cron.AddFunc(s.schedule, s.reapStale); err != nil {
		return err
	}

	s.cron.Start()
	return nil
}

// Stop stops the scheduler.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	s.cron.Stop()
}

func (s *Scheduler) reapStale() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	removed, err := s.engine.ReapStale(ctx, s.ttl)
	if err != nil {
		s.logger.Error("failed to reap stale staging records", zap.Error(err))
		return
	}
	if removed > 0 {
		s.logger.Info("reaped stale staging records", zap.Int("count", removed))
	}
}
