// Package scheduler runs the periodic order auto-transition sweep.
package scheduler

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	orderapp "github.com/stylehub/backend/internal/application/order"
	"github.com/stylehub/backend/internal/infrastructure/config"
)

// Scheduler errors
var (
	ErrSchedulerNotRunning = errors.New("scheduler is not running")
	ErrInvalidCronSpec     = errors.New("invalid cron spec")
)

// Sweeper is the unit of work the scheduler fires on each tick
type Sweeper interface {
	RunSweep(ctx context.Context) orderapp.SweepSummary
}

// SweepScheduler fires the order auto-transition sweep on a cron schedule.
// Overlapping runs are skipped: if a sweep is still in progress when the
// next tick fires, that tick is a no-op.
type SweepScheduler struct {
	cfg     config.TransitionConfig
	sweeper Sweeper
	logger  *zap.Logger

	cron    *cron.Cron
	entryID cron.EntryID

	mu        sync.Mutex
	isRunning bool
	sweeping  atomic.Bool
	lastRunAt *time.Time
}

// NewSweepScheduler creates a new SweepScheduler
func NewSweepScheduler(cfg config.TransitionConfig, sweeper Sweeper, logger *zap.Logger) *SweepScheduler {
	return &SweepScheduler{
		cfg:     cfg,
		sweeper: sweeper,
		logger:  logger,
	}
}

// Start registers the cron entry and starts the scheduler
func (s *SweepScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.cfg.Enabled {
		s.logger.Info("Order transition scheduler disabled by configuration")
		return nil
	}
	if s.isRunning {
		return nil
	}

	s.cron = cron.New()
	entryID, err := s.cron.AddFunc(s.cfg.CronSpec, func() {
		s.tick(ctx)
	})
	if err != nil {
		return ErrInvalidCronSpec
	}
	s.entryID = entryID

	s.cron.Start()
	s.isRunning = true

	s.logger.Info("Order transition scheduler started",
		zap.String("cron_spec", s.cfg.CronSpec),
		zap.Int("batch_limit", s.cfg.BatchLimit),
	)
	return nil
}

// Stop stops the scheduler and waits for an in-flight sweep to finish
func (s *SweepScheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = false
	cronStop := s.cron.Stop()
	s.mu.Unlock()

	select {
	case <-cronStop.Done():
		s.logger.Info("Order transition scheduler stopped")
		return nil
	case <-ctx.Done():
		s.logger.Warn("Order transition scheduler stop timed out")
		return ctx.Err()
	}
}

// TriggerManualRun runs one sweep outside the cron schedule. The overlap
// guard still applies.
func (s *SweepScheduler) TriggerManualRun() error {
	s.mu.Lock()
	running := s.isRunning
	s.mu.Unlock()

	if !running {
		return ErrSchedulerNotRunning
	}

	go s.tick(context.Background())
	return nil
}

// tick runs one guarded sweep. A panic inside the sweep must never take
// down the process.
func (s *SweepScheduler) tick(ctx context.Context) {
	if !s.sweeping.CompareAndSwap(false, true) {
		s.logger.Warn("Skipping transition sweep, previous run still in progress")
		return
	}
	defer s.sweeping.Store(false)

	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("Transition sweep panicked", zap.Any("panic", r))
		}
	}()

	now := time.Now()
	s.mu.Lock()
	s.lastRunAt = &now
	s.mu.Unlock()

	summary := s.sweeper.RunSweep(ctx)
	if len(summary.Failed) > 0 {
		s.logger.Warn("Transition sweep finished with failures",
			zap.Int("attempted", summary.Attempted),
			zap.Int("failed", len(summary.Failed)))
	}
}

// GetStatus returns the current status of the scheduler
func (s *SweepScheduler) GetStatus() map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()

	return map[string]any{
		"enabled":     s.cfg.Enabled,
		"is_running":  s.isRunning,
		"cron_spec":   s.cfg.CronSpec,
		"sweeping":    s.sweeping.Load(),
		"last_run_at": s.lastRunAt,
	}
}
