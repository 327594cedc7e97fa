package order

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/stylehub/backend/internal/domain/order"
	"github.com/stylehub/backend/internal/domain/shared"
	"github.com/stylehub/backend/internal/infrastructure/config"
)

// SweepSummary reports the outcome of one auto-transition sweep
type SweepSummary struct {
	Attempted int
	Succeeded int
	Skipped   int
	Failed    []uuid.UUID
	Duration  time.Duration
}

// AutoTransitionService advances stale orders one step through the
// fulfillment pipeline. Each status has its own dwell-time threshold; an
// order sitting in a status longer than its threshold is moved to the next
// status. Terminal orders are never touched.
type AutoTransitionService struct {
	orders order.Repository
	cfg    config.TransitionConfig
	logger *zap.Logger
	now    func() time.Time
}

// NewAutoTransitionService creates a new auto-transition service
func NewAutoTransitionService(orders order.Repository, cfg config.TransitionConfig, logger *zap.Logger) *AutoTransitionService {
	return &AutoTransitionService{
		orders: orders,
		cfg:    cfg,
		logger: logger,
		now:    time.Now,
	}
}

// thresholds maps each sweepable status to its dwell-time threshold,
// in pipeline order
func (s *AutoTransitionService) thresholds() []struct {
	status order.Status
	after  time.Duration
} {
	return []struct {
		status order.Status
		after  time.Duration
	}{
		{order.StatusPending, s.cfg.PendingAfter},
		{order.StatusConfirmed, s.cfg.ConfirmAfter},
		{order.StatusPacking, s.cfg.PackingAfter},
		{order.StatusShipping, s.cfg.ShipAfter},
		{order.StatusDelivered, s.cfg.DeliverAfter},
	}
}

// RunSweep performs one full sweep across all sweepable statuses. It
// never fails: per-order errors are collected into the returned summary
// and a cancelled context cuts the sweep short with whatever was done so
// far.
func (s *AutoTransitionService) RunSweep(ctx context.Context) SweepSummary {
	start := s.now()
	summary := SweepSummary{}

	for _, t := range s.thresholds() {
		if t.after <= 0 {
			continue
		}
		if ctx.Err() != nil {
			break
		}
		s.sweepStatus(ctx, t.status, t.after, &summary)
	}

	summary.Duration = s.now().Sub(start)
	s.logger.Info("Transition sweep finished",
		zap.Int("attempted", summary.Attempted),
		zap.Int("succeeded", summary.Succeeded),
		zap.Int("skipped", summary.Skipped),
		zap.Int("failed", len(summary.Failed)),
		zap.Duration("duration", summary.Duration))

	return summary
}

func (s *AutoTransitionService) sweepStatus(ctx context.Context, status order.Status, after time.Duration, summary *SweepSummary) {
	next, ok := status.Next()
	if !ok {
		return
	}

	cutoff := s.now().Add(-after)
	stale, err := s.orders.FindStaleInStatus(ctx, status, cutoff, s.cfg.BatchLimit)
	if err != nil {
		s.logger.Error("Failed to load stale orders",
			zap.String("status", string(status)),
			zap.Error(err))
		return
	}

	for i := range stale {
		o := &stale[i]
		summary.Attempted++

		err := s.orders.UpdateStatus(ctx, o.ID, status, next, s.now())
		switch {
		case err == nil:
			summary.Succeeded++
		case errors.Is(err, shared.ErrConcurrencyConflict):
			// Someone moved the order between the query and the update.
			summary.Skipped++
		default:
			summary.Failed = append(summary.Failed, o.ID)
			s.logger.Error("Failed to advance order",
				zap.String("order_id", o.ID.String()),
				zap.String("from", string(status)),
				zap.String("to", string(next)),
				zap.Error(err))
		}
	}
}
