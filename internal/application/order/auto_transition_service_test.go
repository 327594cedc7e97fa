package order

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/stylehub/backend/internal/domain/order"
	"github.com/stylehub/backend/internal/domain/shared"
	"github.com/stylehub/backend/internal/infrastructure/config"
)

func sweepConfig() config.TransitionConfig {
	return config.TransitionConfig{
		Enabled:      true,
		BatchLimit:   100,
		PendingAfter: 30 * time.Minute,
		ConfirmAfter: 12 * time.Hour,
		PackingAfter: 24 * time.Hour,
		ShipAfter:    48 * time.Hour,
		DeliverAfter: 7 * 24 * time.Hour,
	}
}

func staleOrder(t *testing.T, status order.Status) order.Order {
	t.Helper()
	o, err := order.NewOrder(newTestBuyerID(), createTestShop(t, newTestBuyerID()).ID, "addr", "name", "+33612345678", "")
	require.NoError(t, err)
	o.Status = status
	o.StatusChangedAt = time.Now().Add(-30 * 24 * time.Hour)
	return *o
}

func emptyStaleResults(repo *MockOrderRepository, except ...order.Status) {
	statuses := []order.Status{
		order.StatusPending,
		order.StatusConfirmed,
		order.StatusPacking,
		order.StatusShipping,
		order.StatusDelivered,
	}
	skip := make(map[order.Status]bool)
	for _, s := range except {
		skip[s] = true
	}
	for _, s := range statuses {
		if !skip[s] {
			repo.On("FindStaleInStatus", mock.Anything, s, mock.AnythingOfType("time.Time"), 100).
				Return([]order.Order{}, nil)
		}
	}
}

func TestAutoTransition_AdvancesOneStep(t *testing.T) {
	repo := new(MockOrderRepository)
	service := NewAutoTransitionService(repo, sweepConfig(), zap.NewNop())

	stale := staleOrder(t, order.StatusPending)
	repo.On("FindStaleInStatus", mock.Anything, order.StatusPending, mock.AnythingOfType("time.Time"), 100).
		Return([]order.Order{stale}, nil)
	emptyStaleResults(repo, order.StatusPending)

	repo.On("UpdateStatus", mock.Anything, stale.ID, order.StatusPending, order.StatusConfirmed, mock.AnythingOfType("time.Time")).
		Return(nil)

	summary := service.RunSweep(context.Background())
	assert.Equal(t, 1, summary.Attempted)
	assert.Equal(t, 1, summary.Succeeded)
	assert.Empty(t, summary.Failed)
	repo.AssertExpectations(t)
}

func TestAutoTransition_DeliveredCompletes(t *testing.T) {
	repo := new(MockOrderRepository)
	service := NewAutoTransitionService(repo, sweepConfig(), zap.NewNop())

	stale := staleOrder(t, order.StatusDelivered)
	repo.On("FindStaleInStatus", mock.Anything, order.StatusDelivered, mock.AnythingOfType("time.Time"), 100).
		Return([]order.Order{stale}, nil)
	emptyStaleResults(repo, order.StatusDelivered)

	repo.On("UpdateStatus", mock.Anything, stale.ID, order.StatusDelivered, order.StatusCompleted, mock.AnythingOfType("time.Time")).
		Return(nil)

	summary := service.RunSweep(context.Background())
	assert.Equal(t, 1, summary.Succeeded)
	repo.AssertExpectations(t)
}

func TestAutoTransition_TerminalStatusesNeverQueried(t *testing.T) {
	repo := new(MockOrderRepository)
	service := NewAutoTransitionService(repo, sweepConfig(), zap.NewNop())

	emptyStaleResults(repo)

	service.RunSweep(context.Background())

	repo.AssertNotCalled(t, "FindStaleInStatus", mock.Anything, order.StatusCompleted, mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "FindStaleInStatus", mock.Anything, order.StatusCancelled, mock.Anything, mock.Anything)
}

func TestAutoTransition_ConflictSkippedNotFailed(t *testing.T) {
	repo := new(MockOrderRepository)
	service := NewAutoTransitionService(repo, sweepConfig(), zap.NewNop())

	stale := staleOrder(t, order.StatusPending)
	repo.On("FindStaleInStatus", mock.Anything, order.StatusPending, mock.AnythingOfType("time.Time"), 100).
		Return([]order.Order{stale}, nil)
	emptyStaleResults(repo, order.StatusPending)

	// The seller moved the order between the query and the update.
	repo.On("UpdateStatus", mock.Anything, stale.ID, order.StatusPending, order.StatusConfirmed, mock.AnythingOfType("time.Time")).
		Return(shared.ErrConcurrencyConflict)

	// A conflict is not a sweep failure.
	summary := service.RunSweep(context.Background())
	assert.Equal(t, 1, summary.Skipped)
	assert.Empty(t, summary.Failed)
}

func TestAutoTransition_PartialFailureContinues(t *testing.T) {
	repo := new(MockOrderRepository)
	service := NewAutoTransitionService(repo, sweepConfig(), zap.NewNop())

	var stale []order.Order
	for i := 0; i < 5; i++ {
		stale = append(stale, staleOrder(t, order.StatusPending))
	}
	repo.On("FindStaleInStatus", mock.Anything, order.StatusPending, mock.AnythingOfType("time.Time"), 100).
		Return(stale, nil)
	emptyStaleResults(repo, order.StatusPending)

	// The second order fails; the remaining four must still be attempted.
	for i, o := range stale {
		call := repo.On("UpdateStatus", mock.Anything, o.ID, order.StatusPending, order.StatusConfirmed, mock.AnythingOfType("time.Time"))
		if i == 1 {
			call.Return(errors.New("connection reset"))
		} else {
			call.Return(nil)
		}
	}

	summary := service.RunSweep(context.Background())

	assert.Equal(t, 5, summary.Attempted)
	assert.Equal(t, 4, summary.Succeeded)
	require.Len(t, summary.Failed, 1)
	assert.Equal(t, stale[1].ID, summary.Failed[0])
	repo.AssertNumberOfCalls(t, "UpdateStatus", 5)
}

func TestAutoTransition_QueryUsesConfiguredCutoff(t *testing.T) {
	repo := new(MockOrderRepository)
	cfg := sweepConfig()
	service := NewAutoTransitionService(repo, cfg, zap.NewNop())

	fixed := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	service.now = func() time.Time { return fixed }

	repo.On("FindStaleInStatus", mock.Anything, order.StatusPending, fixed.Add(-cfg.PendingAfter), 100).
		Return([]order.Order{}, nil)
	repo.On("FindStaleInStatus", mock.Anything, order.StatusConfirmed, fixed.Add(-cfg.ConfirmAfter), 100).
		Return([]order.Order{}, nil)
	repo.On("FindStaleInStatus", mock.Anything, order.StatusPacking, fixed.Add(-cfg.PackingAfter), 100).
		Return([]order.Order{}, nil)
	repo.On("FindStaleInStatus", mock.Anything, order.StatusShipping, fixed.Add(-cfg.ShipAfter), 100).
		Return([]order.Order{}, nil)
	repo.On("FindStaleInStatus", mock.Anything, order.StatusDelivered, fixed.Add(-cfg.DeliverAfter), 100).
		Return([]order.Order{}, nil)

	service.RunSweep(context.Background())
	repo.AssertExpectations(t)
}

func TestAutoTransition_DisabledThresholdSkipped(t *testing.T) {
	repo := new(MockOrderRepository)
	cfg := sweepConfig()
	cfg.DeliverAfter = 0
	service := NewAutoTransitionService(repo, cfg, zap.NewNop())

	emptyStaleResults(repo, order.StatusDelivered)

	service.RunSweep(context.Background())
	repo.AssertNotCalled(t, "FindStaleInStatus", mock.Anything, order.StatusDelivered, mock.Anything, mock.Anything)
}
