package order

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stylehub/backend/internal/domain/shared"
)

// Repository defines persistence operations for orders
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)
	FindByAccount(ctx context.Context, accountID uuid.UUID, filter shared.Filter) ([]Order, error)
	FindByShop(ctx context.Context, shopID uuid.UUID, filter shared.Filter) ([]Order, error)
	CountByAccount(ctx context.Context, accountID uuid.UUID, filter shared.Filter) (int64, error)
	CountByShop(ctx context.Context, shopID uuid.UUID, filter shared.Filter) (int64, error)
	CountByShopAndStatus(ctx context.Context, shopID uuid.UUID, status Status) (int64, error)
	// FindStaleInStatus returns orders sitting in the given status whose
	// last status change is at or before the cutoff.
	FindStaleInStatus(ctx context.Context, status Status, cutoff time.Time, limit int) ([]Order, error)
	Save(ctx context.Context, order *Order) error
	// UpdateStatus performs the atomic per-row status move used by the
	// auto-transition sweep. It fails with ErrConcurrencyConflict when the
	// order is no longer in the expected status.
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to Status, changedAt time.Time) error
}
