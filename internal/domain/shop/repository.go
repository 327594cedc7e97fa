package shop

import (
	"context"

	"github.com/google/uuid"
	"github.com/stylehub/backend/internal/domain/shared"
)

// Repository defines persistence operations for shops
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Shop, error)
	FindByAccountID(ctx context.Context, accountID uuid.UUID) (*Shop, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Shop, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	Save(ctx context.Context, shop *Shop) error
}
