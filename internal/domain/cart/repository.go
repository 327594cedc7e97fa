package cart

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines persistence operations for carts
type Repository interface {
	FindByAccountID(ctx context.Context, accountID uuid.UUID) (*Cart, error)
	Save(ctx context.Context, cart *Cart) error
	Delete(ctx context.Context, id uuid.UUID) error
}
