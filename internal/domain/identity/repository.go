package identity

import (
	"context"

	"github.com/google/uuid"
	"github.com/stylehub/backend/internal/domain/shared"
)

// AccountRepository defines persistence operations for accounts
type AccountRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Account, error)
	FindByUsername(ctx context.Context, username string) (*Account, error)
	FindByPhoneNumber(ctx context.Context, phoneNumber string) (*Account, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Account, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	Save(ctx context.Context, account *Account) error
	Delete(ctx context.Context, id uuid.UUID) error
}
