package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/stylehub/backend/internal/domain/shared"
)

// ProductRepository defines persistence operations for products
type ProductRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)
	// FindActiveByIDs returns only currently active products among the given
	// IDs, in no particular order. Missing IDs are not an error.
	FindActiveByIDs(ctx context.Context, ids []uuid.UUID) ([]Product, error)
	FindByShop(ctx context.Context, shopID uuid.UUID, filter shared.Filter) ([]Product, error)
	FindActive(ctx context.Context, filter shared.Filter) ([]Product, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	CountByShop(ctx context.Context, shopID uuid.UUID) (int64, error)
	Save(ctx context.Context, product *Product) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// AttributeRepository defines persistence operations for attributes and
// their values
type AttributeRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Attribute, error)
	// FindForShop returns global attributes plus the shop's own.
	FindForShop(ctx context.Context, shopID uuid.UUID) ([]Attribute, error)
	Save(ctx context.Context, attribute *Attribute) error
	Delete(ctx context.Context, id uuid.UUID) error

	FindValueByID(ctx context.Context, id uuid.UUID) (*AttributeValue, error)
	FindValuesByIDs(ctx context.Context, ids []uuid.UUID) ([]AttributeValue, error)
	// FindValuesForShop returns an attribute's global values plus the
	// shop's own.
	FindValuesForShop(ctx context.Context, attributeID, shopID uuid.UUID) ([]AttributeValue, error)
	SaveValue(ctx context.Context, value *AttributeValue) error
	DeleteValue(ctx context.Context, id uuid.UUID) error
}

// VariantRepository defines persistence operations for product variants
type VariantRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Variant, error)
	FindByProduct(ctx context.Context, productID uuid.UUID) ([]Variant, error)
	Save(ctx context.Context, variant *Variant) error
	SaveAll(ctx context.Context, variants []*Variant) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByProduct(ctx context.Context, productID uuid.UUID) error
}
