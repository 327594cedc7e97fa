package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stylehub/backend/internal/domain/shared"
)

// Attribute is a named variant axis such as "Color" or "Size". A global
// attribute (ShopID zero) is shared across the whole catalog; otherwise
// the attribute belongs to a single shop.
type Attribute struct {
	shared.BaseAggregateRoot
	Label  string
	ShopID uuid.UUID
}

// NewAttribute creates an attribute. A zero shopID makes it global.
func NewAttribute(shopID uuid.UUID, label string) (*Attribute, error) {
	if label == "" {
		return nil, shared.NewDomainError("INVALID_ATTRIBUTE", "Attribute label cannot be empty")
	}
	if len(label) > 100 {
		return nil, shared.NewDomainError("INVALID_ATTRIBUTE", "Attribute label cannot exceed 100 characters")
	}
	return &Attribute{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Label:             label,
		ShopID:            shopID,
	}, nil
}

// IsGlobal reports whether the attribute is shared across all shops
func (a *Attribute) IsGlobal() bool {
	return a.ShopID == uuid.Nil
}

// Rename changes the attribute label
func (a *Attribute) Rename(label string) error {
	if label == "" {
		return shared.NewDomainError("INVALID_ATTRIBUTE", "Attribute label cannot be empty")
	}
	if len(label) > 100 {
		return shared.NewDomainError("INVALID_ATTRIBUTE", "Attribute label cannot exceed 100 characters")
	}
	a.Label = label
	a.UpdatedAt = time.Now()
	return nil
}

// AttributeValue is one concrete value of an attribute ("Red", "M").
// PriceAdjustment shifts the product base price when a variant selects
// this value; it may be negative.
type AttributeValue struct {
	shared.BaseAggregateRoot
	AttributeID     uuid.UUID
	Value           string
	ImageURL        string
	PriceAdjustment decimal.Decimal
	ShopID          uuid.UUID
}

// NewAttributeValue creates a value for an attribute. A zero shopID makes
// the value visible to every shop using the attribute.
func NewAttributeValue(attributeID, shopID uuid.UUID, value, imageURL string, priceAdjustment decimal.Decimal) (*AttributeValue, error) {
	if attributeID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ATTRIBUTE", "Attribute ID cannot be empty")
	}
	if value == "" {
		return nil, shared.NewDomainError("INVALID_ATTRIBUTE_VALUE", "Attribute value cannot be empty")
	}
	if len(value) > 100 {
		return nil, shared.NewDomainError("INVALID_ATTRIBUTE_VALUE", "Attribute value cannot exceed 100 characters")
	}
	return &AttributeValue{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		AttributeID:       attributeID,
		Value:             value,
		ImageURL:          imageURL,
		PriceAdjustment:   priceAdjustment,
		ShopID:            shopID,
	}, nil
}
