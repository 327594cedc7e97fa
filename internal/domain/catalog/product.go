package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stylehub/backend/internal/domain/shared"
)

// Product represents a catalog product aggregate root.
// Auction-style variants from the storefront UI are collapsed into the
// base product here; price is the base price.
type Product struct {
	shared.BaseAggregateRoot
	Name        string
	Description string
	BasePrice   decimal.Decimal
	Images      []string `gorm:"serializer:json"`
	ShopID      uuid.UUID
	IsActive    bool
}

// NewProduct creates a new active product for a shop
func NewProduct(shopID uuid.UUID, name, description string, basePrice decimal.Decimal) (*Product, error) {
	if shopID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SHOP", "Product shop ID cannot be empty")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name cannot exceed 200 characters")
	}
	if basePrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Base price cannot be negative")
	}

	return &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Description:       description,
		BasePrice:         basePrice,
		Images:            []string{},
		ShopID:            shopID,
		IsActive:          true,
	}, nil
}

// Update updates the product's displayed information
func (p *Product) Update(name, description string, basePrice decimal.Decimal) error {
	if name == "" {
		return shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name cannot exceed 200 characters")
	}
	if basePrice.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Base price cannot be negative")
	}
	p.Name = name
	p.Description = description
	p.BasePrice = basePrice
	p.UpdatedAt = time.Now()
	return nil
}

// AddImage appends an image URL to the product gallery
func (p *Product) AddImage(url string) error {
	if url == "" {
		return shared.NewDomainError("INVALID_IMAGE", "Image URL cannot be empty")
	}
	for _, existing := range p.Images {
		if existing == url {
			return shared.NewDomainError("ALREADY_EXISTS", "Image already attached to product")
		}
	}
	p.Images = append(p.Images, url)
	p.UpdatedAt = time.Now()
	return nil
}

// RemoveImage detaches an image URL from the product gallery
func (p *Product) RemoveImage(url string) error {
	for i, existing := range p.Images {
		if existing == url {
			p.Images = append(p.Images[:i], p.Images[i+1:]...)
			p.UpdatedAt = time.Now()
			return nil
		}
	}
	return shared.ErrNotFound
}

// Activate makes the product visible and orderable
func (p *Product) Activate() {
	p.IsActive = true
	p.UpdatedAt = time.Now()
}

// Deactivate hides the product from the storefront and from search results
func (p *Product) Deactivate() {
	p.IsActive = false
	p.UpdatedAt = time.Now()
}
