package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stylehub/backend/internal/domain/catalog"
)

// CreateProductRequest represents a request to create a product
type CreateProductRequest struct {
	Name        string          `json:"name" binding:"required,min=1,max=200"`
	Description string          `json:"description" binding:"max=5000"`
	BasePrice   decimal.Decimal `json:"base_price" binding:"required"`
}

// UpdateProductRequest represents a request to update a product
type UpdateProductRequest struct {
	Name        string          `json:"name" binding:"required,min=1,max=200"`
	Description string          `json:"description" binding:"max=5000"`
	BasePrice   decimal.Decimal `json:"base_price" binding:"required"`
}

// ProductListFilter represents query parameters for listing products
type ProductListFilter struct {
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
	Search   string `form:"search"`
	SortBy   string `form:"sort_by"`
	SortDir  string `form:"sort_dir"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	BasePrice   decimal.Decimal `json:"base_price"`
	Images      []string        `json:"images"`
	ShopID      uuid.UUID       `json:"shop_id"`
	IsActive    bool            `json:"is_active"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// CreateAttributeRequest represents a request to create a variant attribute.
// Global is only honored for admins.
type CreateAttributeRequest struct {
	Label  string `json:"label" binding:"required,min=1,max=100"`
	Global bool   `json:"global"`
}

// AttributeValueRequest represents a request to add a value to an attribute
type AttributeValueRequest struct {
	Value           string          `json:"value" binding:"required,min=1,max=100"`
	ImageURL        string          `json:"image_url" binding:"omitempty,url"`
	PriceAdjustment decimal.Decimal `json:"price_adjustment"`
}

// AttributeValueResponse represents an attribute value in API responses
type AttributeValueResponse struct {
	ID              uuid.UUID       `json:"id"`
	Value           string          `json:"value"`
	ImageURL        string          `json:"image_url,omitempty"`
	PriceAdjustment decimal.Decimal `json:"price_adjustment"`
}

// AttributeResponse represents an attribute with its values
type AttributeResponse struct {
	ID     uuid.UUID                `json:"id"`
	Label  string                   `json:"label"`
	Global bool                     `json:"global"`
	Values []AttributeValueResponse `json:"values"`
}

// ToAttributeValueResponse converts a domain AttributeValue
func ToAttributeValueResponse(v *catalog.AttributeValue) AttributeValueResponse {
	return AttributeValueResponse{
		ID:              v.ID,
		Value:           v.Value,
		ImageURL:        v.ImageURL,
		PriceAdjustment: v.PriceAdjustment,
	}
}

// VariantSelectionInput pins one attribute to a value in variant requests
type VariantSelectionInput struct {
	AttributeID uuid.UUID `json:"attribute_id" binding:"required"`
	ValueID     uuid.UUID `json:"value_id" binding:"required"`
}

// AttributeOptionInput lists the candidate values for one attribute when
// generating combinations
type AttributeOptionInput struct {
	AttributeID uuid.UUID   `json:"attribute_id" binding:"required"`
	ValueIDs    []uuid.UUID `json:"value_ids" binding:"required,min=1"`
}

// GenerateVariantsRequest asks for the selection combinations not yet
// used by a product
type GenerateVariantsRequest struct {
	Options []AttributeOptionInput `json:"options" binding:"required,min=1,max=3,dive"`
}

// VariantCombination is one proposed selection set with its canonical key
type VariantCombination struct {
	VariantKey string                  `json:"variant_key"`
	Selections []VariantSelectionInput `json:"selections"`
}

// VariantInput describes one variant in a bulk-create request
type VariantInput struct {
	Selections []VariantSelectionInput `json:"selections" binding:"required,min=1,max=3,dive"`
	Stock      int                     `json:"stock" binding:"min=0"`
	Images     []string                `json:"images" binding:"omitempty,dive,url"`
}

// CreateVariantsRequest creates several variants for a product at once
type CreateVariantsRequest struct {
	Variants []VariantInput `json:"variants" binding:"required,min=1,dive"`
}

// UpdateVariantStockRequest replaces a variant's stock level
type UpdateVariantStockRequest struct {
	Stock *int `json:"stock" binding:"required,min=0"`
}

// VariantResponse represents a variant in API responses. Price is the
// product base price adjusted by the selected values.
type VariantResponse struct {
	ID         uuid.UUID               `json:"id"`
	ProductID  uuid.UUID               `json:"product_id"`
	VariantKey string                  `json:"variant_key"`
	Selections []VariantSelectionInput `json:"selections"`
	Stock      int                     `json:"stock"`
	Images     []string                `json:"images"`
	Price      decimal.Decimal         `json:"price"`
}

// ToProductResponse converts a domain Product to ProductResponse
func ToProductResponse(p *catalog.Product) ProductResponse {
	images := p.Images
	if images == nil {
		images = []string{}
	}
	return ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		BasePrice:   p.BasePrice,
		Images:      images,
		ShopID:      p.ShopID,
		IsActive:    p.IsActive,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
