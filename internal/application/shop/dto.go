package shop

import (
	"time"

	"github.com/google/uuid"

	"github.com/stylehub/backend/internal/domain/shop"
)

// CreateShopRequest represents a request to open a new shop
type CreateShopRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=100"`
	Description string `json:"description" binding:"max=2000"`
}

// UpdateShopRequest represents a request to update a shop profile
type UpdateShopRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=100"`
	Description string `json:"description" binding:"max=2000"`
	LogoURL     string `json:"logo_url" binding:"omitempty,url"`
	CoverURL    string `json:"cover_url" binding:"omitempty,url"`
}

// ShopListFilter represents query parameters for listing shops
type ShopListFilter struct {
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
	Status   string `form:"status"`
	Search   string `form:"search"`
	SortBy   string `form:"sort_by"`
	SortDir  string `form:"sort_dir"`
}

// ShopResponse represents a shop in API responses
type ShopResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	LogoURL     string    `json:"logo_url"`
	CoverURL    string    `json:"cover_url"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	AccountID   uuid.UUID `json:"account_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ToShopResponse converts a domain Shop to ShopResponse
func ToShopResponse(s *shop.Shop) ShopResponse {
	return ShopResponse{
		ID:          s.ID,
		Name:        s.Name,
		LogoURL:     s.LogoURL,
		CoverURL:    s.CoverURL,
		Description: s.Description,
		Status:      string(s.Status),
		AccountID:   s.AccountID,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}
