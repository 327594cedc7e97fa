package cart

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stylehub/backend/internal/domain/cart"
	"github.com/stylehub/backend/internal/domain/catalog"
)

// AddItemRequest represents a request to add a product to the cart
type AddItemRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required,min=1,max=999"`
}

// UpdateItemRequest represents a request to change a cart line quantity
type UpdateItemRequest struct {
	Quantity int `json:"quantity" binding:"required,min=1,max=999"`
}

// CartItemResponse represents a cart line in API responses.
// Product details are joined in so the storefront can render the cart
// without extra lookups; Available is false when the product has been
// deactivated or removed since it was added.
type CartItemResponse struct {
	ProductID   uuid.UUID       `json:"product_id"`
	Quantity    int             `json:"quantity"`
	ProductName string          `json:"product_name,omitempty"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	ImageURL    string          `json:"image_url,omitempty"`
	Available   bool            `json:"available"`
}

// CartResponse represents a cart in API responses
type CartResponse struct {
	ID        uuid.UUID          `json:"id"`
	AccountID uuid.UUID          `json:"account_id"`
	Items     []CartItemResponse `json:"items"`
	Subtotal  decimal.Decimal    `json:"subtotal"`
	UpdatedAt time.Time          `json:"updated_at"`
}

// ToCartResponse converts a domain Cart to CartResponse, joining product
// details for lines whose product is still active
func ToCartResponse(c *cart.Cart, products map[uuid.UUID]*catalog.Product) CartResponse {
	items := make([]CartItemResponse, len(c.Items))
	subtotal := decimal.Zero
	for i, line := range c.Items {
		item := CartItemResponse{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
		}
		if p, ok := products[line.ProductID]; ok {
			item.ProductName = p.Name
			item.UnitPrice = p.BasePrice
			item.Available = true
			if len(p.Images) > 0 {
				item.ImageURL = p.Images[0]
			}
			subtotal = subtotal.Add(p.BasePrice.Mul(decimal.NewFromInt(int64(line.Quantity))))
		}
		items[i] = item
	}
	return CartResponse{
		ID:        c.ID,
		AccountID: c.AccountID,
		Items:     items,
		Subtotal:  subtotal,
		UpdatedAt: c.UpdatedAt,
	}
}
