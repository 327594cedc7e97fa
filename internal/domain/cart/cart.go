package cart

import (
	"time"

	"github.com/google/uuid"
	"github.com/stylehub/backend/internal/domain/shared"
)

// Item represents a product entry in a shopping cart
type Item struct {
	ID        uuid.UUID
	CartID    uuid.UUID
	ProductID uuid.UUID
	Quantity  int
}

// Cart represents an account's shopping cart aggregate root.
// One cart per account; emptied on checkout.
type Cart struct {
	shared.BaseAggregateRoot
	AccountID uuid.UUID
	Items     []Item
}

// NewCart creates an empty cart for an account
func NewCart(accountID uuid.UUID) (*Cart, error) {
	if accountID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ACCOUNT", "Cart account ID cannot be empty")
	}
	return &Cart{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		AccountID:         accountID,
		Items:             []Item{},
	}, nil
}

// AddItem adds a product or bumps its quantity if already present
func (c *Cart) AddItem(productID uuid.UUID, quantity int) error {
	if productID == uuid.Nil {
		return shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items[i].Quantity += quantity
			c.UpdatedAt = time.Now()
			return nil
		}
	}
	c.Items = append(c.Items, Item{
		ID:        uuid.New(),
		CartID:    c.ID,
		ProductID: productID,
		Quantity:  quantity,
	})
	c.UpdatedAt = time.Now()
	return nil
}

// SetItemQuantity replaces the quantity of an existing cart line
func (c *Cart) SetItemQuantity(productID uuid.UUID, quantity int) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items[i].Quantity = quantity
			c.UpdatedAt = time.Now()
			return nil
		}
	}
	return shared.ErrNotFound
}

// RemoveItem drops a product from the cart
func (c *Cart) RemoveItem(productID uuid.UUID) error {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			c.UpdatedAt = time.Now()
			return nil
		}
	}
	return shared.ErrNotFound
}

// Clear removes every item from the cart
func (c *Cart) Clear() {
	c.Items = []Item{}
	c.UpdatedAt = time.Now()
}

// IsEmpty reports whether the cart has no items
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}
