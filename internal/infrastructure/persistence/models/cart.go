package models

import (
	"github.com/google/uuid"

	"github.com/stylehub/backend/internal/domain/cart"
)

// CartModel is the persistence model for the Cart aggregate root.
type CartModel struct {
	AggregateModel
	AccountID uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex"`
	Items     []CartItemModel `gorm:"foreignKey:CartID;references:ID"`
}

// TableName returns the table name for GORM
func (CartModel) TableName() string {
	return "carts"
}

// ToDomain converts the persistence model to a domain Cart entity.
func (m *CartModel) ToDomain() *cart.Cart {
	c := &cart.Cart{
		AccountID: m.AccountID,
		Items:     make([]cart.Item, len(m.Items)),
	}
	for i, item := range m.Items {
		c.Items[i] = *item.ToDomain()
	}
	m.PopulateAggregateRoot(&c.BaseAggregateRoot)
	return c
}

// FromDomain populates the persistence model from a domain Cart entity.
func (m *CartModel) FromDomain(c *cart.Cart) {
	m.FromDomainAggregateRoot(c.BaseAggregateRoot)
	m.AccountID = c.AccountID
	m.Items = make([]CartItemModel, len(c.Items))
	for i, item := range c.Items {
		m.Items[i] = *CartItemModelFromDomain(&item)
	}
}

// CartModelFromDomain creates a new persistence model from a domain Cart entity.
func CartModelFromDomain(c *cart.Cart) *CartModel {
	m := &CartModel{}
	m.FromDomain(c)
	return m
}

// CartItemModel is the persistence model for the cart Item entity.
type CartItemModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	CartID    uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;index"`
	Quantity  int       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (CartItemModel) TableName() string {
	return "cart_items"
}

// ToDomain converts the persistence model to a domain cart Item entity.
func (m *CartItemModel) ToDomain() *cart.Item {
	return &cart.Item{
		ID:        m.ID,
		CartID:    m.CartID,
		ProductID: m.ProductID,
		Quantity:  m.Quantity,
	}
}

// FromDomain populates the persistence model from a domain cart Item entity.
func (m *CartItemModel) FromDomain(i *cart.Item) {
	m.ID = i.ID
	m.CartID = i.CartID
	m.ProductID = i.ProductID
	m.Quantity = i.Quantity
}

// CartItemModelFromDomain creates a new persistence model from a domain cart Item entity.
func CartItemModelFromDomain(i *cart.Item) *CartItemModel {
	m := &CartItemModel{}
	m.FromDomain(i)
	return m
}
