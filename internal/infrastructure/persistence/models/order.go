package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stylehub/backend/internal/domain/order"
)

// OrderModel is the persistence model for the Order aggregate root.
type OrderModel struct {
	AggregateModel
	OrderCode       string           `gorm:"type:varchar(50);not null;uniqueIndex"`
	Status          order.Status     `gorm:"type:varchar(20);not null;default:'pending';index:idx_orders_status_changed,priority:1"`
	TotalAmount     decimal.Decimal  `gorm:"type:decimal(18,4);not null;default:0"`
	AddressLine     string           `gorm:"type:varchar(500);not null"`
	ReceiverName    string           `gorm:"type:varchar(100);not null"`
	Phone           string           `gorm:"type:varchar(20);not null"`
	Note            string           `gorm:"type:varchar(500)"`
	AccountID       uuid.UUID        `gorm:"type:uuid;not null;index"`
	ShopID          uuid.UUID        `gorm:"type:uuid;not null;index"`
	Items           []OrderItemModel `gorm:"foreignKey:OrderID;references:ID"`
	StatusChangedAt time.Time        `gorm:"not null;index:idx_orders_status_changed,priority:2"`
	DeliveredAt     *time.Time
	CancelReason    string `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (OrderModel) TableName() string {
	return "orders"
}

// ToDomain converts the persistence model to a domain Order entity.
func (m *OrderModel) ToDomain() *order.Order {
	o := &order.Order{
		OrderCode:       m.OrderCode,
		Status:          m.Status,
		TotalAmount:     m.TotalAmount,
		AddressLine:     m.AddressLine,
		ReceiverName:    m.ReceiverName,
		Phone:           m.Phone,
		Note:            m.Note,
		AccountID:       m.AccountID,
		ShopID:          m.ShopID,
		Items:           make([]order.Item, len(m.Items)),
		StatusChangedAt: m.StatusChangedAt,
		DeliveredAt:     m.DeliveredAt,
		CancelReason:    m.CancelReason,
	}
	for i, item := range m.Items {
		o.Items[i] = *item.ToDomain()
	}
	m.PopulateAggregateRoot(&o.BaseAggregateRoot)
	return o
}

// FromDomain populates the persistence model from a domain Order entity.
func (m *OrderModel) FromDomain(o *order.Order) {
	m.FromDomainAggregateRoot(o.BaseAggregateRoot)
	m.OrderCode = o.OrderCode
	m.Status = o.Status
	m.TotalAmount = o.TotalAmount
	m.AddressLine = o.AddressLine
	m.ReceiverName = o.ReceiverName
	m.Phone = o.Phone
	m.Note = o.Note
	m.AccountID = o.AccountID
	m.ShopID = o.ShopID
	m.StatusChangedAt = o.StatusChangedAt
	m.DeliveredAt = o.DeliveredAt
	m.CancelReason = o.CancelReason
	m.Items = make([]OrderItemModel, len(o.Items))
	for i, item := range o.Items {
		m.Items[i] = *OrderItemModelFromDomain(&item)
	}
}

// OrderModelFromDomain creates a new persistence model from a domain Order entity.
func OrderModelFromDomain(o *order.Order) *OrderModel {
	m := &OrderModel{}
	m.FromDomain(o)
	return m
}

// OrderItemModel is the persistence model for the order Item entity.
type OrderItemModel struct {
	ID           uuid.UUID       `gorm:"type:uuid;primary_key"`
	OrderID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID    uuid.UUID       `gorm:"type:uuid;not null"`
	ProductName  string          `gorm:"type:varchar(200);not null"`
	Quantity     int             `gorm:"not null"`
	PriceAtOrder decimal.Decimal `gorm:"type:decimal(18,4);not null"`
}

// TableName returns the table name for GORM
func (OrderItemModel) TableName() string {
	return "order_items"
}

// ToDomain converts the persistence model to a domain order Item entity.
func (m *OrderItemModel) ToDomain() *order.Item {
	return &order.Item{
		ID:           m.ID,
		OrderID:      m.OrderID,
		ProductID:    m.ProductID,
		ProductName:  m.ProductName,
		Quantity:     m.Quantity,
		PriceAtOrder: m.PriceAtOrder,
	}
}

// FromDomain populates the persistence model from a domain order Item entity.
func (m *OrderItemModel) FromDomain(i *order.Item) {
	m.ID = i.ID
	m.OrderID = i.OrderID
	m.ProductID = i.ProductID
	m.ProductName = i.ProductName
	m.Quantity = i.Quantity
	m.PriceAtOrder = i.PriceAtOrder
}

// OrderItemModelFromDomain creates a new persistence model from a domain order Item entity.
func OrderItemModelFromDomain(i *order.Item) *OrderItemModel {
	m := &OrderItemModel{}
	m.FromDomain(i)
	return m
}
