package order

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stylehub/backend/internal/domain/shared"
)

// Status represents the fulfillment status of an order
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusPacking   Status = "packing"
	StatusShipping  Status = "shipping"
	StatusDelivered Status = "delivered"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// forwardOrder is the fixed fulfillment pipeline; cancelled sits outside it
var forwardOrder = []Status{
	StatusPending,
	StatusConfirmed,
	StatusPacking,
	StatusShipping,
	StatusDelivered,
	StatusCompleted,
}

// IsValid checks if the status is a known Status
func (s Status) IsValid() bool {
	if s == StatusCancelled {
		return true
	}
	for _, st := range forwardOrder {
		if st == s {
			return true
		}
	}
	return false
}

// String returns the string representation of Status
func (s Status) String() string {
	return string(s)
}

// IsTerminal reports whether no further transition is possible
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// Next returns the successor status in the fulfillment pipeline.
// Terminal statuses have no successor.
func (s Status) Next() (Status, bool) {
	for i, st := range forwardOrder {
		if st == s && i+1 < len(forwardOrder) {
			return forwardOrder[i+1], true
		}
	}
	return "", false
}

// CanTransitionTo checks if the status can transition to the target status.
// Forward moves go exactly one step; cancellation is allowed from any
// status before delivery.
func (s Status) CanTransitionTo(target Status) bool {
	if s.IsTerminal() {
		return false
	}
	if target == StatusCancelled {
		return s != StatusDelivered
	}
	next, ok := s.Next()
	return ok && next == target
}

// Item represents a line item captured at checkout time
type Item struct {
	ID           uuid.UUID
	OrderID      uuid.UUID
	ProductID    uuid.UUID
	ProductName  string
	Quantity     int
	PriceAtOrder decimal.Decimal
}

// NewItem creates a new order line item with the price snapshot
func NewItem(orderID, productID uuid.UUID, productName string, quantity int, priceAtOrder decimal.Decimal) (*Item, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if productName == "" {
		return nil, shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name cannot be empty")
	}
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if priceAtOrder.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}
	return &Item{
		ID:           uuid.New(),
		OrderID:      orderID,
		ProductID:    productID,
		ProductName:  productName,
		Quantity:     quantity,
		PriceAtOrder: priceAtOrder,
	}, nil
}

// Amount returns quantity * price for this line
func (i *Item) Amount() decimal.Decimal {
	return i.PriceAtOrder.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Order represents a customer order aggregate root
type Order struct {
	shared.BaseAggregateRoot
	OrderCode       string
	Status          Status
	TotalAmount     decimal.Decimal
	AddressLine     string
	ReceiverName    string
	Phone           string
	Note            string
	AccountID       uuid.UUID
	ShopID          uuid.UUID
	Items           []Item
	StatusChangedAt time.Time
	DeliveredAt     *time.Time
	CancelReason    string
}

// GenerateOrderCode builds a human-readable unique order code
func GenerateOrderCode() string {
	ts := time.Now().UnixMilli()
	suffix := rand.Intn(1 << 20)
	return strings.ToUpper(fmt.Sprintf("ORD-%x-%05x", ts, suffix))
}

// NewOrder creates a pending order for one shop's items
func NewOrder(accountID, shopID uuid.UUID, addressLine, receiverName, phone, note string) (*Order, error) {
	if accountID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ACCOUNT", "Order account ID cannot be empty")
	}
	if shopID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SHOP", "Order shop ID cannot be empty")
	}
	if addressLine == "" || receiverName == "" || phone == "" {
		return nil, shared.NewDomainError("INVALID_SHIPPING_INFO", "Address, receiver name and phone are required")
	}

	base := shared.NewBaseAggregateRoot()
	return &Order{
		BaseAggregateRoot: base,
		OrderCode:         GenerateOrderCode(),
		Status:            StatusPending,
		TotalAmount:       decimal.Zero,
		AddressLine:       addressLine,
		ReceiverName:      receiverName,
		Phone:             phone,
		Note:              note,
		AccountID:         accountID,
		ShopID:            shopID,
		Items:             []Item{},
		StatusChangedAt:   base.CreatedAt,
	}, nil
}

// AddItem appends a line item and recalculates the total
func (o *Order) AddItem(productID uuid.UUID, productName string, quantity int, priceAtOrder decimal.Decimal) error {
	if o.Status != StatusPending {
		return shared.NewDomainError("INVALID_STATE", "Items can only be added to pending orders")
	}
	item, err := NewItem(o.ID, productID, productName, quantity, priceAtOrder)
	if err != nil {
		return err
	}
	o.Items = append(o.Items, *item)
	o.recalculateTotal()
	return nil
}

func (o *Order) recalculateTotal() {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.Amount())
	}
	o.TotalAmount = total
	o.UpdatedAt = time.Now()
}

// TransitionTo moves the order to the target status, validating the move
func (o *Order) TransitionTo(target Status) error {
	if !target.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Unknown order status")
	}
	if !o.Status.CanTransitionTo(target) {
		return shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Cannot transition order from %s to %s", o.Status, target))
	}
	now := time.Now()
	o.Status = target
	o.StatusChangedAt = now
	if target == StatusDelivered {
		o.DeliveredAt = &now
	}
	o.UpdatedAt = now
	return nil
}

// AutoAdvance moves the order exactly one step forward in the pipeline
func (o *Order) AutoAdvance() error {
	next, ok := o.Status.Next()
	if !ok {
		return shared.NewDomainError("INVALID_STATE", "Order has no next status")
	}
	return o.TransitionTo(next)
}

// Cancel cancels the order with an optional reason
func (o *Order) Cancel(reason string) error {
	if err := o.TransitionTo(StatusCancelled); err != nil {
		return err
	}
	o.CancelReason = reason
	return nil
}

// AgeInStatus returns how long the order has been in its current status
func (o *Order) AgeInStatus(now time.Time) time.Duration {
	return now.Sub(o.StatusChangedAt)
}
