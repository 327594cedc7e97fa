package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stylehub/backend/internal/domain/order"
)

// CheckoutRequest represents a request to turn the cart into orders
type CheckoutRequest struct {
	AddressLine  string `json:"address_line" binding:"required,min=1,max=500"`
	ReceiverName string `json:"receiver_name" binding:"required,min=1,max=100"`
	Phone        string `json:"phone" binding:"required,min=8,max=16"`
	Note         string `json:"note" binding:"max=1000"`
}

// UpdateStatusRequest represents a seller or admin status move
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// CancelRequest represents a customer cancellation
type CancelRequest struct {
	Reason string `json:"reason" binding:"max=500"`
}

// OrderListFilter represents query parameters for listing orders
type OrderListFilter struct {
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
	Status   string `form:"status"`
	Search   string `form:"search"`
	SortBy   string `form:"sort_by"`
	SortDir  string `form:"sort_dir"`
}

// OrderItemResponse represents an order line in API responses
type OrderItemResponse struct {
	ProductID    uuid.UUID       `json:"product_id"`
	ProductName  string          `json:"product_name"`
	Quantity     int             `json:"quantity"`
	PriceAtOrder decimal.Decimal `json:"price_at_order"`
	Amount       decimal.Decimal `json:"amount"`
}

// OrderResponse represents an order in API responses
type OrderResponse struct {
	ID              uuid.UUID           `json:"id"`
	OrderCode       string              `json:"order_code"`
	Status          string              `json:"status"`
	TotalAmount     decimal.Decimal     `json:"total_amount"`
	AddressLine     string              `json:"address_line"`
	ReceiverName    string              `json:"receiver_name"`
	Phone           string              `json:"phone"`
	Note            string              `json:"note,omitempty"`
	AccountID       uuid.UUID           `json:"account_id"`
	ShopID          uuid.UUID           `json:"shop_id"`
	Items           []OrderItemResponse `json:"items"`
	StatusChangedAt time.Time           `json:"status_changed_at"`
	DeliveredAt     *time.Time          `json:"delivered_at,omitempty"`
	CancelReason    string              `json:"cancel_reason,omitempty"`
	CreatedAt       time.Time           `json:"created_at"`
}

// ShopOrderStats summarizes a shop's order counts per status
type ShopOrderStats struct {
	Pending   int64 `json:"pending"`
	Confirmed int64 `json:"confirmed"`
	Packing   int64 `json:"packing"`
	Shipping  int64 `json:"shipping"`
	Delivered int64 `json:"delivered"`
	Completed int64 `json:"completed"`
	Cancelled int64 `json:"cancelled"`
}

// ToOrderResponse converts a domain Order to OrderResponse
func ToOrderResponse(o *order.Order) OrderResponse {
	items := make([]OrderItemResponse, len(o.Items))
	for i, item := range o.Items {
		items[i] = OrderItemResponse{
			ProductID:    item.ProductID,
			ProductName:  item.ProductName,
			Quantity:     item.Quantity,
			PriceAtOrder: item.PriceAtOrder,
			Amount:       item.Amount(),
		}
	}
	return OrderResponse{
		ID:              o.ID,
		OrderCode:       o.OrderCode,
		Status:          string(o.Status),
		TotalAmount:     o.TotalAmount,
		AddressLine:     o.AddressLine,
		ReceiverName:    o.ReceiverName,
		Phone:           o.Phone,
		Note:            o.Note,
		AccountID:       o.AccountID,
		ShopID:          o.ShopID,
		Items:           items,
		StatusChangedAt: o.StatusChangedAt,
		DeliveredAt:     o.DeliveredAt,
		CancelReason:    o.CancelReason,
		CreatedAt:       o.CreatedAt,
	}
}

func toOrderResponses(orders []order.Order) []OrderResponse {
	responses := make([]OrderResponse, len(orders))
	for i := range orders {
		responses[i] = ToOrderResponse(&orders[i])
	}
	return responses
}
