package handler

import (
	"github.com/gin-gonic/gin"

	orderapp "github.com/stylehub/backend/internal/application/order"
)

// OrderHandler handles order endpoints
type OrderHandler struct {
	BaseHandler
	orderService *orderapp.OrderService
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orderService *orderapp.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// Checkout turns the account's cart into one order per shop
func (h *OrderHandler) Checkout(c *gin.Context) {
	accountID, err := getAccountID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req orderapp.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	orders, err := h.orderService.Checkout(c.Request.Context(), accountID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, orders)
}

// Get returns a single order visible to the caller
func (h *OrderHandler) Get(c *gin.Context) {
	accountID, err := getAccountID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	orderID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	result, err := h.orderService.Get(c.Request.Context(), accountID, orderID, isAdmin(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// ListMine returns the caller's orders as a buyer
func (h *OrderHandler) ListMine(c *gin.Context) {
	accountID, err := getAccountID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var filter orderapp.OrderListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindingError(c, err)
		return
	}

	items, total, err := h.orderService.ListForAccount(c.Request.Context(), accountID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, items, total, filter.Page, filter.PageSize)
}

// ListForShop returns orders placed against the seller's shop
func (h *OrderHandler) ListForShop(c *gin.Context) {
	accountID, err := getAccountID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var filter orderapp.OrderListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindingError(c, err)
		return
	}

	items, total, err := h.orderService.ListForShop(c.Request.Context(), accountID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, items, total, filter.Page, filter.PageSize)
}

// UpdateStatus advances an order one step along its pipeline
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	accountID, err := getAccountID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	orderID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	var req orderapp.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	result, err := h.orderService.UpdateStatus(c.Request.Context(), accountID, orderID, isAdmin(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Cancel cancels a not-yet-delivered order for the buyer
func (h *OrderHandler) Cancel(c *gin.Context) {
	accountID, err := getAccountID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	orderID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	var req orderapp.CancelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	result, err := h.orderService.Cancel(c.Request.Context(), accountID, orderID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}
