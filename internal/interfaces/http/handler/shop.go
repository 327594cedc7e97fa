package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	orderapp "github.com/stylehub/backend/internal/application/order"
	shopapp "github.com/stylehub/backend/internal/application/shop"
)

// ShopHandler handles shop endpoints
type ShopHandler struct {
	BaseHandler
	shopService  *shopapp.ShopService
	orderService *orderapp.OrderService
}

// NewShopHandler creates a new ShopHandler
func NewShopHandler(shopService *shopapp.ShopService, orderService *orderapp.OrderService) *ShopHandler {
	return &ShopHandler{shopService: shopService, orderService: orderService}
}

// Create opens a new shop for the authenticated seller
func (h *ShopHandler) Create(c *gin.Context) {
	accountID, err := getAccountID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req shopapp.CreateShopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	result, err := h.shopService.Create(c.Request.Context(), accountID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}

// Get returns a shop by id
func (h *ShopHandler) Get(c *gin.Context) {
	shopID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid shop ID")
		return
	}

	result, err := h.shopService.Get(c.Request.Context(), shopID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// GetMine returns the authenticated seller's own shop
func (h *ShopHandler) GetMine(c *gin.Context) {
	accountID, err := getAccountID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	result, err := h.shopService.GetByAccount(c.Request.Context(), accountID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// List returns shops matching the query filter
func (h *ShopHandler) List(c *gin.Context) {
	var filter shopapp.ShopListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindingError(c, err)
		return
	}

	items, total, err := h.shopService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, items, total, filter.Page, filter.PageSize)
}

// Update modifies the authenticated seller's shop profile
func (h *ShopHandler) Update(c *gin.Context) {
	accountID, err := getAccountID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	shopID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid shop ID")
		return
	}

	var req shopapp.UpdateShopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	result, err := h.shopService.Update(c.Request.Context(), accountID, shopID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Close stops the shop from taking orders
func (h *ShopHandler) Close(c *gin.Context) {
	h.ownerAction(c, h.shopService.Close)
}

// Reopen reactivates a closed shop
func (h *ShopHandler) Reopen(c *gin.Context) {
	h.ownerAction(c, h.shopService.Reopen)
}

// Suspend blocks a shop entirely, admin only
func (h *ShopHandler) Suspend(c *gin.Context) {
	shopID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid shop ID")
		return
	}

	result, err := h.shopService.Suspend(c.Request.Context(), shopID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Unsuspend lifts a suspension, admin only
func (h *ShopHandler) Unsuspend(c *gin.Context) {
	shopID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid shop ID")
		return
	}

	result, err := h.shopService.Unsuspend(c.Request.Context(), shopID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Delete soft-deletes the authenticated seller's shop
func (h *ShopHandler) Delete(c *gin.Context) {
	accountID, err := getAccountID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	shopID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid shop ID")
		return
	}

	if err := h.shopService.Delete(c.Request.Context(), accountID, shopID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// OrderStats returns per-status order counts for the seller's shop
func (h *ShopHandler) OrderStats(c *gin.Context) {
	accountID, err := getAccountID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	stats, err := h.orderService.ShopStats(c.Request.Context(), accountID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, stats)
}

func (h *ShopHandler) ownerAction(c *gin.Context, action func(ctx context.Context, accountID, shopID uuid.UUID) (*shopapp.ShopResponse, error)) {
	accountID, err := getAccountID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	shopID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid shop ID")
		return
	}

	result, err := action(c.Request.Context(), accountID, shopID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}
