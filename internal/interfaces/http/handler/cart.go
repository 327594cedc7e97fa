package handler

import (
	"github.com/gin-gonic/gin"

	cartapp "github.com/stylehub/backend/internal/application/cart"
)

// CartHandler handles shopping cart endpoints
type CartHandler struct {
	BaseHandler
	cartService *cartapp.CartService
}

// NewCartHandler creates a new CartHandler
func NewCartHandler(cartService *cartapp.CartService) *CartHandler {
	return &CartHandler{cartService: cartService}
}

// Get returns the account's cart, creating it on first access
func (h *CartHandler) Get(c *gin.Context) {
	accountID, err := getAccountID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	result, err := h.cartService.Get(c.Request.Context(), accountID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// AddItem puts a product into the cart
func (h *CartHandler) AddItem(c *gin.Context) {
	accountID, err := getAccountID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req cartapp.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	result, err := h.cartService.AddItem(c.Request.Context(), accountID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// UpdateItem changes the quantity of a cart line
func (h *CartHandler) UpdateItem(c *gin.Context) {
	accountID, err := getAccountID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	productID, err := parseIDParam(c, "productId")
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	var req cartapp.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	result, err := h.cartService.UpdateItem(c.Request.Context(), accountID, productID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// RemoveItem drops a cart line
func (h *CartHandler) RemoveItem(c *gin.Context) {
	accountID, err := getAccountID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	productID, err := parseIDParam(c, "productId")
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	result, err := h.cartService.RemoveItem(c.Request.Context(), accountID, productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Clear empties the cart
func (h *CartHandler) Clear(c *gin.Context) {
	accountID, err := getAccountID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	result, err := h.cartService.Clear(c.Request.Context(), accountID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}
