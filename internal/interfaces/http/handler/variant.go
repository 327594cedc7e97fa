package handler

import (
	"github.com/gin-gonic/gin"

	catalogapp "github.com/stylehub/backend/internal/application/catalog"
)

// VariantHandler handles product variant endpoints
type VariantHandler struct {
	BaseHandler
	variantService *catalogapp.VariantService
}

// NewVariantHandler creates a new VariantHandler
func NewVariantHandler(variantService *catalogapp.VariantService) *VariantHandler {
	return &VariantHandler{variantService: variantService}
}

// List returns an active product's variants for the storefront
func (h *VariantHandler) List(c *gin.Context) {
	productID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	result, err := h.variantService.List(c.Request.Context(), productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// ListMine returns the seller's own product variants, active or not
func (h *VariantHandler) ListMine(c *gin.Context) {
	accountID, err := getAccountID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	productID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	result, err := h.variantService.ListForSeller(c.Request.Context(), accountID, productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Generate proposes the selection combinations not yet used by the product
func (h *VariantHandler) Generate(c *gin.Context) {
	accountID, err := getAccountID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	productID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	var req catalogapp.GenerateVariantsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	result, err := h.variantService.GenerateCombinations(c.Request.Context(), accountID, productID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// CreateBulk creates several variants for a product at once
func (h *VariantHandler) CreateBulk(c *gin.Context) {
	accountID, err := getAccountID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	productID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	var req catalogapp.CreateVariantsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	result, err := h.variantService.CreateBulk(c.Request.Context(), accountID, productID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}

// SetStock replaces a variant's stock level
func (h *VariantHandler) SetStock(c *gin.Context) {
	accountID, err := getAccountID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	productID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}
	variantID, err := parseIDParam(c, "variantId")
	if err != nil {
		h.BadRequest(c, "Invalid variant ID")
		return
	}

	var req catalogapp.UpdateVariantStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	result, err := h.variantService.SetStock(c.Request.Context(), accountID, productID, variantID, *req.Stock)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Delete removes a variant from a product
func (h *VariantHandler) Delete(c *gin.Context) {
	accountID, err := getAccountID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	productID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}
	variantID, err := parseIDParam(c, "variantId")
	if err != nil {
		h.BadRequest(c, "Invalid variant ID")
		return
	}

	if err := h.variantService.Delete(c.Request.Context(), accountID, productID, variantID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
