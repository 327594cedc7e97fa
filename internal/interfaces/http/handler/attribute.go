package handler

import (
	"github.com/gin-gonic/gin"

	catalogapp "github.com/stylehub/backend/internal/application/catalog"
)

// AttributeHandler handles variant attribute endpoints
type AttributeHandler struct {
	BaseHandler
	attributeService *catalogapp.AttributeService
}

// NewAttributeHandler creates a new AttributeHandler
func NewAttributeHandler(attributeService *catalogapp.AttributeService) *AttributeHandler {
	return &AttributeHandler{attributeService: attributeService}
}

// List returns the attributes available to the seller's shop
func (h *AttributeHandler) List(c *gin.Context) {
	accountID, err := getAccountID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	result, err := h.attributeService.List(c.Request.Context(), accountID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Create adds an attribute; admins may create global ones
func (h *AttributeHandler) Create(c *gin.Context) {
	accountID, err := getAccountID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req catalogapp.CreateAttributeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	result, err := h.attributeService.Create(c.Request.Context(), accountID, req, isAdmin(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}

// AddValue adds a value to an attribute
func (h *AttributeHandler) AddValue(c *gin.Context) {
	accountID, err := getAccountID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	attributeID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid attribute ID")
		return
	}

	var req catalogapp.AttributeValueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	result, err := h.attributeService.AddValue(c.Request.Context(), accountID, attributeID, req, isAdmin(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}

// Delete removes an attribute and its values
func (h *AttributeHandler) Delete(c *gin.Context) {
	accountID, err := getAccountID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	attributeID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid attribute ID")
		return
	}

	if err := h.attributeService.Delete(c.Request.Context(), accountID, attributeID, isAdmin(c)); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// DeleteValue removes a single attribute value
func (h *AttributeHandler) DeleteValue(c *gin.Context) {
	accountID, err := getAccountID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	valueID, err := parseIDParam(c, "valueId")
	if err != nil {
		h.BadRequest(c, "Invalid value ID")
		return
	}

	if err := h.attributeService.DeleteValue(c.Request.Context(), accountID, valueID, isAdmin(c)); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
