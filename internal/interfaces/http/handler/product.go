package handler

import (
	"io"

	"github.com/gin-gonic/gin"

	catalogapp "github.com/stylehub/backend/internal/application/catalog"
)

// maxProductImageBytes bounds a single product image upload
const maxProductImageBytes = 10 << 20

// ProductHandler handles product endpoints
type ProductHandler struct {
	BaseHandler
	productService *catalogapp.ProductService
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(productService *catalogapp.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// RemoveImageRequest identifies the gallery image to detach
type RemoveImageRequest struct {
	ImageURL string `json:"image_url" binding:"required,url"`
}

// SetActiveRequest toggles product visibility
type SetActiveRequest struct {
	Active *bool `json:"active" binding:"required"`
}

// Create adds a product to the seller's shop
func (h *ProductHandler) Create(c *gin.Context) {
	accountID, err := getAccountID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req catalogapp.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	result, err := h.productService.Create(c.Request.Context(), accountID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}

// Get returns an active product for the storefront
func (h *ProductHandler) Get(c *gin.Context) {
	productID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	result, err := h.productService.Get(c.Request.Context(), productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// List returns active products for the storefront
func (h *ProductHandler) List(c *gin.Context) {
	var filter catalogapp.ProductListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindingError(c, err)
		return
	}

	items, total, err := h.productService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, items, total, filter.Page, filter.PageSize)
}

// ListByShop returns a shop's active products
func (h *ProductHandler) ListByShop(c *gin.Context) {
	shopID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid shop ID")
		return
	}

	var filter catalogapp.ProductListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindingError(c, err)
		return
	}

	items, total, err := h.productService.ListByShop(c.Request.Context(), shopID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, items, total, filter.Page, filter.PageSize)
}

// ListMine returns the seller's own products, active or not
func (h *ProductHandler) ListMine(c *gin.Context) {
	accountID, err := getAccountID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var filter catalogapp.ProductListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindingError(c, err)
		return
	}

	items, total, err := h.productService.ListForSeller(c.Request.Context(), accountID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, items, total, filter.Page, filter.PageSize)
}

// Update modifies the seller's product
func (h *ProductHandler) Update(c *gin.Context) {
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

	var req catalogapp.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	result, err := h.productService.Update(c.Request.Context(), accountID, productID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// SetActive activates or deactivates the seller's product
func (h *ProductHandler) SetActive(c *gin.Context) {
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

	var req SetActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	result, err := h.productService.SetActive(c.Request.Context(), accountID, productID, *req.Active)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// AddImage uploads a gallery image for the seller's product
func (h *ProductHandler) AddImage(c *gin.Context) {
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

	fileHeader, err := c.FormFile("image")
	if err != nil {
		h.BadRequest(c, "Image file is required")
		return
	}
	if fileHeader.Size > maxProductImageBytes {
		h.BadRequest(c, "Image exceeds the size limit")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.InternalError(c, "Failed to read uploaded image")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxProductImageBytes))
	if err != nil {
		h.InternalError(c, "Failed to read uploaded image")
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	result, err := h.productService.AddImage(c.Request.Context(), accountID, productID, data, contentType)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}

// RemoveImage detaches a gallery image from the seller's product
func (h *ProductHandler) RemoveImage(c *gin.Context) {
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

	var req RemoveImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	result, err := h.productService.RemoveImage(c.Request.Context(), accountID, productID, req.ImageURL)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Delete removes the seller's product
func (h *ProductHandler) Delete(c *gin.Context) {
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

	if err := h.productService.Delete(c.Request.Context(), accountID, productID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
