package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	searchapp "github.com/stylehub/backend/internal/application/search"
)

// SearchHandler handles visual and text search endpoints
type SearchHandler struct {
	BaseHandler
	searchService *searchapp.SearchService
}

// NewSearchHandler creates a new SearchHandler
func NewSearchHandler(searchService *searchapp.SearchService) *SearchHandler {
	return &SearchHandler{searchService: searchService}
}

// Detect finds clothing regions in an uploaded image
func (h *SearchHandler) Detect(c *gin.Context) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		h.BadRequest(c, "Image file is required")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.InternalError(c, "Failed to read uploaded image")
		return
	}
	defer file.Close()

	result, err := h.searchService.DetectRegions(c.Request.Context(), file, fileHeader.Filename)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// SearchByImage finds products similar to an uploaded image
func (h *SearchHandler) SearchByImage(c *gin.Context) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		h.BadRequest(c, "Image file is required")
		return
	}

	topK := 0
	if raw := c.PostForm("top_k"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 100 {
			h.BadRequest(c, "top_k must be an integer between 1 and 100")
			return
		}
		topK = parsed
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.InternalError(c, "Failed to read uploaded image")
		return
	}
	defer file.Close()

	result, err := h.searchService.SearchByImage(c.Request.Context(), file, fileHeader.Filename, topK)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// SearchByText finds products matching a text query
func (h *SearchHandler) SearchByText(c *gin.Context) {
	var req searchapp.TextSearchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	result, err := h.searchService.SearchByText(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}
