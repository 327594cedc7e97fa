package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/stylehub/backend/internal/domain/shared"
	"github.com/stylehub/backend/internal/infrastructure/logger"
	"github.com/stylehub/backend/internal/interfaces/http/dto"
	"github.com/stylehub/backend/internal/interfaces/http/middleware"
)

// BaseHandler provides common handler utilities
type BaseHandler struct{}

func getRequestID(c *gin.Context) string {
	if id := c.GetString(logger.RequestIDKey); id != "" {
		return id
	}
	return c.GetHeader("X-Request-ID")
}

// getAccountID extracts the authenticated account id from JWT claims
func getAccountID(c *gin.Context) (uuid.UUID, error) {
	id, ok := middleware.GetJWTUserID(c)
	if !ok {
		return uuid.Nil, errors.New("account id not found in context")
	}
	return id, nil
}

func isAdmin(c *gin.Context) bool {
	return middleware.GetJWTRole(c) == "admin"
}

// parseIDParam parses a uuid path parameter
func parseIDParam(c *gin.Context, name string) (uuid.UUID, error) {
	return uuid.Parse(c.Param(name))
}

// Success sends a success response
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// SuccessWithMeta sends a success response with pagination meta
func (h *BaseHandler) SuccessWithMeta(c *gin.Context, data any, total int64, page, pageSize int) {
	c.JSON(http.StatusOK, dto.NewSuccessResponseWithMeta(data, total, page, pageSize))
}

// Created sends a 201 created response
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// NoContent sends a 204 no content response
func (h *BaseHandler) NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// BadRequest sends a 400 bad request response
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, dto.NewErrorResponseWithRequestID(dto.ErrCodeBadRequest, message, getRequestID(c)))
}

// BindingError sends a 400 with per-field validation details
func (h *BaseHandler) BindingError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, middleware.FormatValidationErrors(err, getRequestID(c)))
}

// Unauthorized sends a 401 unauthorized response
func (h *BaseHandler) Unauthorized(c *gin.Context, message string) {
	c.JSON(http.StatusUnauthorized, dto.NewErrorResponseWithRequestID(dto.ErrCodeUnauthorized, message, getRequestID(c)))
}

// InternalError sends a 500 internal server error response
func (h *BaseHandler) InternalError(c *gin.Context, message string) {
	c.JSON(http.StatusInternalServerError, dto.NewErrorResponseWithRequestID(dto.ErrCodeInternal, message, getRequestID(c)))
}

// HandleError converts domain errors to HTTP responses, falling back to a
// generic 500 for unknown error types
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		status := dto.GetHTTPStatus(domainErr.Code)
		c.JSON(status, dto.NewErrorResponseWithRequestID(domainErr.Code, domainErr.Message, getRequestID(c)))
		return
	}

	h.InternalError(c, "An unexpected error occurred")
}
