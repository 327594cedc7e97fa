package handler

import (
	"github.com/gin-gonic/gin"

	identityapp "github.com/stylehub/backend/internal/application/identity"
	"github.com/stylehub/backend/internal/interfaces/http/middleware"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	BaseHandler
	authService *identityapp.AuthService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService *identityapp.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register creates a new customer account
func (h *AuthHandler) Register(c *gin.Context) {
	var req identityapp.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	account, err := h.authService.Register(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, account)
}

// Login authenticates an account and returns a token pair
func (h *AuthHandler) Login(c *gin.Context) {
	var req identityapp.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	result, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Logout revokes the current access token
func (h *AuthHandler) Logout(c *gin.Context) {
	claims := middleware.GetJWTClaims(c)
	if claims == nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	if err := h.authService.Logout(c.Request.Context(), claims); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"message": "Logged out"})
}

// Refresh rotates a refresh token into a fresh token pair
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req identityapp.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	pair, err := h.authService.Refresh(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, pair)
}

// Me returns the authenticated account's profile
func (h *AuthHandler) Me(c *gin.Context) {
	accountID, err := getAccountID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	account, err := h.authService.GetAccount(c.Request.Context(), accountID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, account)
}

// BecomeSeller upgrades the authenticated account to the seller role
func (h *AuthHandler) BecomeSeller(c *gin.Context) {
	accountID, err := getAccountID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	account, err := h.authService.PromoteToSeller(c.Request.Context(), accountID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, account)
}
