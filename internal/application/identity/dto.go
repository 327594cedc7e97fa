package identity

import (
	"time"

	"github.com/google/uuid"

	"github.com/stylehub/backend/internal/domain/identity"
	"github.com/stylehub/backend/internal/infrastructure/auth"
)

// RegisterRequest represents a request to create a new account
type RegisterRequest struct {
	Username    string `json:"username" binding:"required,min=3,max=50"`
	PhoneNumber string `json:"phone_number" binding:"required,min=8,max=16"`
	Password    string `json:"password" binding:"required,min=8,max=72"`
}

// LoginRequest represents a login attempt
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest carries the refresh token for token rotation
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// AccountResponse represents an account in API responses
type AccountResponse struct {
	ID           uuid.UUID  `json:"id"`
	Username     string     `json:"username"`
	PhoneNumber  string     `json:"phone_number"`
	Status       string     `json:"status"`
	Role         string     `json:"role"`
	LastActiveAt *time.Time `json:"last_active_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

// LoginResponse bundles the account with its token pair
type LoginResponse struct {
	Account AccountResponse `json:"account"`
	Tokens  *auth.TokenPair `json:"tokens"`
}

// ToAccountResponse converts a domain Account to AccountResponse
func ToAccountResponse(a *identity.Account) AccountResponse {
	return AccountResponse{
		ID:           a.ID,
		Username:     a.Username,
		PhoneNumber:  a.PhoneNumber,
		Status:       string(a.Status),
		Role:         string(a.Role),
		LastActiveAt: a.LastActiveAt,
		CreatedAt:    a.CreatedAt,
	}
}
