package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/stylehub/backend/internal/infrastructure/config"
)

// TokenType represents the type of JWT token
type TokenType string

const (
	TokenTypeAccess  TokenType = "access"
	TokenTypeRefresh TokenType = "refresh"
)

// Common errors
var (
	ErrInvalidToken     = errors.New("invalid token")
	ErrExpiredToken     = errors.New("token has expired")
	ErrInvalidTokenType = errors.New("invalid token type")
	ErrInvalidClaims    = errors.New("invalid token claims")
	ErrTokenNotYetValid = errors.New("token is not yet valid")
	ErrMissingUserID    = errors.New("missing user_id in claims")
	ErrTokenBlacklisted = errors.New("token has been revoked")
)

// Claims represents custom JWT claims
type Claims struct {
	jwt.RegisteredClaims
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	TokenType TokenType `json:"token_type"`
}

// TokenPair represents an access and refresh token pair
type TokenPair struct {
	AccessToken           string    `json:"access_token"`
	RefreshToken          string    `json:"refresh_token"`
	AccessTokenExpiresAt  time.Time `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time `json:"refresh_token_expires_at"`
	TokenType             string    `json:"token_type"` // Bearer
}

// JWTService handles JWT token operations
type JWTService struct {
	accessSecret      []byte
	refreshSecret     []byte
	accessExpiration  time.Duration
	refreshExpiration time.Duration
	issuer            string
}

// NewJWTService creates a new JWT service
func NewJWTService(cfg config.JWTConfig) *JWTService {
	refreshSecret := []byte(cfg.RefreshSecret)
	if cfg.RefreshSecret == "" {
		refreshSecret = []byte(cfg.Secret)
	}

	return &JWTService{
		accessSecret:      []byte(cfg.Secret),
		refreshSecret:     refreshSecret,
		accessExpiration:  cfg.AccessTokenExpiration,
		refreshExpiration: cfg.RefreshTokenExpiration,
		issuer:            cfg.Issuer,
	}
}

// GenerateTokenInput contains input for token generation
type GenerateTokenInput struct {
	UserID   uuid.UUID
	Username string
	Role     string
}

// GenerateTokenPair generates both access and refresh tokens
func (s *JWTService) GenerateTokenPair(input GenerateTokenInput) (*TokenPair, error) {
	now := time.Now()

	accessClaims := s.newClaims(input, now, TokenTypeAccess, s.accessExpiration)
	accessToken, err := s.generateToken(accessClaims, s.accessSecret)
	if err != nil {
		return nil, err
	}

	// Refresh token carries minimal identity claims only
	refreshClaims := s.newClaims(GenerateTokenInput{UserID: input.UserID}, now, TokenTypeRefresh, s.refreshExpiration)
	refreshToken, err := s.generateToken(refreshClaims, s.refreshSecret)
	if err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:           accessToken,
		RefreshToken:          refreshToken,
		AccessTokenExpiresAt:  now.Add(s.accessExpiration),
		RefreshTokenExpiresAt: now.Add(s.refreshExpiration),
		TokenType:             "Bearer",
	}, nil
}

func (s *JWTService) newClaims(input GenerateTokenInput, now time.Time, tokenType TokenType, expiration time.Duration) *Claims {
	return &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Issuer:    s.issuer,
			Subject:   input.UserID.String(),
			Audience:  jwt.ClaimStrings{s.issuer},
			ExpiresAt: jwt.NewNumericDate(now.Add(expiration)),
			NotBefore: jwt.NewNumericDate(now),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		UserID:    input.UserID.String(),
		Username:  input.Username,
		Role:      input.Role,
		TokenType: tokenType,
	}
}

// generateToken creates a signed JWT token
func (s *JWTService) generateToken(claims *Claims, secret []byte) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// ValidateAccessToken validates an access token and returns its claims
func (s *JWTService) ValidateAccessToken(tokenString string) (*Claims, error) {
	return s.validateToken(tokenString, s.accessSecret, TokenTypeAccess)
}

// ValidateRefreshToken validates a refresh token and returns its claims
func (s *JWTService) ValidateRefreshToken(tokenString string) (*Claims, error) {
	return s.validateToken(tokenString, s.refreshSecret, TokenTypeRefresh)
}

func (s *JWTService) validateToken(tokenString string, secret []byte, expectedType TokenType) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		if errors.Is(err, jwt.ErrTokenNotValidYet) {
			return nil, ErrTokenNotYetValid
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidClaims
	}

	if claims.TokenType != expectedType {
		return nil, ErrInvalidTokenType
	}
	if claims.UserID == "" {
		return nil, ErrMissingUserID
	}

	return claims, nil
}

// RefreshTokenPair issues a new token pair from a valid refresh token. The
// caller supplies the account's current username and role so that a role
// change takes effect on refresh.
func (s *JWTService) RefreshTokenPair(refreshToken, username, role string) (*TokenPair, error) {
	claims, err := s.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, err
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, ErrInvalidClaims
	}

	return s.GenerateTokenPair(GenerateTokenInput{
		UserID:   userID,
		Username: username,
		Role:     role,
	})
}

// GetUserUUID extracts and parses the user ID from claims
func (c *Claims) GetUserUUID() (uuid.UUID, error) {
	return uuid.Parse(c.UserID)
}

// GetExpiresAtTime returns the token's expiration time as time.Time
func (c *Claims) GetExpiresAtTime() time.Time {
	if c.ExpiresAt != nil {
		return c.ExpiresAt.Time
	}
	return time.Time{}
}

// GetRemainingTTL returns the remaining time until the token expires
func (c *Claims) GetRemainingTTL() time.Duration {
	if c.ExpiresAt == nil {
		return 0
	}
	remaining := time.Until(c.ExpiresAt.Time)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// GetAccessTokenExpiration returns the access token expiration duration
func (s *JWTService) GetAccessTokenExpiration() time.Duration {
	return s.accessExpiration
}

// GetRefreshTokenExpiration returns the refresh token expiration duration
func (s *JWTService) GetRefreshTokenExpiration() time.Duration {
	return s.refreshExpiration
}
