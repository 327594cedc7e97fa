package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/stylehub/backend/internal/infrastructure/auth"
)

// JWT context keys
const (
	JWTClaimsKey   = "jwt_claims"
	JWTUserIDKey   = "jwt_user_id"
	JWTUsernameKey = "jwt_username"
	JWTRoleKey     = "jwt_role"
	AuthHeaderKey  = "Authorization"
	BearerPrefix   = "Bearer "
)

// JWTMiddlewareConfig holds configuration for JWT middleware
type JWTMiddlewareConfig struct {
	JWTService     *auth.JWTService
	TokenBlacklist auth.TokenBlacklist
	Logger         *zap.Logger
}

// JWTAuthMiddleware creates JWT authentication middleware. Requests
// without a valid, non-revoked access token are rejected with 401.
func JWTAuthMiddleware(cfg JWTMiddlewareConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(AuthHeaderKey)
		if authHeader == "" {
			abortUnauthorized(c, cfg, auth.ErrInvalidToken, "Missing authorization header")
			return
		}
		if !strings.HasPrefix(authHeader, BearerPrefix) {
			abortUnauthorized(c, cfg, auth.ErrInvalidToken, "Invalid authorization header format")
			return
		}
		tokenString := strings.TrimPrefix(authHeader, BearerPrefix)
		if tokenString == "" {
			abortUnauthorized(c, cfg, auth.ErrInvalidToken, "Missing token")
			return
		}

		claims, err := cfg.JWTService.ValidateAccessToken(tokenString)
		if err != nil {
			abortUnauthorized(c, cfg, err, "Token validation failed")
			return
		}

		if cfg.TokenBlacklist != nil && claims.ID != "" {
			blacklisted, err := cfg.TokenBlacklist.IsBlacklisted(c.Request.Context(), claims.ID)
			if err != nil {
				// Fail open so an unavailable blacklist store does not take
				// down every authenticated endpoint.
				if cfg.Logger != nil {
					cfg.Logger.Error("Failed to check token blacklist",
						zap.String("jti", claims.ID),
						zap.Error(err))
				}
			} else if blacklisted {
				abortUnauthorized(c, cfg, auth.ErrTokenBlacklisted, "Token has been revoked")
				return
			}
		}

		c.Set(JWTClaimsKey, claims)
		c.Set(JWTUserIDKey, claims.UserID)
		c.Set(JWTUsernameKey, claims.Username)
		c.Set(JWTRoleKey, claims.Role)

		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, cfg JWTMiddlewareConfig, err error, message string) {
	if cfg.Logger != nil {
		cfg.Logger.Warn("Authentication failed",
			zap.Error(err),
			zap.String("message", message),
			zap.String("path", c.Request.URL.Path))
	}

	code := "UNAUTHORIZED"
	errorMessage := "Authentication required"
	switch err {
	case auth.ErrExpiredToken:
		code = "TOKEN_EXPIRED"
		errorMessage = "Token has expired"
	case auth.ErrInvalidToken:
		code = "INVALID_TOKEN"
		errorMessage = "Invalid token"
	case auth.ErrInvalidTokenType:
		code = "INVALID_TOKEN_TYPE"
		errorMessage = "Invalid token type"
	case auth.ErrTokenBlacklisted:
		code = "TOKEN_REVOKED"
		errorMessage = "Token has been revoked"
	}

	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": errorMessage,
		},
	})
}

// GetJWTClaims retrieves JWT claims from gin.Context
func GetJWTClaims(c *gin.Context) *auth.Claims {
	if claims, exists := c.Get(JWTClaimsKey); exists {
		if jwtClaims, ok := claims.(*auth.Claims); ok {
			return jwtClaims
		}
	}
	return nil
}

// GetJWTUserID retrieves the authenticated account id from context
func GetJWTUserID(c *gin.Context) (uuid.UUID, bool) {
	if userID, exists := c.Get(JWTUserIDKey); exists {
		if id, ok := userID.(string); ok {
			parsed, err := uuid.Parse(id)
			if err == nil {
				return parsed, true
			}
		}
	}
	return uuid.Nil, false
}

// GetJWTRole retrieves the authenticated account role from context
func GetJWTRole(c *gin.Context) string {
	if role, exists := c.Get(JWTRoleKey); exists {
		if r, ok := role.(string); ok {
			return r
		}
	}
	return ""
}
