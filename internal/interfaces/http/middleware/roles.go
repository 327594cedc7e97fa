package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequireRole rejects authenticated requests whose account role is not in
// the allowed set. It must run after JWTAuthMiddleware.
func RequireRole(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}

	return func(c *gin.Context) {
		if !allowed[GetJWTRole(c)] {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "FORBIDDEN",
					"message": "Insufficient role for this operation",
				},
			})
			return
		}
		c.Next()
	}
}
