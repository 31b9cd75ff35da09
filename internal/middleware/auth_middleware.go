package middleware

import (
	"net/http"
	"strings"

	"github.com/tradewisearg/servitec-web/internal/authz"
	"github.com/tradewisearg/servitec-web/pkg/utils"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware validates the bearer JWT and stores the caller's identity
// in the request context for downstream handlers.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header format. Use Bearer <token>"})
			c.Abort()
			return
		}

		claims, err := utils.ValidateToken(parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token: " + err.Error()})
			c.Abort()
			return
		}

		c.Set("userID", claims.UserID)
		c.Set("userEmail", claims.Email)
		c.Set("userRole", claims.Role)

		c.Next()
	}
}

// RequirePermission enforces the central permission table for one operation.
// AuthMiddleware must run first.
func RequirePermission(op authz.Operation) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("userRole")
		if !exists {
			c.JSON(http.StatusForbidden, gin.H{"error": "User role not found in token claims. Ensure AuthMiddleware runs first."})
			c.Abort()
			return
		}

		roleStr, ok := role.(string)
		if !ok || !authz.Can(roleStr, op) {
			c.JSON(http.StatusForbidden, gin.H{"error": "You do not have permission to perform this operation"})
			c.Abort()
			return
		}

		c.Next()
	}
}

// ActorEmail returns the authenticated caller's email, or empty when absent.
func ActorEmail(c *gin.Context) string {
	if v, ok := c.Get("userEmail"); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
