package middleware

import (
	"net/http"

	"gameforge/internal/domain"

	"github.com/gin-gonic/gin"
)

// AdminRequired checks that the authenticated user has the ADMIN role.
func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if GetRole(c) != domain.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": gin.H{"code": "UNAUTHORIZED", "message": "admin access required"}})
			return
		}
		c.Next()
	}
}
