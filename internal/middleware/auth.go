package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const ownerKey = "owner_id"

// RequireOwner extracts the authenticated user id injected by the upstream
// auth layer. Session issuance itself lives outside this service; by the
// time a request reaches us the header is trusted.
func RequireOwner() gin.HandlerFunc {
	return func(c *gin.Context) {
		ownerID := c.GetHeader("X-User-ID")
		if ownerID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing user identity"})
			return
		}
		c.Set(ownerKey, ownerID)
		c.Next()
	}
}

// Owner returns the owner id set by RequireOwner.
func Owner(c *gin.Context) string {
	return c.GetString(ownerKey)
}
