package middleware

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// AdminAuth gates admin routes on an exact match of the X-Admin-Key header
// against the configured shared key. An unconfigured key disables admin
// routes entirely rather than silently allowing or denying.
func AdminAuth(adminKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if adminKey == "" {
			log.Println("[ADMIN] [WARN] ADMIN_KEY not set, admin routes are disabled")
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "Admin not configured"})
			return
		}

		key := c.GetHeader("X-Admin-Key")
		if key == "" || key != adminKey {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		c.Next()
	}
}
