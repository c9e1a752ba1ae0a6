package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// HeaderUser trusts the X-User-Id header as the signed-in user.
// - If the header is missing, fallback is used; an empty fallback rejects the request.
// - Use this ONLY for development/testing.
func HeaderUser(fallback string) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := strings.TrimSpace(c.GetHeader("X-User-Id"))
		if uid == "" {
			uid = fallback
		}
		if uid == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "missing user"})
			c.Abort()
			return
		}

		setUser(c, uid)
		if email := strings.TrimSpace(c.GetHeader("X-User-Email")); email != "" {
			c.Set(CtxEmail, email)
		}
		c.Next()
	}
}
