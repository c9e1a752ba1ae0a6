package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/swapnilyadv/CloneX/internal/auth"
)

// Me returns the signed-in user's identity.
func (h *Handler) Me(c *gin.Context) {
	uid := auth.UserFirebaseUID(c)
	if uid == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "user not authenticated"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "user": gin.H{"id": uid, "email": c.GetString(auth.CtxEmail)}})
}

// SignOut revokes the user's sessions and discards their draft.
func (h *Handler) SignOut(c *gin.Context) {
	uid := auth.UserFirebaseUID(c)
	if uid == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "user not authenticated"})
		return
	}
	if err := h.authService.SignOut(c.Request.Context(), uid); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
