package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/swapnilyadv/CloneX/internal/auth"
	"github.com/swapnilyadv/CloneX/internal/dashboard"
	"github.com/swapnilyadv/CloneX/internal/projects/domain"
)

func (h *Handler) list(c *gin.Context) {
	filter, err := dashboard.ParseFilter(c.Query("filter"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
		return
	}

	ctrl := dashboard.New(h.store)
	if err := ctrl.Load(c.Request.Context(), auth.UserFirebaseUID(c)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	ctrl.SetFilter(filter)

	c.JSON(http.StatusOK, gin.H{"ok": true, "filter": ctrl.Filter(), "projects": ctrl.Projects()})
}

func (h *Handler) get(c *gin.Context) {
	p, err := h.store.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "project not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	if p.OwnerID != auth.UserFirebaseUID(c) {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "project not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "project": p})
}

type starReq struct {
	Starred *bool `json:"starred" binding:"required"`
}

func (h *Handler) star(c *gin.Context) {
	var req starReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	p, err := h.store.SetStarred(c.Request.Context(), auth.UserFirebaseUID(c), c.Param("id"), *req.Starred)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "project not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "project": p})
}
