package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/swapnilyadv/CloneX/internal/auth"
	"github.com/swapnilyadv/CloneX/internal/composer"
	"github.com/swapnilyadv/CloneX/internal/dashboard"
	"github.com/swapnilyadv/CloneX/internal/projects/domain"
)

func listModels(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true, "models": domain.Models(), "default": domain.DefaultModel})
}

func (h *Handler) draft(c *gin.Context) *composer.Composer {
	return h.sessions.For(auth.UserFirebaseUID(c))
}

func (h *Handler) get(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true, "draft": toDraftView(h.draft(c).Snapshot())})
}

func (h *Handler) setPrompt(c *gin.Context) {
	var req promptReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}
	d := h.draft(c)
	d.SetPrompt(req.Prompt)
	c.JSON(http.StatusOK, gin.H{"ok": true, "draft": toDraftView(d.Snapshot())})
}

func (h *Handler) setModel(c *gin.Context) {
	var req modelReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}
	d := h.draft(c)
	d.SetModel(domain.Model(req.Model))
	c.JSON(http.StatusOK, gin.H{"ok": true, "draft": toDraftView(d.Snapshot())})
}

func (h *Handler) attach(c *gin.Context) {
	var req attachReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}
	payload, err := h.payloadFrom(req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
		return
	}

	a := h.draft(c).Attach(payload, req.Name)
	c.JSON(http.StatusCreated, gin.H{"ok": true, "attachment": toAttachmentView(a)})
}

func (h *Handler) detach(c *gin.Context) {
	d := h.draft(c)
	d.Detach(c.Param("id"))
	c.JSON(http.StatusOK, gin.H{"ok": true, "draft": toDraftView(d.Snapshot())})
}

func (h *Handler) submit(c *gin.Context) {
	d := h.draft(c)
	id, err := d.Submit(c.Request.Context())
	if err != nil {
		status := http.StatusInternalServerError
		var rejected *composer.StoreRejectedError
		switch {
		case errors.Is(err, composer.ErrEmptyPrompt), errors.Is(err, domain.ErrUnknownModel):
			status = http.StatusBadRequest
		case errors.Is(err, composer.ErrSubmissionInFlight):
			status = http.StatusConflict
		case errors.Is(err, composer.ErrNotAuthenticated):
			status = http.StatusUnauthorized
		case errors.As(err, &rejected):
			status = http.StatusBadGateway
		}
		c.JSON(status, gin.H{"ok": false, "error": err.Error(), "draft": toDraftView(d.Snapshot())})
		return
	}

	location := dashboard.DetailRoute(id)
	c.Header("Location", location)
	c.JSON(http.StatusCreated, gin.H{"ok": true, "project_id": id, "location": location})
}
