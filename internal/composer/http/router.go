package http

import "github.com/gin-gonic/gin"

// Register attaches draft routes. submitGuard runs in front of submit only.
func (h *Handler) Register(rg *gin.RouterGroup, submitGuard ...gin.HandlerFunc) {
	rg.GET("", h.get)
	rg.PUT("/prompt", h.setPrompt)
	rg.PUT("/model", h.setModel)
	rg.POST("/attachments", h.attach)
	rg.DELETE("/attachments/:id", h.detach)
	rg.POST("/submit", append(submitGuard, h.submit)...)
}

// RegisterModels exposes the model catalogue.
func RegisterModels(rg *gin.RouterGroup) {
	rg.GET("/models", listModels)
}
