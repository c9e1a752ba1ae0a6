package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/swapnilyadv/CloneX/internal/auth"
	"github.com/swapnilyadv/CloneX/internal/notify"
)

type Handler struct {
	feed *notify.RedisNotifier
}

func New(feed *notify.RedisNotifier) *Handler {
	return &Handler{feed: feed}
}

func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("", h.recent)
	rg.GET("/stream", h.stream)
}

func (h *Handler) recent(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	items, err := h.feed.Recent(c.Request.Context(), auth.UserFirebaseUID(c), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "notifications": items})
}

// stream relays the user's notifications as Server-Sent Events.
func (h *Handler) stream(c *gin.Context) {
	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "streaming unsupported"})
		return
	}

	ctx := c.Request.Context()
	sub := h.feed.Subscribe(ctx, auth.UserFirebaseUID(c))
	defer sub.Close()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no") // nginx: disable buffering
	c.Status(http.StatusOK)
	flusher.Flush()

	ticker := time.NewTicker(15 * time.Second)
	defer ticker.Stop()
	msgs := sub.Channel()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			fmt.Fprint(c.Writer, ": keep-alive\n\n")
			flusher.Flush()
		case msg, ok := <-msgs:
			if !ok {
				return
			}
			fmt.Fprintf(c.Writer, "event: %s\ndata: %s\n\n", eventName(msg.Payload), msg.Payload)
			flusher.Flush()
		}
	}
}

func eventName(payload string) string {
	var n notify.Notification
	if err := json.Unmarshal([]byte(payload), &n); err != nil || n.Kind == "" {
		return "notification"
	}
	return string(n.Kind)
}
