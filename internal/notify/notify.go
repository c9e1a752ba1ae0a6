package notify

import (
	"context"
	"log"
	"time"
)

// Kind classifies a notification for display.
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)

// Notification is a transient, user-facing message.
type Notification struct {
	UserID    string    `json:"user_id,omitempty"`
	Kind      Kind      `json:"kind"`
	Title     string    `json:"title"`
	Detail    string    `json:"detail"`
	CreatedAt time.Time `json:"created_at"`
}

// Notifier delivers notifications. Delivery is fire-and-forget.
type Notifier interface {
	Notify(ctx context.Context, n Notification)
}

// LogNotifier writes notifications to the process log.
type LogNotifier struct{}

func (LogNotifier) Notify(_ context.Context, n Notification) {
	log.Printf("[notify] user=%s kind=%s title=%q detail=%q", n.UserID, n.Kind, n.Title, n.Detail)
}
