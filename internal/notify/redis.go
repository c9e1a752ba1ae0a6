package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	channelPrefix = "clonex:notify:"        // Pub/Sub channel per user: clonex:notify:{user_id}
	recentPrefix  = "clonex:notifications:" // Capped list of recent notifications: clonex:notifications:{user_id}
	recentLimit   = 50
	recentTTL     = 24 * time.Hour
)

// RedisNotifier publishes notifications on a per-user channel and keeps a
// short history so clients that were not subscribed can catch up.
type RedisNotifier struct {
	client *redis.Client
	now    func() time.Time
}

func NewRedisNotifier(client *redis.Client) *RedisNotifier {
	return &RedisNotifier{client: client, now: time.Now}
}

func (r *RedisNotifier) Notify(ctx context.Context, n Notification) {
	if n.CreatedAt.IsZero() {
		n.CreatedAt = r.now().UTC()
	}
	if n.UserID == "" {
		LogNotifier{}.Notify(ctx, n)
		return
	}

	data, err := json.Marshal(n)
	if err != nil {
		log.Printf("[notify] marshal: %v", err)
		return
	}

	listKey := recentPrefix + n.UserID
	pipe := r.client.Pipeline()
	pipe.LPush(ctx, listKey, data)
	pipe.LTrim(ctx, listKey, 0, recentLimit-1)
	pipe.Expire(ctx, listKey, recentTTL)
	pipe.Publish(ctx, channelPrefix+n.UserID, data)
	if _, err := pipe.Exec(ctx); err != nil {
		log.Printf("[notify] deliver user=%s: %v", n.UserID, err)
	}
}

// Recent returns up to limit notifications for the user, newest first.
func (r *RedisNotifier) Recent(ctx context.Context, userID string, limit int) ([]Notification, error) {
	if limit <= 0 || limit > recentLimit {
		limit = recentLimit
	}
	raw, err := r.client.LRange(ctx, recentPrefix+userID, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	out := make([]Notification, 0, len(raw))
	for _, s := range raw {
		var n Notification
		if err := json.Unmarshal([]byte(s), &n); err != nil {
			continue
		}
		out = append(out, n)
	}
	return out, nil
}

// Subscribe returns a Pub/Sub subscription on the user's channel.
// The caller must Close it.
func (r *RedisNotifier) Subscribe(ctx context.Context, userID string) *redis.PubSub {
	return r.client.Subscribe(ctx, channelPrefix+userID)
}
