package middleware

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/time/rate"
)

const defaultMaxKeys = 10000

// KeyedLimiter hands out one token bucket per key. At most maxKeys buckets
// are kept; the least recently used key starts over with a full bucket.
type KeyedLimiter struct {
	mu       sync.Mutex
	limiters *lru.Cache[string, *rate.Limiter]
	limit    rate.Limit
	burst    int
}

func NewKeyedLimiter(limit rate.Limit, burst, maxKeys int) *KeyedLimiter {
	if maxKeys <= 0 {
		maxKeys = defaultMaxKeys
	}
	// lru.New only fails for a non-positive size
	limiters, _ := lru.New[string, *rate.Limiter](maxKeys)
	return &KeyedLimiter{
		limiters: limiters,
		limit:    limit,
		burst:    burst,
	}
}

func (k *KeyedLimiter) Allow(key string) bool {
	k.mu.Lock()
	l, ok := k.limiters.Get(key)
	if !ok {
		l = rate.NewLimiter(k.limit, k.burst)
		k.limiters.Add(key, l)
	}
	k.mu.Unlock()
	return l.Allow()
}

// Len reports how many keys currently hold a bucket.
func (k *KeyedLimiter) Len() int {
	return k.limiters.Len()
}

// RateLimit rejects requests with 429 once keyFn's bucket is empty.
func RateLimit(limiter *KeyedLimiter, keyFn func(*gin.Context) string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !limiter.Allow(keyFn(c)) {
			c.JSON(http.StatusTooManyRequests, gin.H{"ok": false, "error": "too many requests, slow down"})
			c.Abort()
			return
		}
		c.Next()
	}
}
