package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"
)

func TestKeyedLimiter(t *testing.T) {
	l := NewKeyedLimiter(rate.Every(time.Hour), 2, 0)

	assert.True(t, l.Allow("a"))
	assert.True(t, l.Allow("a"))
	assert.False(t, l.Allow("a"))
	assert.True(t, l.Allow("b"))
}

func TestKeyedLimiter_BoundedKeys(t *testing.T) {
	l := NewKeyedLimiter(rate.Every(time.Hour), 1, 3)

	for _, key := range []string{"a", "b", "c", "d", "e"} {
		assert.True(t, l.Allow(key))
	}
	assert.Equal(t, 3, l.Len())

	assert.False(t, l.Allow("e"))
	// "a" was evicted and starts with a fresh bucket
	assert.True(t, l.Allow("a"))
	assert.Equal(t, 3, l.Len())
}

func TestRateLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	limiter := NewKeyedLimiter(rate.Every(time.Hour), 1, 0)
	r.POST("/submit", RateLimit(limiter, func(c *gin.Context) string { return c.GetHeader("X-User-Id") }), func(c *gin.Context) {
		c.Status(http.StatusCreated)
	})

	send := func(user string) int {
		req := httptest.NewRequest(http.MethodPost, "/submit", nil)
		req.Header.Set("X-User-Id", user)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusCreated, send("u1"))
	assert.Equal(t, http.StatusTooManyRequests, send("u1"))
	assert.Equal(t, http.StatusCreated, send("u2"))
}
