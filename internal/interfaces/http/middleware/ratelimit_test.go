package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRateLimiterAllow(t *testing.T) {
	rl := NewRateLimiter(3, time.Minute)

	assert.True(t, rl.Allow("client-a"))
	assert.True(t, rl.Allow("client-a"))
	assert.True(t, rl.Allow("client-a"))
	assert.False(t, rl.Allow("client-a"))

	// A different key keeps its own bucket.
	assert.True(t, rl.Allow("client-b"))
}

func TestRateLimiterWindowReset(t *testing.T) {
	rl := NewRateLimiter(1, 30*time.Millisecond)

	assert.True(t, rl.Allow("client"))
	assert.False(t, rl.Allow("client"))

	time.Sleep(40 * time.Millisecond)
	assert.True(t, rl.Allow("client"))
}

func TestRateLimiterRemaining(t *testing.T) {
	rl := NewRateLimiter(5, time.Minute)

	assert.Equal(t, 5, rl.Remaining("client"))
	rl.Allow("client")
	assert.Equal(t, 4, rl.Remaining("client"))
}

func TestRateLimitMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RateLimit(NewRateLimiter(2, time.Minute)))
	r.POST("/contact", func(c *gin.Context) {
		c.Status(http.StatusCreated)
	})

	send := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/contact", nil)
		req.RemoteAddr = "203.0.113.9:4242"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	first := send()
	assert.Equal(t, http.StatusCreated, first.Code)
	assert.Equal(t, "2", first.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "1", first.Header().Get("X-RateLimit-Remaining"))

	assert.Equal(t, http.StatusCreated, send().Code)

	third := send()
	assert.Equal(t, http.StatusTooManyRequests, third.Code)
	assert.Contains(t, third.Body.String(), "ERR_RATE_LIMITED")
}

func TestRateLimitByKey(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RateLimitByKey(NewRateLimiter(1, time.Minute), func(c *gin.Context) string {
		return c.GetHeader("X-Client")
	}))
	r.GET("/", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	send := func(key string) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Client", key)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, send("alpha"))
	assert.Equal(t, http.StatusTooManyRequests, send("alpha"))
	assert.Equal(t, http.StatusOK, send("beta"))
}
