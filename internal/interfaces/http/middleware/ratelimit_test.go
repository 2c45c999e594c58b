package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"

	"github.com/orris-inc/movecomments/internal/shared/constants"
	"github.com/orris-inc/movecomments/internal/shared/logger"
)

func newLimitedEngine(rl *RateLimiter, userID uint) *gin.Engine {
	engine := gin.New()
	engine.Use(func(c *gin.Context) {
		if userID != 0 {
			c.Set(constants.ContextKeyUserID, userID)
		}
		c.Next()
	})
	engine.Use(rl.Limit())
	engine.GET("/search", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return engine
}

func hit(engine *gin.Engine) int {
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/search", nil))
	return w.Code
}

func TestRateLimiter_Limit(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	rl := NewRateLimiter(client, "search", 2, time.Minute, logger.NewNop())

	first := newLimitedEngine(rl, 1)
	assert.Equal(t, http.StatusOK, hit(first))
	assert.Equal(t, http.StatusOK, hit(first))
	assert.Equal(t, http.StatusTooManyRequests, hit(first))

	// a different user has an independent budget
	second := newLimitedEngine(rl, 2)
	assert.Equal(t, http.StatusOK, hit(second))
}

func TestRateLimiter_SubSecondWindow(t *testing.T) {
	tests := []struct {
		name   string
		window time.Duration
	}{
		{name: "zero", window: 0},
		{name: "negative", window: -time.Second},
		{name: "half second", window: 500 * time.Millisecond},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mr := miniredis.RunT(t)
			client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
			t.Cleanup(func() { _ = client.Close() })

			rl := NewRateLimiter(client, "search", 1, tt.window, logger.NewNop())
			assert.Equal(t, time.Second, rl.window)

			engine := newLimitedEngine(rl, 1)
			assert.NotPanics(t, func() { hit(engine) })
		})
	}
}

func TestRateLimiter_Disabled(t *testing.T) {
	tests := []struct {
		name string
		rl   *RateLimiter
	}{
		{name: "nil limiter", rl: nil},
		{name: "no redis", rl: NewRateLimiter(nil, "search", 1, time.Minute, logger.NewNop())},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := newLimitedEngine(tt.rl, 1)
			for i := 0; i < 3; i++ {
				assert.Equal(t, http.StatusOK, hit(engine))
			}
		})
	}
}

func TestRateLimiter_RedisDown(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	mr.Close()

	rl := NewRateLimiter(client, "search", 1, time.Minute, logger.NewNop())
	engine := newLimitedEngine(rl, 1)

	assert.Equal(t, http.StatusOK, hit(engine))
	assert.Equal(t, http.StatusOK, hit(engine))
}
