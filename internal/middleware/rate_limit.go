package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// RateLimitConfig defines a fixed window limit per authenticated user.
type RateLimitConfig struct {
	Window    time.Duration
	Limit     int
	KeyPrefix string
}

// RateLimiter enforces per-user request limits backed by Redis.
type RateLimiter struct {
	redis  *redis.Client
	config RateLimitConfig
}

func NewRateLimiter(redisClient *redis.Client, config RateLimitConfig) *RateLimiter {
	return &RateLimiter{redis: redisClient, config: config}
}

// Middleware returns a gin middleware applying the limit. Without a Redis
// client it is a pass-through. A Redis failure lets the request through; the
// limiter is protection, not a dependency.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if rl.redis == nil {
			c.Next()
			return
		}
		userID, exists := c.Get(ContextUserIDKey)
		if !exists {
			c.Next()
			return
		}

		key := fmt.Sprintf("%s:%v:%d", rl.config.KeyPrefix, userID,
			time.Now().Unix()/int64(rl.config.Window.Seconds()))

		ctx := c.Request.Context()
		count, err := rl.redis.Incr(ctx, key).Result()
		if err != nil {
			c.Header("X-RateLimit-Error", "rate limit check failed")
			c.Next()
			return
		}
		if count == 1 {
			rl.redis.Expire(ctx, key, rl.config.Window)
		}

		remaining := rl.config.Limit - int(count)
		if remaining < 0 {
			remaining = 0
		}
		c.Header("X-RateLimit-Limit", strconv.Itoa(rl.config.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))

		if int(count) > rl.config.Limit {
			c.JSON(http.StatusTooManyRequests, gin.H{"detail": "rate limit exceeded"})
			c.Abort()
			return
		}
		c.Next()
	}
}
