package middleware

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/bodthegod/jpperformancecars-backend/config"
	"github.com/bodthegod/jpperformancecars-backend/models"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// RateLimiter is a fixed-window limiter keyed per IP, method and route,
// backed by the shared Redis client.
func RateLimiter(maxRequests int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if config.RedisClient == nil {
			c.Next()
			return
		}
		limit(c, config.RedisClient, maxRequests, window)
	}
}

func limit(c *gin.Context, rdb redis.Cmdable, maxRequests int, window time.Duration) {
	ctx := c.Request.Context()
	key := "rl:" + c.ClientIP() + ":" + c.Request.Method + ":" + c.FullPath()
	resetKey := key + ":resetAt"

	count, err := rdb.Incr(ctx, key).Result()
	if err != nil {
		// Fail open on Redis errors.
		log.Printf("[rate-limit] ⚠️ redis error, allowing request: %v", err)
		c.Next()
		return
	}

	if count == 1 {
		resetAt := time.Now().Add(window)
		pipe := rdb.TxPipeline()
		pipe.Expire(ctx, key, window)
		pipe.Set(ctx, resetKey, resetAt.Unix(), window)
		if _, err := pipe.Exec(ctx); err != nil {
			log.Printf("[rate-limit] ⚠️ failed to set window: %v", err)
		}
	}

	resetAtUnix, _ := rdb.Get(ctx, resetKey).Int64()
	resetAt := time.Unix(resetAtUnix, 0)

	remaining := maxRequests - int(count)
	if remaining < 0 {
		remaining = 0
	}
	resetInSeconds := int(time.Until(resetAt).Seconds())
	if resetInSeconds < 0 {
		resetInSeconds = 0
	}

	rate := &models.RateLimiter{
		Limit:          maxRequests,
		Remaining:      remaining,
		ResetAt:        resetAt,
		ResetInSeconds: resetInSeconds,
	}
	c.Set("rateLimiter", rate)

	if int(count) > maxRequests {
		c.Header("Retry-After", strconv.Itoa(resetInSeconds))
		c.JSON(http.StatusTooManyRequests, models.ApiResponse{
			Message: "Too many requests",
			Error:   true,
			Rate:    rate,
		})
		c.Abort()
		return
	}

	c.Next()
}
