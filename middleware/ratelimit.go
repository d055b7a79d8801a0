package middleware

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/quickcare/quickcare-api/config"
	"github.com/quickcare/quickcare-api/util"
)

// RateLimitConfig controls the per-client request budget for an endpoint.
type RateLimitConfig struct {
	// Limit is the number of requests allowed per window.
	Limit int
	// Window is the duration of the limiting window.
	Window time.Duration
	// KeyPrefix distinguishes limiters across endpoints.
	KeyPrefix string
}

// RateLimiter limits requests per client IP using a Redis counter.
// When Redis is unavailable the limiter fails open.
func RateLimiter(cfg RateLimitConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		rdb := config.GetRedisClient()
		if rdb == nil {
			c.Next()
			return
		}

		key := fmt.Sprintf("ratelimit:%s:%s", cfg.KeyPrefix, c.ClientIP())
		ctx := context.Background()

		pipe := rdb.TxPipeline()
		incr := pipe.Incr(ctx, key)
		pipe.Expire(ctx, key, cfg.Window)
		if _, err := pipe.Exec(ctx); err != nil {
			// Fail open on Redis errors.
			c.Next()
			return
		}

		if incr.Val() > int64(cfg.Limit) {
			util.LogRateLimitExceeded("", c.ClientIP(), c.FullPath())
			c.Header("Retry-After", fmt.Sprintf("%d", int(cfg.Window.Seconds())))
			util.CallTooManyRequests(c, util.APIErrorParams{
				Msg: "Too many requests, please try again later",
				Err: fmt.Errorf("rate limit exceeded"),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// ResetRateLimit clears the counter for a client, used after successful login.
func ResetRateLimit(keyPrefix, clientIP string) {
	rdb := config.GetRedisClient()
	if rdb == nil {
		return
	}
	rdb.Del(context.Background(), fmt.Sprintf("ratelimit:%s:%s", keyPrefix, clientIP))
}
