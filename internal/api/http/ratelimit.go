package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	apperrors "github.com/spec-kit/marketplace-service/pkg/util"
)

// RateLimiter implements a fixed-window counter backed by Redis. The
// window key is derived from the client IP and a scope label, so the
// auth endpoints can carry a tighter budget than the general API.
type RateLimiter struct {
	client *redis.Client
	logger *zap.Logger
	window time.Duration
}

// NewRateLimiter constructs a limiter over the shared Redis client.
func NewRateLimiter(client *redis.Client, logger *zap.Logger, window time.Duration) *RateLimiter {
	return &RateLimiter{client: client, logger: logger, window: window}
}

// Limit returns a middleware allowing at most max requests per window
// for the given scope. Redis failures fail open: a broken limiter must
// not take the API down with it.
func (rl *RateLimiter) Limit(scope string, max int) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if rl == nil || rl.client == nil || max <= 0 {
			return c.Next()
		}

		windowStart := time.Now().Unix() / int64(rl.window.Seconds())
		key := fmt.Sprintf("ratelimit:%s:%s:%d", scope, c.IP(), windowStart)

		count, err := rl.client.Incr(c.Context(), key).Result()
		if err != nil {
			rl.logger.Warn("rate limiter unavailable, allowing request",
				zap.String("scope", scope), zap.Error(err))
			return c.Next()
		}
		if count == 1 {
			if err := rl.client.Expire(c.Context(), key, rl.window).Err(); err != nil {
				rl.logger.Warn("failed to set rate limit window expiry",
					zap.String("scope", scope), zap.Error(err))
			}
		}
		if count > int64(max) {
			return apperrors.NewRateLimited()
		}
		return c.Next()
	}
}
