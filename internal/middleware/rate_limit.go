package middleware

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"foodgram/internal/logging"
	"foodgram/internal/metrics"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/redis/go-redis/v9"
)

// RateLimitConfig defines configuration for rate limiting.
type RateLimitConfig struct {
	// Window is the fixed window length.
	Window time.Duration
	// Limit is the number of requests allowed per key and window.
	Limit int
	// KeyPrefix namespaces the Redis keys.
	KeyPrefix string
}

// RateLimiter counts requests per client IP in Redis.
type RateLimiter struct {
	redis  *redis.Client
	config RateLimitConfig
}

// NewRateLimiter creates a new rate limiter instance.
func NewRateLimiter(redisClient *redis.Client, config RateLimitConfig) *RateLimiter {
	if config.KeyPrefix == "" {
		config.KeyPrefix = "ratelimit"
	}
	return &RateLimiter{redis: redisClient, config: config}
}

// Handler enforces the limit. When Redis is unreachable the request passes.
func (rl *RateLimiter) Handler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		allowed, remaining, resetAt, err := rl.IsAllowed(c.UserContext(), c.IP())
		if err != nil {
			logging.Warn().Err(err).Msg("rate limit check failed")
			return c.Next()
		}

		c.Set("X-RateLimit-Limit", strconv.Itoa(rl.config.Limit))
		c.Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Set("X-RateLimit-Reset", strconv.FormatInt(resetAt.Unix(), 10))

		if !allowed {
			metrics.RateLimitRejections.WithLabelValues("redis").Inc()
			c.Set(fiber.HeaderRetryAfter, strconv.Itoa(int(time.Until(resetAt).Seconds())+1))
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"detail": fmt.Sprintf("Request was throttled. Limit is %d requests per %v.", rl.config.Limit, rl.config.Window),
			})
		}
		return c.Next()
	}
}

// IsAllowed increments the counter of key in the current window.
// Returns: allowed, remaining requests, window reset time, error.
func (rl *RateLimiter) IsAllowed(ctx context.Context, key string) (bool, int, time.Time, error) {
	windowStart := time.Now().Truncate(rl.config.Window)
	redisKey := fmt.Sprintf("%s:%s:%d", rl.config.KeyPrefix, key, windowStart.Unix())

	pipe := rl.redis.Pipeline()
	incr := pipe.Incr(ctx, redisKey)
	pipe.Expire(ctx, redisKey, rl.config.Window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, 0, time.Time{}, err
	}

	count := int(incr.Val())
	remaining := rl.config.Limit - count
	if remaining < 0 {
		remaining = 0
	}
	return count <= rl.config.Limit, remaining, windowStart.Add(rl.config.Window), nil
}

// LocalRateLimit is the in-process fallback used without Redis.
func LocalRateLimit(config RateLimitConfig) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        config.Limit,
		Expiration: config.Window,
		LimitReached: func(c *fiber.Ctx) error {
			metrics.RateLimitRejections.WithLabelValues("local").Inc()
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"detail": "Request was throttled.",
			})
		},
	})
}

// NewRedisClient parses a redis:// URL and checks connectivity.
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse REDIS_URL: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	return client, nil
}
