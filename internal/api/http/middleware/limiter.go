package middleware

import (
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/limiter"
	fiberredis "github.com/gofiber/storage/redis/v3"
	"github.com/redis/go-redis/v9"

	"github.com/Alijeyrad/taadol_backend/config"
)

// NewLimiter applies a sliding-window limit per client IP. Counters live in
// Redis when rdb is set and in process memory otherwise.
func NewLimiter(cfg config.RateLimitConfig, rdb *redis.Client) fiber.Handler {
	lc := limiter.Config{
		Max:               cfg.Max,
		Expiration:        time.Duration(cfg.ExpirationSeconds) * time.Second,
		LimiterMiddleware: limiter.SlidingWindow{},
		LimitReached: func(c fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "too many requests"})
		},
	}
	if lc.Max <= 0 {
		lc.Max = 60
	}
	if lc.Expiration <= 0 {
		lc.Expiration = 30 * time.Second
	}
	if rdb != nil {
		lc.Storage = fiberredis.NewFromConnection(rdb)
	}
	return limiter.New(lc)
}
