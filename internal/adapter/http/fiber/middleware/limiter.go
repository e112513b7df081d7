package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/seu-repo/lapeco-hr/pkg/config"
)

// RateLimit caps requests per window, keyed by employee when ByUser is set
// and the caller named one, otherwise by client IP.
func RateLimit(cfg config.RateLimitingConfig) fiber.Handler {
	limit := cfg.MaxRequests
	if limit <= 0 {
		limit = 100
	}
	window := cfg.Window
	if window <= 0 {
		window = time.Minute
	}

	return limiter.New(limiter.Config{
		Max:        limit,
		Expiration: window,
		KeyGenerator: func(c *fiber.Ctx) string {
			if cfg.ByUser {
				if id := c.Get(RequesterHeader); id != "" {
					return "employee:" + id
				}
			}
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests",
			})
		},
	})
}
