package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/seu-repo/sahayata-voice/pkg/config"
)

// RateLimit throttles per client IP using fiber's sliding-window limiter.
func RateLimit(cfg config.RateLimitingConfig) fiber.Handler {
	maxRequests := cfg.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 60
	}
	window := cfg.Window
	if window <= 0 {
		window = time.Minute
	}

	return limiter.New(limiter.Config{
		Max:                    maxRequests,
		Expiration:             window,
		LimiterMiddleware:      limiter.SlidingWindow{},
		SkipSuccessfulRequests: false,
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests",
			})
		},
	})
}
