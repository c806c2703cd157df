package middleware

import (
	"time"

	"github.com/ferdian3456/chatmoderation/internal/constant"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"go.uber.org/zap"
)

// SetupRateLimiter limits every route except the health check per client IP.
func SetupRateLimiter(logger *zap.Logger) fiber.Handler {
	return limiter.New(limiter.Config{
		Next: func(c *fiber.Ctx) bool {
			return c.Path() == "/api/health"
		},
		Max:        300,
		Expiration: time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			logger.Warn("Rate limit exceeded", zap.String("ip", c.IP()))
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": constant.ERR_RATE_LIMIT_MESSAGE,
			})
		},
	})
}

// SetupActionRateLimiter is the stricter limit for routes that call VK, keyed by chat.
func SetupActionRateLimiter(logger *zap.Logger) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        20,
		Expiration: time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP() + ":" + c.Params("id")
		},
		LimitReached: func(c *fiber.Ctx) error {
			logger.Warn("Action rate limit exceeded", zap.String("ip", c.IP()), zap.String("chat", c.Params("id")))
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": constant.ERR_RATE_LIMIT_MESSAGE,
			})
		},
	})
}
