package middleware

import (
	"github.com/ferdian3456/chatmoderation/internal/observability"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// TraceLoggerMiddleware stores a logger carrying the request's trace_id and span_id.
// It must run after otelfiber so the span is already in the user context.
func TraceLoggerMiddleware(logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		traceLogger := observability.WithContext(c.UserContext(), logger).With(
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
		)

		c.Locals("logger", traceLogger)

		return c.Next()
	}
}
