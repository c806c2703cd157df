package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/knadh/koanf/v2"
)

const defaultAllowOrigins = "http://localhost:3000"

// SetupCORS configures CORS from CORS_ALLOW_ORIGINS, a comma separated origin list.
func SetupCORS(config *koanf.Koanf) fiber.Handler {
	origins := config.String("CORS_ALLOW_ORIGINS")
	if origins == "" {
		origins = defaultAllowOrigins
	}

	return cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     "GET,POST,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: origins != "*",
		ExposeHeaders:    "Content-Length",
		MaxAge:           86400, // 1 day
	})
}
