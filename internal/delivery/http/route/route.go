package route

import (
	"github.com/ferdian3456/chatmoderation/internal/delivery/http"
	"github.com/ferdian3456/chatmoderation/internal/delivery/http/middleware"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type RouteConfig struct {
	App            *fiber.App
	Log            *zap.Logger
	AuthMiddleware *middleware.AuthMiddleware
	ChatController *http.ChatController
}

func (c *RouteConfig) SetupRoute() {
	api := c.App.Group("/api")

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	chatGroup := api.Group("/chat", c.AuthMiddleware.ProtectedRoute())
	chatGroup.Get("/:id/getSettings", c.ChatController.GetSettings)
	chatGroup.Get("/:id/getRoles", c.ChatController.GetRoles)
	chatGroup.Get("/:id/getLogs", c.ChatController.GetLogs)
	chatGroup.Get("/:chat/user/:user/getRights", c.ChatController.GetRights)

	actionLimiter := middleware.SetupActionRateLimiter(c.Log)
	chatGroup.Post("/:id/kick", actionLimiter, c.ChatController.Kick)
	chatGroup.Post("/:id/mute", actionLimiter, c.ChatController.Mute)
	chatGroup.Post("/:id/leave", actionLimiter, c.ChatController.Leave)
	chatGroup.Post("/:id/setSetting", actionLimiter, c.ChatController.SetSetting)
}
