package config

import (
	http "github.com/ferdian3456/chatmoderation/internal/delivery/http"
	"github.com/ferdian3456/chatmoderation/internal/delivery/http/middleware"
	"github.com/ferdian3456/chatmoderation/internal/delivery/http/route"
	"github.com/ferdian3456/chatmoderation/internal/phrase"
	"github.com/ferdian3456/chatmoderation/internal/repository"
	"github.com/ferdian3456/chatmoderation/internal/usecase"
	"github.com/ferdian3456/chatmoderation/internal/vk"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/knadh/koanf/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type ServerConfig struct {
	Router  *fiber.App
	DB      *pgxpool.Pool
	DBCache *redis.Client
	Log     *zap.Logger
	Config  *koanf.Koanf
	VK      *vk.Client
}

func Server(config *ServerConfig) {
	chatRepository := repository.NewChatRepository(config.Log, config.DB, config.DBCache)
	userRepository := repository.NewUserRepository(config.Log, config.DB, config.DBCache)
	auditRepository := repository.NewAuditRepository(config.Log, config.DB)

	permissionUsecase := usecase.NewPermissionUsecase(chatRepository, config.Log)
	nameUsecase := usecase.NewNameUsecase(userRepository, config.Log)
	auditUsecase := usecase.NewAuditUsecase(auditRepository, config.VK, config.Log)

	timezone := config.Config.Int("CHAT_TIMEZONE")
	if !config.Config.Exists("CHAT_TIMEZONE") {
		timezone = phrase.DefaultTimezone
	}

	punishmentUsecase := usecase.NewPunishmentUsecase(permissionUsecase, nameUsecase, auditUsecase, chatRepository, config.VK, config.Log, timezone)
	chatUsecase := usecase.NewChatUsecase(permissionUsecase, nameUsecase, auditUsecase, chatRepository, config.Log)
	chatController := http.NewChatController(punishmentUsecase, chatUsecase, config.Log, config.Config)

	authMiddleware := middleware.NewAuthMiddleware(config.Log, config.Config)

	routeConfig := route.RouteConfig{
		App:            config.Router,
		Log:            config.Log,
		AuthMiddleware: authMiddleware,
		ChatController: chatController,
	}

	routeConfig.SetupRoute()
}
