package middleware

import (
	"errors"

	"github.com/ferdian3456/chatmoderation/internal/model"
	"github.com/ferdian3456/chatmoderation/internal/util"

	"github.com/gofiber/fiber/v2"
	"github.com/knadh/koanf/v2"
	"go.uber.org/zap"
)

type AuthMiddleware struct {
	Log    *zap.Logger
	Config *koanf.Koanf
}

func NewAuthMiddleware(zap *zap.Logger, koanf *koanf.Koanf) *AuthMiddleware {
	return &AuthMiddleware{
		Log:    zap,
		Config: koanf,
	}
}

// ProtectedRoute accepts only requests signed with SERVICE_JWT_SECRET.
func (middleware *AuthMiddleware) ProtectedRoute() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		var validationErr *model.ValidationError

		service, err := util.ValidateServiceToken(ctx.Get("Authorization"), middleware.Log, middleware.Config.String("SERVICE_JWT_SECRET"))
		if err != nil {
			if errors.As(err, &validationErr) {
				return util.SendErrorResponseUnauthorized(ctx, err)
			}

			return util.SendErrorResponseInternalServer(ctx, middleware.Log, err)
		}

		ctx.Locals("service", service)

		return ctx.Next()
	}
}
