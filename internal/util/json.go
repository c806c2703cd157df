package util

import (
	"github.com/ferdian3456/chatmoderation/internal/constant"
	"github.com/ferdian3456/chatmoderation/internal/model"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

func ReadRequestBody(ctx *fiber.Ctx, result interface{}) error {
	err := ctx.BodyParser(result)
	if err != nil {
		return err
	}
	return nil
}

func SendSuccessResponseNoData(ctx *fiber.Ctx) error {
	err := ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": constant.STATUS_OK,
	})
	if err != nil {
		return err
	}
	return nil
}

func SendSuccessResponseWithData(ctx *fiber.Ctx, data interface{}) error {
	err := ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": constant.STATUS_OK,
		"data":   data,
	})
	if err != nil {
		return err
	}

	return nil
}

// SendPartialResponse reports an action that happened on VK but was not fully persisted.
func SendPartialResponse(ctx *fiber.Ctx, data interface{}, error error) error {
	err := ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": constant.STATUS_PARTIAL,
		"data":   data,
		"error":  error,
	})
	if err != nil {
		return err
	}

	return nil
}

func SendErrorResponse(ctx *fiber.Ctx, error error) error {
	err := ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": error,
	})
	if err != nil {
		return err
	}

	return nil
}

func SendErrorResponseUnauthorized(ctx *fiber.Ctx, error error) error {
	err := ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"error": error,
	})
	if err != nil {
		return err
	}

	return nil
}

func SendErrorResponseInternalServer(ctx *fiber.Ctx, log *zap.Logger, error error) error {
	log.Error("internal server error occured", zap.Error(error))
	err := ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": fiber.Map{
			"code":    model.KindUndefined,
			"message": constant.ERR_INTERNAL_SERVER_ERROR_MESSAGE,
		},
	})

	if err != nil {
		return err
	}

	return err
}
