package config

import (
	"errors"
	"time"

	"github.com/bytedance/sonic"
	"github.com/ferdian3456/chatmoderation/internal/model"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
)

func NewFiber() *fiber.App {
	app := fiber.New(fiber.Config{
		Prefork:               false,
		AppName:               "chatmoderation",
		BodyLimit:             64 * 1024, // 64KB
		ReadBufferSize:        4096,
		WriteBufferSize:       4096,
		IdleTimeout:           30 * time.Second,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          15 * time.Second,
		DisableKeepalive:      false,
		DisableStartupMessage: true,
		ReduceMemoryUsage:     true,
		JSONEncoder:           sonic.Marshal,
		JSONDecoder:           sonic.Unmarshal,
		ErrorHandler:          errorHandler,
	})

	return app
}

// errorHandler renders router errors in the controllers' error shape.
func errorHandler(ctx *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		status = fiberErr.Code
	}

	return ctx.Status(status).JSON(fiber.Map{
		"error": fiber.Map{
			"code":    model.KindUndefined,
			"message": utils.StatusMessage(status),
		},
	})
}
