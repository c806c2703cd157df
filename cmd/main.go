package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ferdian3456/chatmoderation/internal/config"
	httpmiddleware "github.com/ferdian3456/chatmoderation/internal/delivery/http/middleware"
	middleware "github.com/ferdian3456/chatmoderation/internal/exception"
	tracelog "github.com/ferdian3456/chatmoderation/internal/middleware"
	"github.com/ferdian3456/chatmoderation/internal/observability"
	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2/middleware/compress"
	zapLog "go.uber.org/zap"
)

func main() {
	time.Local = time.UTC

	fiber := config.NewFiber()
	zap := config.NewZap()
	koanf := config.NewKoanf(zap)

	observabilityConfig := config.LoadObservabilityConfig(koanf, zap)
	shutdownTracer := func(context.Context) error { return nil }
	if observabilityConfig.OtelEndpoint != "" {
		var err error
		shutdownTracer, err = observability.Init(context.Background(), observabilityConfig, zap)
		if err != nil {
			zap.Fatal("failed to init otel", zapLog.Error(err))
		}
	}

	rds := config.NewRedisClient(koanf, zap)
	postgresql := config.NewPostgresqlPool(koanf, zap)
	vkClient := config.NewVKClient(koanf, zap)

	// Custom recovery middleware to handle panics with JSON response
	fiber.Use(middleware.Recovery(zap))
	fiber.Use(otelfiber.Middleware())
	fiber.Use(tracelog.TraceLoggerMiddleware(zap))
	fiber.Use(httpmiddleware.SetupCORS(koanf))
	fiber.Use(httpmiddleware.SetupRateLimiter(zap))

	fiber.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))

	config.Server(&config.ServerConfig{
		Router:  fiber,
		DB:      postgresql,
		DBCache: rds,
		Log:     zap,
		Config:  koanf,
		VK:      vkClient,
	})

	GO_SERVER_PORT := koanf.String("GO_SERVER")

	zap.Info("Server is running on: " + GO_SERVER_PORT)

	go func() {
		err := fiber.Listen(GO_SERVER_PORT)
		if err != nil {
			zap.Fatal("error starting server", zapLog.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	<-stop
	zap.Info("got one of stop signals")

	// Flush zap buffered log first then cancel the context for graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := fiber.ShutdownWithContext(ctx)
	if err != nil {
		zap.Warn("timeout, forced kill!", zapLog.Error(err))
		_ = zap.Sync()
		os.Exit(1)
	}

	postgresql.Close()
	_ = rds.Close()

	err = shutdownTracer(ctx)
	if err != nil {
		zap.Warn("failed to flush traces", zapLog.Error(err))
	}

	zap.Info("server has shut down gracefully")
	_ = zap.Sync()
}
