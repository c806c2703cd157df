package config

import (
	"github.com/knadh/koanf/parsers/dotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"go.uber.org/zap"
)

func NewKoanf(log *zap.Logger) *koanf.Koanf {
	k := koanf.New(".")

	// .env is optional, deployments pass plain environment variables
	err := k.Load(file.Provider(".env"), dotenv.Parser())
	if err != nil {
		log.Debug(".env file not found, using environment variables", zap.Error(err))
	}

	// environment overrides .env
	err = k.Load(env.Provider("", ".", nil), nil)
	if err != nil {
		log.Fatal("failed to load environment variables", zap.Error(err))
	}

	for _, key := range []string{"GO_SERVER", "POSTGRES_URL", "REDIS_URL", "VK_TOKEN", "SERVICE_JWT_SECRET"} {
		if k.String(key) == "" {
			log.Fatal("required config key is missing", zap.String("key", key))
		}
	}

	return k
}
