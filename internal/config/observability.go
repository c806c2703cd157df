package config

import (
	"github.com/ferdian3456/chatmoderation/internal/observability"
	"github.com/knadh/koanf/v2"
	"go.uber.org/zap"
)

func LoadObservabilityConfig(config *koanf.Koanf, log *zap.Logger) observability.Config {
	observabilityConfig := observability.Config{
		OtelEndpoint: config.String("OTEL_EXPORTER_OTLP_ENDPOINT"),
		ServiceName:  config.String("OTEL_SERVICE_NAME"),
		Environment:  config.String("ENVIRONMENT"),
		OtelHeaders:  config.String("OTEL_EXPORTER_OTLP_HEADERS"),
		SampleRatio:  config.Float64("OTEL_TRACES_SAMPLER_ARG"),
	}

	if observabilityConfig.ServiceName == "" {
		observabilityConfig.ServiceName = "chatmoderation"
	}

	if observabilityConfig.OtelEndpoint == "" {
		log.Info("OTEL_EXPORTER_OTLP_ENDPOINT is not set, traces are not exported")
	}

	return observabilityConfig
}
