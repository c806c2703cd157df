package config

import (
	"context"
	"time"

	"github.com/exaring/otelpgx"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/knadh/koanf/v2"
	"go.uber.org/zap"
)

func NewPostgresqlPool(config *koanf.Koanf, log *zap.Logger) *pgxpool.Pool {
	dsn := config.String("POSTGRES_URL")
	pgxConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		log.Fatal("failed to parse postgresql config", zap.Error(err))
	}

	pgxConfig.MaxConns = 10
	if maxConns := config.Int("POSTGRES_MAX_CONNS"); maxConns > 0 {
		pgxConfig.MaxConns = int32(maxConns)
	}
	pgxConfig.MinConns = 2
	if pgxConfig.MinConns > pgxConfig.MaxConns {
		pgxConfig.MinConns = pgxConfig.MaxConns
	}
	pgxConfig.MaxConnLifetime = time.Hour
	pgxConfig.MaxConnIdleTime = 10 * time.Minute
	pgxConfig.HealthCheckPeriod = 30 * time.Second
	pgxConfig.ConnConfig.Tracer = otelpgx.NewTracer()
	pgxConfig.ConnConfig.RuntimeParams["application_name"] = "chatmoderation"

	pool, err := pgxpool.NewWithConfig(context.Background(), pgxConfig)
	if err != nil {
		log.Fatal("failed to create pgx pool", zap.Error(err))
	}

	err = pool.Ping(context.Background())
	if err != nil {
		log.Fatal("failed to ping postgresql database", zap.Error(err))
	}

	return pool
}
