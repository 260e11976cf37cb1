package svc

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Rohitprj/QuoteVault/config"
	"github.com/Rohitprj/QuoteVault/internal/infra/cache"
	"github.com/Rohitprj/QuoteVault/internal/infra/db"
	"github.com/Rohitprj/QuoteVault/internal/infra/storage"
	"github.com/Rohitprj/QuoteVault/internal/middleware"
)

// ServiceContext carries every shared dependency; it is built once in main
// and injected into the handlers. Cache and Minio may be nil when their
// backing services are unreachable — the API degrades instead of dying.
type ServiceContext struct {
	Config *config.Config
	DB     *gorm.DB
	Cache  *cache.RedisCache
	Minio  *storage.FileStorage

	tracerProvider *trace.TracerProvider
}

func NewServiceContext(cfg *config.Config) *ServiceContext {
	dbConn := db.InitMySQL(cfg)

	rdb, err := cache.New(cfg)
	if err != nil {
		zap.L().Warn("Redis connection failed, continuing without cache", zap.Error(err))
		rdb = nil
	} else {
		zap.L().Info("Redis connected successfully")
	}

	minioSvc, err := storage.NewFileStorage(
		cfg.MinioEndpoint,
		cfg.MinioPublicURL,
		cfg.MinioAccessKey,
		cfg.MinioSecretKey,
		cfg.MinioBucket,
	)
	if err != nil {
		zap.L().Warn("MinIO connection failed, avatar uploads disabled", zap.Error(err))
		minioSvc = nil
	}

	tp, err := middleware.InitTracer("quotevault-api", cfg.JaegerEndpoint)
	if err != nil {
		zap.L().Fatal("failed to init tracer", zap.Error(err))
	}

	return &ServiceContext{
		Config:         cfg,
		DB:             dbConn,
		Cache:          rdb,
		Minio:          minioSvc,
		tracerProvider: tp,
	}
}

func (s *ServiceContext) Close() {
	if s.tracerProvider != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.tracerProvider.Shutdown(ctx); err != nil {
			zap.L().Error("tracer shutdown error", zap.Error(err))
		}
	}
}
