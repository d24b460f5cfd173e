package qrcode

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/namefreezers/forecast-qr-api/internal/config"
)

// Build constructs the Generator used by the API:
// 1) a skip2-backed renderer at the configured pixel scale
// 2) decorated with a Redis cache when REDIS_ADDR is set
func Build(cfg *config.Config, logger *zap.Logger) (Generator, error) {
	base := NewSkipGenerator(cfg.PixelsPerModule)
	if cfg.RedisAddr == "" {
		logger.Info("qr cache disabled")
		return base, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       0,
	})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	logger.Info("qr cache enabled",
		zap.String("addr", cfg.RedisAddr),
		zap.Duration("ttl", cfg.QRCacheTTL))

	return NewCachingGenerator(base, rdb, cfg.QRCacheTTL, strconv.Itoa(base.PixelsPerModule()), logger), nil
}
