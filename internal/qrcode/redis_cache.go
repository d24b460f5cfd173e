package qrcode

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	redis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// CachingGenerator decorates another Generator with a Redis cache.
type CachingGenerator struct {
	inner     Generator
	redis     *redis.Client
	ttl       time.Duration
	namespace string
	logger    *zap.Logger
}

// NewCachingGenerator returns a Generator that first looks in Redis,
// falling back to inner on cache-miss. namespace separates entries rendered
// with different settings (e.g. pixel scale).
func NewCachingGenerator(inner Generator, rdb *redis.Client, ttl time.Duration, namespace string, logger *zap.Logger) *CachingGenerator {
	return &CachingGenerator{inner: inner, redis: rdb, ttl: ttl, namespace: namespace, logger: logger}
}

func (c *CachingGenerator) key(text string) string {
	sum := sha256.Sum256([]byte(text))
	return "qrcode:" + c.namespace + ":" + hex.EncodeToString(sum[:])
}

// Generate implements Generator. Redis failures are logged and bypassed.
func (c *CachingGenerator) Generate(ctx context.Context, text string) ([]byte, error) {
	key := c.key(text)

	// 1) Try cache
	raw, err := c.redis.Get(ctx, key).Bytes()
	if err == nil {
		c.logger.Debug("qr cache hit", zap.String("key", key))
		return raw, nil
	} else if !errors.Is(err, redis.Nil) {
		c.logger.Warn("redis GET failed", zap.Error(err))
	}

	// 2) Cache-miss -> delegate to inner
	png, err := c.inner.Generate(ctx, text)
	if err != nil {
		return nil, err
	}

	// 3) Store in cache
	if serr := c.redis.Set(ctx, key, png, c.ttl).Err(); serr != nil {
		c.logger.Warn("redis SET failed", zap.Error(serr))
	}
	return png, nil
}
