package cache

import (
	"context"
	"time"

	"go.uber.org/zap"

	"dentalgate/internal/metrics"
	"dentalgate/pkg/logging/logging"
)

// LoggingStore wraps a Store with logging + metrics.
type LoggingStore struct {
	inner Store
}

// NewLoggingStore returns a cache that logs and records metrics.
func NewLoggingStore(inner Store) Store {
	return &LoggingStore{inner: inner}
}

func (c *LoggingStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	start := time.Now()
	value, ok, err := c.inner.Get(ctx, key)
	latencyMs := float64(time.Since(start).Microseconds()) / 1000.0

	logger := logging.L(ctx)

	result := "miss"
	if err != nil {
		result = "error"
	} else if ok {
		result = "hit"
		metrics.CacheHitsTotal.Inc()
	}

	fields := []zap.Field{
		zap.String("cache_key", key),
		zap.String("cache_result", result), // hit | miss | error
		zap.Float64("latency_ms", latencyMs),
	}

	if err != nil {
		logger.Error("response_cache_get", append(fields, zap.Error(err))...)
	} else {
		logger.Info("response_cache_get", fields...)
	}

	return value, ok, err
}

func (c *LoggingStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	start := time.Now()
	err := c.inner.Set(ctx, key, value, ttl)
	latencyMs := float64(time.Since(start).Microseconds()) / 1000.0

	logger := logging.L(ctx)

	fields := []zap.Field{
		zap.String("cache_key", key),
		zap.Duration("ttl", ttl),
		zap.Float64("latency_ms", latencyMs),
	}

	if err != nil {
		logger.Error("response_cache_set", append(fields, zap.Error(err))...)
	} else {
		logger.Info("response_cache_set", fields...)
	}

	return err
}

func (c *LoggingStore) Clear(ctx context.Context) error {
	err := c.inner.Clear(ctx)
	if err != nil {
		logging.L(ctx).Error("response_cache_clear", zap.Error(err))
	} else {
		logging.L(ctx).Info("response_cache_clear")
	}
	return err
}

func (c *LoggingStore) Stats(ctx context.Context) (Stats, error) {
	return c.inner.Stats(ctx)
}

// Close forwards shutdown to the wrapped store when it supports it.
func (c *LoggingStore) Close() error {
	if closer, ok := c.inner.(interface{ Close() error }); ok {
		return closer.Close()
	}
	return nil
}
