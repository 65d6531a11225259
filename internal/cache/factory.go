package cache

import (
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Config struct {
	Backend       string
	TTL           time.Duration
	SweepInterval time.Duration
	Prefix        string
}

func NewStore(cfg Config, redisClient *redis.Client, logger *zap.Logger) Store {
	switch cfg.Backend {
	case "redis":
		return NewRedisStore(redisClient, RedisConfig{
			Prefix: cfg.Prefix,
		})
	default:
		return NewMemoryStore(cfg.SweepInterval, logger)
	}
}
