package cache

import (
	"context"
	"errors"
	"time"

	"go-support/internal/config"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// RedisCache wraps the go-redis client.
type RedisCache struct {
	Client *redis.Client
}

func NewRedisCache(cfg *config.Config) *RedisCache {
	return &RedisCache{
		Client: redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		}),
	}
}

func (r *RedisCache) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := r.Client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	return value, err
}

func (r *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return r.Client.Set(ctx, key, value, ttl).Err()
}

func (r *RedisCache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return r.Client.Del(ctx, keys...).Err()
}

// Ping verifies Redis connectivity.
func (r *RedisCache) Ping(ctx context.Context) error {
	return r.Client.Ping(ctx).Err()
}

func (r *RedisCache) Enabled() bool { return true }

// Close closes the client.
func (r *RedisCache) Close() error {
	return r.Client.Close()
}

// NewCache provides Redis when REDIS_ADDR is set and a no-op cache otherwise.
// An unreachable Redis at startup is logged, not fatal.
func NewCache(lc fx.Lifecycle, cfg *config.Config, logger *zap.Logger) Cache {
	if cfg.RedisAddr == "" {
		logger.Info("REDIS_ADDR not set, caching disabled")
		return NoopCache{}
	}

	rc := NewRedisCache(cfg)
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := rc.Ping(ctx); err != nil {
				logger.Warn("unable to reach redis", zap.String("addr", cfg.RedisAddr), zap.Error(err))
			} else {
				logger.Info("connected to redis", zap.String("addr", cfg.RedisAddr))
			}
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return rc.Close()
		},
	})
	return rc
}
