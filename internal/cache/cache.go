package cache

import (
	"context"
	"errors"
	"time"
)

// ErrCacheMiss is returned by Get when the key holds nothing.
var ErrCacheMiss = errors.New("cache miss")

// Cache stores opaque values for a limited time.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	Ping(ctx context.Context) error
	Enabled() bool
}

// NoopCache always misses. It stands in when no Redis address is configured.
type NoopCache struct{}

func (NoopCache) Get(context.Context, string) ([]byte, error) { return nil, ErrCacheMiss }

func (NoopCache) Set(context.Context, string, []byte, time.Duration) error { return nil }

func (NoopCache) Delete(context.Context, ...string) error { return nil }

func (NoopCache) Ping(context.Context) error { return nil }

func (NoopCache) Enabled() bool { return false }
