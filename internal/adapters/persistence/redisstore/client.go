// Package redisstore implements the example repository on Redis.
//
// Aggregates are JSON documents in one hash; a sorted set scored by a
// counter keeps insertion order. Multi-key writes run under WATCH/MULTI so
// they apply completely or not at all.
package redisstore

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/juaoantonio/clean-arch-ddd-template/internal/platform/config"
)

// NewClient connects to Redis using cfg and verifies the connection.
func NewClient(ctx context.Context, cfg *config.RedisConfig) (*redis.Client, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}

	if cfg.PoolSize > 0 {
		opts.PoolSize = cfg.PoolSize
	}

	opts.MinIdleConns = cfg.MinIdleConns

	if cfg.DialTimeout > 0 {
		opts.DialTimeout = cfg.DialTimeout
	}

	if cfg.ReadTimeout > 0 {
		opts.ReadTimeout = cfg.ReadTimeout
	}

	if cfg.WriteTimeout > 0 {
		opts.WriteTimeout = cfg.WriteTimeout
	}

	client := redis.NewClient(opts)

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return client, nil
}

// HealthChecker reports Redis connectivity to the readiness probe.
type HealthChecker struct {
	client redis.UniversalClient
}

// NewHealthChecker creates a health checker for client.
func NewHealthChecker(client redis.UniversalClient) *HealthChecker {
	return &HealthChecker{client: client}
}

// Name implements ports.HealthChecker.
func (h *HealthChecker) Name() string {
	return "redis"
}

// Check implements ports.HealthChecker.
func (h *HealthChecker) Check(ctx context.Context) error {
	return h.client.Ping(ctx).Err()
}
