// Package cache holds the Redis read-through cache for perfume details.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// PerfumeCache stores serialized perfume details by id. A nil cache or a nil
// client turns every call into a no-op, so the API runs without Redis.
type PerfumeCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisClient connects to redisURL and verifies the connection.
func NewRedisClient(ctx context.Context, redisURL, password string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	if password != "" {
		opts.Password = password
	}
	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second

	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return rdb, nil
}

func NewPerfumeCache(client *redis.Client, ttl time.Duration) *PerfumeCache {
	return &PerfumeCache{client: client, ttl: ttl}
}

func detailKey(perfumeID int64) string {
	return fmt.Sprintf("perfume:detail:%d", perfumeID)
}

// GetDetail decodes the cached detail into dst. It reports false on a miss.
func (c *PerfumeCache) GetDetail(ctx context.Context, perfumeID int64, dst any) (bool, error) {
	if c == nil || c.client == nil {
		return false, nil
	}

	raw, err := c.client.Get(ctx, detailKey(perfumeID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		// stale layout, treat as a miss
		return false, nil
	}
	return true, nil
}

// SetDetail stores v under the perfume id with the configured TTL.
func (c *PerfumeCache) SetDetail(ctx context.Context, perfumeID int64, v any) error {
	if c == nil || c.client == nil {
		return nil
	}

	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode perfume detail: %w", err)
	}
	return c.client.Set(ctx, detailKey(perfumeID), raw, c.ttl).Err()
}

// Invalidate drops the cached detail of the perfume.
func (c *PerfumeCache) Invalidate(ctx context.Context, perfumeID int64) error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Del(ctx, detailKey(perfumeID)).Err()
}
