// Package cache memoises featured selections in Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const featuredPrefix = "featured:"

// FeaturedCache stores the ids chosen for a featured grid configuration.
type FeaturedCache interface {
	Get(ctx context.Context, key string) ([]uuid.UUID, bool, error)
	Set(ctx context.Context, key string, ids []uuid.UUID) error
	Invalidate(ctx context.Context) error
}

// FeaturedKey names the cache entry for one pair of grid limits.
func FeaturedKey(maxResults, maxPerCategory int) string {
	return fmt.Sprintf("%s%d:%d", featuredPrefix, maxResults, maxPerCategory)
}

// RedisFeaturedCache is a FeaturedCache backed by Redis.
type RedisFeaturedCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisFeaturedCache(client *redis.Client, ttl time.Duration) *RedisFeaturedCache {
	return &RedisFeaturedCache{client: client, ttl: ttl}
}

func (c *RedisFeaturedCache) Get(ctx context.Context, key string) ([]uuid.UUID, bool, error) {
	raw, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read %s: %w", key, err)
	}
	var ids []uuid.UUID
	if err := json.Unmarshal(raw, &ids); err != nil {
		return nil, false, fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return ids, true, nil
}

func (c *RedisFeaturedCache) Set(ctx context.Context, key string, ids []uuid.UUID) error {
	raw, err := json.Marshal(ids)
	if err != nil {
		return err
	}
	if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

// Invalidate drops every featured entry.
func (c *RedisFeaturedCache) Invalidate(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, featuredPrefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to scan featured keys: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}
