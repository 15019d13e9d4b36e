package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/e-garderoba/backend/internal/core/ports"
)

const cacheTTL = 5 * time.Minute

// UserCache is a read-through cache of user projections backed by Redis.
// Key format: user:<id>
type UserCache struct {
	client *redis.Client
}

// NewUserCache creates a UserCache wrapping the given Redis client.
func NewUserCache(client *redis.Client) *UserCache {
	return &UserCache{client: client}
}

// Get returns the cached projection for id, or nil on a cache miss.
func (c *UserCache) Get(ctx context.Context, id int64) (*ports.UserView, error) {
	raw, err := c.client.Get(ctx, c.key(id)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cache get: %w", err)
	}

	var view ports.UserView
	if err := json.Unmarshal(raw, &view); err != nil {
		// A corrupt entry behaves like a miss; the caller re-reads the store.
		return nil, fmt.Errorf("cache decode: %w", err)
	}
	return &view, nil
}

// Set stores the projection under its id (expires after cacheTTL).
func (c *UserCache) Set(ctx context.Context, view *ports.UserView) error {
	raw, err := json.Marshal(view)
	if err != nil {
		return fmt.Errorf("cache encode: %w", err)
	}
	return c.client.Set(ctx, c.key(view.ID), raw, cacheTTL).Err()
}

// Invalidate drops the cached projection for id.
func (c *UserCache) Invalidate(ctx context.Context, id int64) error {
	return c.client.Del(ctx, c.key(id)).Err()
}

func (c *UserCache) key(id int64) string {
	return fmt.Sprintf("user:%d", id)
}
