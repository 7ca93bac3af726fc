package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// Client caches rendered dashboard views in Redis. Mutating workflows call
// Invalidate with the affected view names so stale reads are dropped; a
// missing or unreachable cache degrades to direct database reads.
type Client struct {
	rdb *redis.Client
}

// View keys used across the app.
const (
	ViewOrders    = "orders"
	ViewInventory = "inventory"
	ViewAnalytics = "analytics"
)

func Initialize(redisURL string) (*Client, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	rdb := redis.NewClient(opt)

	// Test connection
	ctx := context.Background()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Client{rdb: rdb}, nil
}

// SetView stores a JSON-encoded view payload under the given view name.
func (c *Client) SetView(view string, value interface{}, ttl time.Duration) error {
	ctx := context.Background()
	jsonData, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal view data: %w", err)
	}

	return c.rdb.Set(ctx, "view:"+view, jsonData, ttl).Err()
}

// GetView loads a cached view into dest. Returns redis.Nil-derived error
// when the view is not cached.
func (c *Client) GetView(view string, dest interface{}) error {
	ctx := context.Background()
	val, err := c.rdb.Get(ctx, "view:"+view).Result()
	if err != nil {
		if err == redis.Nil {
			return fmt.Errorf("view not cached")
		}
		return fmt.Errorf("failed to get view: %w", err)
	}

	return json.Unmarshal([]byte(val), dest)
}

// Invalidate drops the cached payloads for the named views.
func (c *Client) Invalidate(views ...string) error {
	ctx := context.Background()
	keys := make([]string, 0, len(views))
	for _, view := range views {
		keys = append(keys, "view:"+view)
	}
	return c.rdb.Del(ctx, keys...).Err()
}

// Close Redis connection
func (c *Client) Close() error {
	return c.rdb.Close()
}
