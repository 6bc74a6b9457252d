package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	// StockCacheTTL is the time-to-live for cached stock levels.
	StockCacheTTL = 24 * time.Hour

	stockCacheKeyPrefix = "stock"
)

// CachedStock is the denormalized stock read model stored in Redis. The
// worker refreshes it from movement events; dashboards read it without
// touching Postgres.
type CachedStock struct {
	ItemID       uuid.UUID `json:"item_id"`
	Code         string    `json:"code"`
	CurrentStock int       `json:"current_stock"`
	MinimumStock int       `json:"minimum_stock"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// BelowMinimum reports whether the cached level is under the item's minimum.
func (s *CachedStock) BelowMinimum() bool {
	return s.CurrentStock < s.MinimumStock
}

// StockCache provides structured read/write operations for stock cache entries.
// Key format: "stock:{itemID}"
type StockCache struct {
	client *RedisClient
}

// NewStockCache creates a new StockCache backed by the given RedisClient.
func NewStockCache(r *RedisClient) *StockCache {
	return &StockCache{client: r}
}

// Get retrieves a cached stock level by item ID.
// Returns redis.Nil error when the key does not exist or has expired.
func (c *StockCache) Get(ctx context.Context, itemID uuid.UUID) (*CachedStock, error) {
	key := c.key(itemID)
	vals, err := c.client.Client().HGetAll(ctx, key).Result()
	if err != nil {
		return nil, fmt.Errorf("cache get: %w", err)
	}
	if len(vals) == 0 {
		return nil, redis.Nil // key not found
	}

	id, err := uuid.Parse(vals["item_id"])
	if err != nil {
		return nil, fmt.Errorf("cache parse item_id: %w", err)
	}
	current, err := strconv.Atoi(vals["current_stock"])
	if err != nil {
		return nil, fmt.Errorf("cache parse current_stock: %w", err)
	}
	minimum, err := strconv.Atoi(vals["minimum_stock"])
	if err != nil {
		return nil, fmt.Errorf("cache parse minimum_stock: %w", err)
	}
	updatedAt, err := time.Parse(time.RFC3339Nano, vals["updated_at"])
	if err != nil {
		return nil, fmt.Errorf("cache parse updated_at: %w", err)
	}

	return &CachedStock{
		ItemID:       id,
		Code:         vals["code"],
		CurrentStock: current,
		MinimumStock: minimum,
		UpdatedAt:    updatedAt,
	}, nil
}

// Set writes a cached stock level as a Redis hash with a 24-hour TTL.
// Uses a pipeline to set all fields and the TTL atomically.
func (c *StockCache) Set(ctx context.Context, stock *CachedStock) error {
	key := c.key(stock.ItemID)
	pipe := c.client.Client().Pipeline()
	pipe.HSet(ctx, key,
		"item_id", stock.ItemID.String(),
		"code", stock.Code,
		"current_stock", strconv.Itoa(stock.CurrentStock),
		"minimum_stock", strconv.Itoa(stock.MinimumStock),
		"updated_at", stock.UpdatedAt.UTC().Format(time.RFC3339Nano),
	)
	pipe.Expire(ctx, key, StockCacheTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

// Delete removes a cached stock level.
func (c *StockCache) Delete(ctx context.Context, itemID uuid.UUID) error {
	if err := c.client.Client().Del(ctx, c.key(itemID)).Err(); err != nil {
		return fmt.Errorf("cache delete: %w", err)
	}
	return nil
}

// key builds the Redis key: "stock:{itemID}"
func (c *StockCache) key(itemID uuid.UUID) string {
	return fmt.Sprintf("%s:%s", stockCacheKeyPrefix, itemID)
}
