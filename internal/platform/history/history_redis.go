// Package history stores the most recently committed symbols in Redis.
package history

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"quotepanel/internal/feature/quotes/usecase"
)

const (
	// DefaultKey is the Redis list holding recent symbols.
	DefaultKey = "quotepanel:recent_symbols"
	// DefaultSize caps the list length.
	DefaultSize = 10
	// DefaultTTL expires an idle list.
	DefaultTTL = 7 * 24 * time.Hour
)

// RedisHistory implements usecase.SymbolHistory with a capped Redis list, newest first.
type RedisHistory struct {
	client *redis.Client
	key    string
	size   int
	ttl    time.Duration
}

var _ usecase.SymbolHistory = (*RedisHistory)(nil)

// NewRedisHistory creates a new RedisHistory. Zero values take the package defaults.
func NewRedisHistory(client *redis.Client, key string, size int, ttl time.Duration) *RedisHistory {
	if key == "" {
		key = DefaultKey
	}
	if size <= 0 {
		size = DefaultSize
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisHistory{client: client, key: key, size: size, ttl: ttl}
}

// Push moves symbol to the head of the list and trims the tail.
func (h *RedisHistory) Push(ctx context.Context, symbol string) error {
	if err := h.client.LRem(ctx, h.key, 0, symbol).Err(); err != nil {
		return fmt.Errorf("lrem %s: %w", h.key, err)
	}
	if err := h.client.LPush(ctx, h.key, symbol).Err(); err != nil {
		return fmt.Errorf("lpush %s: %w", h.key, err)
	}
	if err := h.client.LTrim(ctx, h.key, 0, int64(h.size-1)).Err(); err != nil {
		return fmt.Errorf("ltrim %s: %w", h.key, err)
	}
	if err := h.client.Expire(ctx, h.key, h.ttl).Err(); err != nil {
		return fmt.Errorf("expire %s: %w", h.key, err)
	}
	return nil
}

// Recent returns up to n symbols, newest first. n <= 0 returns the whole list.
func (h *RedisHistory) Recent(ctx context.Context, n int) ([]string, error) {
	if n <= 0 || n > h.size {
		n = h.size
	}
	out, err := h.client.LRange(ctx, h.key, 0, int64(n-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("lrange %s: %w", h.key, err)
	}
	if out == nil {
		out = []string{}
	}
	return out, nil
}
