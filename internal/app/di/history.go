package di

import (
	"github.com/redis/go-redis/v9"

	"quotepanel/internal/feature/quotes/adapters"
	"quotepanel/internal/feature/quotes/usecase"
	"quotepanel/internal/platform/history"
)

// NewSymbolHistory creates a SymbolHistory implementation.
// If Redis is available, it returns a Redis-backed implementation.
// Otherwise, it falls back to an in-process list.
func NewSymbolHistory(rdb *redis.Client, size int) usecase.SymbolHistory {
	if rdb != nil {
		return history.NewRedisHistory(rdb, history.DefaultKey, size, history.DefaultTTL)
	}
	return adapters.NewMemoryHistory(size)
}
