package cache

import (
	"context"
	"time"
)

// Stats describes the cache contents for the introspection endpoint.
type Stats struct {
	TotalEntries int `json:"total_entries"`
	ValidEntries int `json:"valid_entries"`
}

// Store is the response-cache interface used by the handlers.
// Implemented by the memory store (dev) and the Redis store (prod).
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Clear(ctx context.Context) error
	Stats(ctx context.Context) (Stats, error)
}
