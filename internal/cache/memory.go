package cache

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

// MemoryStore is an in-process response cache with TTL expiry. Stale entries
// are removed lazily on read and by a background sweep that runs for the
// process lifetime.
type MemoryStore struct {
	mu            sync.RWMutex
	items         map[string]memoryEntry
	stopSweep     chan struct{}
	sweepOnce     sync.Once
	sweepInterval time.Duration
	logger        *zap.Logger
}

// NewMemoryStore creates an in-memory cache and starts the periodic sweep.
// A sweepInterval <= 0 defaults to 30 minutes.
func NewMemoryStore(sweepInterval time.Duration, logger *zap.Logger) *MemoryStore {
	if sweepInterval <= 0 {
		sweepInterval = 30 * time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	c := &MemoryStore{
		items:         make(map[string]memoryEntry),
		stopSweep:     make(chan struct{}),
		sweepInterval: sweepInterval,
		logger:        logger.Named("cache"),
	}

	go c.sweepLoop()

	return c
}

// Get retrieves a value from the cache. A stale entry is removed as a side
// effect and reported as a miss.
func (c *MemoryStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.RLock()
	entry, ok := c.items[key]
	c.mu.RUnlock()

	if !ok {
		return nil, false, nil
	}

	now := time.Now()
	if now.After(entry.expiresAt) {
		// delete-if-present: the sweep may have raced us to this key
		c.mu.Lock()
		if e, exists := c.items[key]; exists && now.After(e.expiresAt) {
			delete(c.items, key)
		}
		c.mu.Unlock()
		return nil, false, nil
	}

	return entry.value, true, nil
}

// Set stores a value with the given TTL, overwriting any prior entry.
func (c *MemoryStore) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		c.mu.Lock()
		delete(c.items, key)
		c.mu.Unlock()
		return nil
	}

	// copy to decouple from the caller's buffer
	valueCopy := make([]byte, len(value))
	copy(valueCopy, value)

	expiresAt := time.Now().Add(ttl)

	c.mu.Lock()
	c.items[key] = memoryEntry{
		value:     valueCopy,
		expiresAt: expiresAt,
	}
	c.mu.Unlock()

	return nil
}

// Clear removes all items unconditionally.
func (c *MemoryStore) Clear(_ context.Context) error {
	c.mu.Lock()
	c.items = make(map[string]memoryEntry)
	c.mu.Unlock()
	return nil
}

// Stats counts total and unexpired entries.
func (c *MemoryStore) Stats(_ context.Context) (Stats, error) {
	now := time.Now()

	c.mu.RLock()
	defer c.mu.RUnlock()

	st := Stats{TotalEntries: len(c.items)}
	for _, e := range c.items {
		if now.Before(e.expiresAt) {
			st.ValidEntries++
		}
	}
	return st, nil
}

// sweepLoop periodically removes expired entries and logs the count removed.
// A sweep never terminates the loop; it continues to the next period.
func (c *MemoryStore) sweepLoop() {
	ticker := time.NewTicker(c.sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			removed := c.sweep(time.Now())
			if removed > 0 {
				c.logger.Info("cache swept", zap.Int("removed", removed))
			}
		case <-c.stopSweep:
			return
		}
	}
}

func (c *MemoryStore) sweep(now time.Time) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for k, v := range c.items {
		if now.After(v.expiresAt) {
			delete(c.items, k)
			removed++
		}
	}
	return removed
}

// Close stops the sweep goroutine. Call this on shutdown or in tests.
func (c *MemoryStore) Close() error {
	c.sweepOnce.Do(func() {
		close(c.stopSweep)
	})
	return nil
}

// Len returns the number of items currently in the cache.
func (c *MemoryStore) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}
