package replay

import (
	"context"
	"sync"
	"time"
)

// MemoryCache is an in-process replay cache for a single verification point.
// Expired entries are purged lazily on each access, so the map is bounded by
// the number of live tokens.
type MemoryCache struct {
	mu   sync.Mutex
	used map[string]time.Time
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		used: make(map[string]time.Time),
	}
}

func (c *MemoryCache) HasBeenUsed(ctx context.Context, nonce string, now time.Time) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.purgeLocked(now)

	_, used := c.used[nonce]
	return used, nil
}

func (c *MemoryCache) MarkUsed(ctx context.Context, nonce string, expiresAt time.Time) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.used[nonce] = expiresAt
	return nil
}

// purgeLocked drops entries whose own token expiry has passed. An expired
// token fails verification anyway, so its nonce no longer needs tracking.
func (c *MemoryCache) purgeLocked(now time.Time) {
	for nonce, expiresAt := range c.used {
		if now.After(expiresAt) {
			delete(c.used, nonce)
		}
	}
}
