package replay

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const noncePrefix = "qr:nonce:"

// RedisCache is a shared replay cache keyed by nonce with TTL-based expiry.
// Required when more than one verifier instance is running; redis handles the
// purge through key expiry.
type RedisCache struct {
	client *redis.Client
}

func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

// NewRedisClient builds a client from plain connection settings.
func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

func (c *RedisCache) HasBeenUsed(ctx context.Context, nonce string, now time.Time) (bool, error) {
	n, err := c.client.Exists(ctx, noncePrefix+nonce).Result()
	if err != nil {
		return false, fmt.Errorf("replay cache lookup: %w", err)
	}
	return n > 0, nil
}

func (c *RedisCache) MarkUsed(ctx context.Context, nonce string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		// Already expired; verification rejects it without the cache.
		return nil
	}
	if err := c.client.Set(ctx, noncePrefix+nonce, "1", ttl).Err(); err != nil {
		return fmt.Errorf("replay cache store: %w", err)
	}
	return nil
}
