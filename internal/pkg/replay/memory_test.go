package replay

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCache_MarkAndCheck(t *testing.T) {
	t.Parallel()
	cache := NewMemoryCache()
	ctx := context.Background()
	now := time.Date(2024, 3, 12, 8, 0, 0, 0, time.UTC)

	used, err := cache.HasBeenUsed(ctx, "nonce-1", now)
	require.NoError(t, err)
	assert.False(t, used)

	require.NoError(t, cache.MarkUsed(ctx, "nonce-1", now.Add(20*time.Second)))

	used, err = cache.HasBeenUsed(ctx, "nonce-1", now.Add(5*time.Second))
	require.NoError(t, err)
	assert.True(t, used)
}

func TestMemoryCache_LazyPurgeAfterExpiry(t *testing.T) {
	t.Parallel()
	cache := NewMemoryCache()
	ctx := context.Background()
	now := time.Date(2024, 3, 12, 8, 0, 0, 0, time.UTC)

	require.NoError(t, cache.MarkUsed(ctx, "nonce-1", now.Add(20*time.Second)))

	// Past the token's own expiry the nonce no longer matters: the token
	// fails verification anyway, so the entry is dropped.
	used, err := cache.HasBeenUsed(ctx, "nonce-1", now.Add(30*time.Second))
	require.NoError(t, err)
	assert.False(t, used)

	cache.mu.Lock()
	defer cache.mu.Unlock()
	assert.Empty(t, cache.used)
}

func TestMemoryCache_PurgeKeepsLiveEntries(t *testing.T) {
	t.Parallel()
	cache := NewMemoryCache()
	ctx := context.Background()
	now := time.Date(2024, 3, 12, 8, 0, 0, 0, time.UTC)

	require.NoError(t, cache.MarkUsed(ctx, "short", now.Add(10*time.Second)))
	require.NoError(t, cache.MarkUsed(ctx, "long", now.Add(60*time.Second)))

	used, err := cache.HasBeenUsed(ctx, "long", now.Add(30*time.Second))
	require.NoError(t, err)
	assert.True(t, used)

	used, err = cache.HasBeenUsed(ctx, "short", now.Add(30*time.Second))
	require.NoError(t, err)
	assert.False(t, used)
}
