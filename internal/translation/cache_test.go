package translation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()

	_, ok := c.Get(ctx, "en", "Havuz")
	assert.False(t, ok)

	c.Put(ctx, "en", "Havuz", "Pool")
	value, ok := c.Get(ctx, "en", "Havuz")
	require.True(t, ok)
	assert.Equal(t, "Pool", value)

	// Entries are keyed per language.
	_, ok = c.Get(ctx, "de", "Havuz")
	assert.False(t, ok)

	require.NoError(t, c.Clear(ctx))
	_, ok = c.Get(ctx, "en", "Havuz")
	assert.False(t, ok)
}

func TestLayeredCacheBackfillsMemoryTier(t *testing.T) {
	ctx := context.Background()
	memory := NewMemoryCache()
	durable := NewMemoryCache()
	durable.Put(ctx, "en", "Resepsiyon", "Reception")

	layered := NewLayeredCache(memory, durable)

	value, ok := layered.Get(ctx, "en", "Resepsiyon")
	require.True(t, ok)
	assert.Equal(t, "Reception", value)

	// The durable hit is now present in the memory tier.
	value, ok = memory.Get(ctx, "en", "Resepsiyon")
	require.True(t, ok)
	assert.Equal(t, "Reception", value)
}

func TestLayeredCachePutWritesBothTiers(t *testing.T) {
	ctx := context.Background()
	memory := NewMemoryCache()
	durable := NewMemoryCache()
	layered := NewLayeredCache(memory, durable)

	layered.Put(ctx, "de", "Kahvaltı", "Frühstück")

	_, ok := memory.Get(ctx, "de", "Kahvaltı")
	assert.True(t, ok)
	_, ok = durable.Get(ctx, "de", "Kahvaltı")
	assert.True(t, ok)
}

func TestLayeredCacheClearEmptiesBothTiers(t *testing.T) {
	ctx := context.Background()
	memory := NewMemoryCache()
	durable := NewMemoryCache()
	layered := NewLayeredCache(memory, durable)

	layered.Put(ctx, "en", "Havuz", "Pool")
	require.NoError(t, layered.Clear(ctx))

	_, ok := memory.Get(ctx, "en", "Havuz")
	assert.False(t, ok)
	_, ok = durable.Get(ctx, "en", "Havuz")
	assert.False(t, ok)
}

func TestLayeredCacheWithoutDurableTier(t *testing.T) {
	ctx := context.Background()
	layered := NewLayeredCache(NewMemoryCache(), nil)

	layered.Put(ctx, "en", "Havuz", "Pool")
	value, ok := layered.Get(ctx, "en", "Havuz")
	require.True(t, ok)
	assert.Equal(t, "Pool", value)
	assert.NoError(t, layered.Clear(ctx))
}
