package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wady/orderhub/internal/domain/catalog"
	"github.com/wady/orderhub/internal/infrastructure/config"
)

func configWithBackend(backend string) config.CacheConfig {
	return config.CacheConfig{Backend: backend, TTL: time.Minute}
}

func testProducts() []catalog.Product {
	return []catalog.Product{
		{ID: "prod-1", Name: "Cabbage", SKU: "VEG-001", Unit: "case"},
		{ID: "prod-2", Name: "Carrot", SKU: "VEG-002", Unit: "bag"},
	}
}

func TestInMemoryProductCache_SetAllAndGet(t *testing.T) {
	cache := NewInMemoryProductCache()
	defer cache.Close()
	ctx := context.Background()

	require.NoError(t, cache.SetAll(ctx, testProducts(), time.Minute))

	product, err := cache.Get(ctx, "prod-1")
	require.NoError(t, err)
	require.NotNil(t, product)
	assert.Equal(t, "Cabbage", product.Name)

	all, err := cache.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestInMemoryProductCache_Miss(t *testing.T) {
	cache := NewInMemoryProductCache()
	defer cache.Close()
	ctx := context.Background()

	product, err := cache.Get(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, product)

	all, err := cache.GetAll(ctx)
	require.NoError(t, err)
	assert.Nil(t, all)

	hits, misses := cache.Stats()
	assert.Equal(t, int64(0), hits)
	assert.Equal(t, int64(2), misses)
}

func TestInMemoryProductCache_Expiry(t *testing.T) {
	cache := NewInMemoryProductCache()
	defer cache.Close()
	ctx := context.Background()

	require.NoError(t, cache.SetAll(ctx, testProducts(), time.Millisecond))
	time.Sleep(5 * time.Millisecond)

	product, err := cache.Get(ctx, "prod-1")
	require.NoError(t, err)
	assert.Nil(t, product)

	all, err := cache.GetAll(ctx)
	require.NoError(t, err)
	assert.Nil(t, all)
}

func TestInMemoryProductCache_InvalidateAll(t *testing.T) {
	cache := NewInMemoryProductCache()
	defer cache.Close()
	ctx := context.Background()

	require.NoError(t, cache.SetAll(ctx, testProducts(), time.Minute))
	assert.Equal(t, 2, cache.Count())

	require.NoError(t, cache.InvalidateAll(ctx))
	assert.Equal(t, 0, cache.Count())

	all, err := cache.GetAll(ctx)
	require.NoError(t, err)
	assert.Nil(t, all)
}

func TestInMemoryProductCache_GetAllReturnsCopy(t *testing.T) {
	cache := NewInMemoryProductCache()
	defer cache.Close()
	ctx := context.Background()

	require.NoError(t, cache.SetAll(ctx, testProducts(), time.Minute))

	all, err := cache.GetAll(ctx)
	require.NoError(t, err)
	all[0].Name = "mutated"

	again, err := cache.GetAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Cabbage", again[0].Name)
}

func TestNewProductCache_UnknownBackend(t *testing.T) {
	_, err := NewProductCache(configWithBackend("memcached"), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown cache backend")
}

func TestNewProductCache_Memory(t *testing.T) {
	cache, err := NewProductCache(configWithBackend("memory"), nil)
	require.NoError(t, err)
	defer cache.Close()
	assert.IsType(t, &InMemoryProductCache{}, cache)
}
