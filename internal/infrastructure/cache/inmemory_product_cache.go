package cache

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/wady/orderhub/internal/domain/catalog"
)

const defaultCleanupInterval = 30 * time.Second

// InMemoryProductCache implements ProductCache using in-memory storage.
// Suitable for single-instance deployments without Redis.
type InMemoryProductCache struct {
	products   sync.Map // map[string]*cacheEntry[catalog.Product]
	list       sync.Map // catalogListKey -> *cacheEntry[[]catalog.Product]
	defaultTTL time.Duration
	logger     *zap.Logger
	stopCh     chan struct{}
	stopped    int32

	// Stats for monitoring
	hits   int64
	misses int64
}

// cacheEntry wraps a cached value with expiration time
type cacheEntry[T any] struct {
	value     T
	expiresAt time.Time
}

func (e *cacheEntry[T]) isExpired() bool {
	return time.Now().After(e.expiresAt)
}

// InMemoryProductCacheOption is a functional option for configuring the cache
type InMemoryProductCacheOption func(*InMemoryProductCache)

// WithInMemoryLogger sets the logger for the cache
func WithInMemoryLogger(logger *zap.Logger) InMemoryProductCacheOption {
	return func(c *InMemoryProductCache) {
		c.logger = logger
	}
}

// WithInMemoryTTL sets the default TTL applied when SetAll is called with ttl 0
func WithInMemoryTTL(ttl time.Duration) InMemoryProductCacheOption {
	return func(c *InMemoryProductCache) {
		c.defaultTTL = ttl
	}
}

// NewInMemoryProductCache creates a new in-memory product cache
func NewInMemoryProductCache(opts ...InMemoryProductCacheOption) *InMemoryProductCache {
	cache := &InMemoryProductCache{
		defaultTTL: defaultProductTTL,
		logger:     zap.NewNop(),
		stopCh:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(cache)
	}

	go cache.cleanupExpired()

	return cache
}

// Get retrieves a single product from cache
func (c *InMemoryProductCache) Get(ctx context.Context, id string) (*catalog.Product, error) {
	if value, ok := c.products.Load(id); ok {
		entry := value.(*cacheEntry[catalog.Product])
		if !entry.isExpired() {
			atomic.AddInt64(&c.hits, 1)
			product := entry.value
			return &product, nil
		}
		c.products.Delete(id)
	}

	atomic.AddInt64(&c.misses, 1)
	return nil, nil
}

// GetAll retrieves the full catalog from cache
func (c *InMemoryProductCache) GetAll(ctx context.Context) ([]catalog.Product, error) {
	if value, ok := c.list.Load(catalogListKey); ok {
		entry := value.(*cacheEntry[[]catalog.Product])
		if !entry.isExpired() {
			atomic.AddInt64(&c.hits, 1)
			out := make([]catalog.Product, len(entry.value))
			copy(out, entry.value)
			return out, nil
		}
		c.list.Delete(catalogListKey)
	}

	atomic.AddInt64(&c.misses, 1)
	return nil, nil
}

// SetAll stores the full catalog in cache
func (c *InMemoryProductCache) SetAll(ctx context.Context, products []catalog.Product, ttl time.Duration) error {
	if ttl == 0 {
		ttl = c.defaultTTL
	}
	expiresAt := time.Now().Add(ttl)

	stored := make([]catalog.Product, len(products))
	copy(stored, products)
	c.list.Store(catalogListKey, &cacheEntry[[]catalog.Product]{
		value:     stored,
		expiresAt: expiresAt,
	})

	for _, p := range products {
		c.products.Store(p.ID, &cacheEntry[catalog.Product]{
			value:     p,
			expiresAt: expiresAt,
		})
	}

	c.logger.Debug("Cached catalog in memory",
		zap.Int("count", len(products)),
		zap.Duration("ttl", ttl))
	return nil
}

// InvalidateAll removes all cached products
func (c *InMemoryProductCache) InvalidateAll(ctx context.Context) error {
	c.products.Range(func(key, _ any) bool {
		c.products.Delete(key)
		return true
	})
	c.list.Delete(catalogListKey)

	c.logger.Info("Invalidated in-memory catalog cache")
	return nil
}

// Close stops the cleanup goroutine
func (c *InMemoryProductCache) Close() error {
	if atomic.CompareAndSwapInt32(&c.stopped, 0, 1) {
		close(c.stopCh)
	}
	return nil
}

// Stats returns cache hit and miss counters
func (c *InMemoryProductCache) Stats() (hits, misses int64) {
	return atomic.LoadInt64(&c.hits), atomic.LoadInt64(&c.misses)
}

// Count returns the number of individually cached products
func (c *InMemoryProductCache) Count() int {
	count := 0
	c.products.Range(func(_, _ any) bool {
		count++
		return true
	})
	return count
}

// cleanupExpired periodically removes expired entries from the cache
func (c *InMemoryProductCache) cleanupExpired() {
	ticker := time.NewTicker(defaultCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stopCh:
			return
		case <-ticker.C:
			c.doCleanup()
		}
	}
}

func (c *InMemoryProductCache) doCleanup() {
	var removed int

	c.products.Range(func(key, value any) bool {
		entry := value.(*cacheEntry[catalog.Product])
		if entry.isExpired() {
			c.products.Delete(key)
			removed++
		}
		return true
	})

	if value, ok := c.list.Load(catalogListKey); ok {
		if value.(*cacheEntry[[]catalog.Product]).isExpired() {
			c.list.Delete(catalogListKey)
			removed++
		}
	}

	if removed > 0 {
		hits, misses := c.Stats()
		c.logger.Debug("Cleaned up expired cache entries",
			zap.Int("removed", removed),
			zap.Int("remaining", c.Count()),
			zap.Int64("hits", hits),
			zap.Int64("misses", misses))
	}
}

// Ensure InMemoryProductCache implements ProductCache
var _ ProductCache = (*InMemoryProductCache)(nil)
