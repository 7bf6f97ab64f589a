package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/wady/orderhub/internal/domain/catalog"
	"github.com/wady/orderhub/internal/infrastructure/config"
)

const (
	defaultScanBatchSize = 100
	defaultProductTTL    = 5 * time.Minute

	productKeyPrefix = "catalog:product:"
	catalogListKey   = "catalog:all"
)

// RedisProductCache implements ProductCache using Redis
type RedisProductCache struct {
	client     *redis.Client
	ownsClient bool // true if we created the client and should close it
	defaultTTL time.Duration
	logger     *zap.Logger
}

// RedisProductCacheOption is a functional option for configuring the cache
type RedisProductCacheOption func(*RedisProductCache)

// WithRedisLogger sets the logger for the cache
func WithRedisLogger(logger *zap.Logger) RedisProductCacheOption {
	return func(c *RedisProductCache) {
		c.logger = logger
	}
}

// WithRedisTTL sets the default TTL applied when SetAll is called with ttl 0
func WithRedisTTL(ttl time.Duration) RedisProductCacheOption {
	return func(c *RedisProductCache) {
		c.defaultTTL = ttl
	}
}

// NewRedisProductCache creates a Redis-backed product cache and verifies
// the connection before returning
func NewRedisProductCache(cfg config.CacheConfig, opts ...RedisProductCacheOption) (*RedisProductCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	cache := NewRedisProductCacheWithClient(client, opts...)
	cache.ownsClient = true
	return cache, nil
}

// NewRedisProductCacheWithClient creates a cache with an existing Redis client.
// The caller retains ownership of the client and is responsible for closing it.
func NewRedisProductCacheWithClient(client *redis.Client, opts ...RedisProductCacheOption) *RedisProductCache {
	cache := &RedisProductCache{
		client:     client,
		ownsClient: false,
		defaultTTL: defaultProductTTL,
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(cache)
	}
	return cache
}

// Get retrieves a single product from cache
func (c *RedisProductCache) Get(ctx context.Context, id string) (*catalog.Product, error) {
	cacheKey := productKeyPrefix + id

	data, err := c.client.Get(ctx, cacheKey).Bytes()
	if err == redis.Nil {
		c.logger.Debug("Cache miss for product", zap.String("product_id", id))
		return nil, nil
	}
	if err != nil {
		c.logger.Error("Failed to get product from cache",
			zap.String("product_id", id),
			zap.Error(err))
		return nil, fmt.Errorf("failed to get product from cache: %w", err)
	}

	var product catalog.Product
	if err := json.Unmarshal(data, &product); err != nil {
		// Delete corrupted cache entry
		_ = c.client.Del(ctx, cacheKey)
		return nil, fmt.Errorf("failed to unmarshal product: %w", err)
	}

	c.logger.Debug("Cache hit for product", zap.String("product_id", id))
	return &product, nil
}

// GetAll retrieves the full catalog from cache
func (c *RedisProductCache) GetAll(ctx context.Context) ([]catalog.Product, error) {
	data, err := c.client.Get(ctx, catalogListKey).Bytes()
	if err == redis.Nil {
		c.logger.Debug("Cache miss for catalog list")
		return nil, nil
	}
	if err != nil {
		c.logger.Error("Failed to get catalog from cache", zap.Error(err))
		return nil, fmt.Errorf("failed to get catalog from cache: %w", err)
	}

	var products []catalog.Product
	if err := json.Unmarshal(data, &products); err != nil {
		_ = c.client.Del(ctx, catalogListKey)
		return nil, fmt.Errorf("failed to unmarshal catalog: %w", err)
	}

	c.logger.Debug("Cache hit for catalog list", zap.Int("count", len(products)))
	return products, nil
}

// SetAll stores the full catalog in cache
func (c *RedisProductCache) SetAll(ctx context.Context, products []catalog.Product, ttl time.Duration) error {
	if ttl == 0 {
		ttl = c.defaultTTL
	}

	data, err := json.Marshal(products)
	if err != nil {
		return fmt.Errorf("failed to marshal catalog: %w", err)
	}

	pipe := c.client.Pipeline()
	pipe.Set(ctx, catalogListKey, data, ttl)
	for i := range products {
		item, err := json.Marshal(&products[i])
		if err != nil {
			return fmt.Errorf("failed to marshal product: %w", err)
		}
		pipe.Set(ctx, productKeyPrefix+products[i].ID, item, ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		c.logger.Error("Failed to set catalog in cache", zap.Error(err))
		return fmt.Errorf("failed to set catalog in cache: %w", err)
	}

	c.logger.Debug("Cached catalog",
		zap.Int("count", len(products)),
		zap.Duration("ttl", ttl))
	return nil
}

// InvalidateAll removes all cached products.
// Uses SCAN to avoid blocking Redis with the KEYS command.
func (c *RedisProductCache) InvalidateAll(ctx context.Context) error {
	var cursor uint64
	var deletedCount int64

	for {
		var keys []string
		var err error
		keys, cursor, err = c.client.Scan(ctx, cursor, "catalog:*", defaultScanBatchSize).Result()
		if err != nil {
			c.logger.Error("Failed to scan catalog keys", zap.Error(err))
			return fmt.Errorf("failed to scan cache keys: %w", err)
		}

		if len(keys) > 0 {
			deleted, err := c.client.Del(ctx, keys...).Result()
			if err != nil {
				c.logger.Error("Failed to delete catalog keys", zap.Error(err))
				return fmt.Errorf("failed to delete cache keys: %w", err)
			}
			deletedCount += deleted
		}

		if cursor == 0 {
			break
		}
	}

	c.logger.Info("Invalidated catalog cache", zap.Int64("deleted_count", deletedCount))
	return nil
}

// Close releases the Redis client if this cache created it
func (c *RedisProductCache) Close() error {
	if c.ownsClient {
		return c.client.Close()
	}
	return nil
}

// Ensure RedisProductCache implements ProductCache
var _ ProductCache = (*RedisProductCache)(nil)
