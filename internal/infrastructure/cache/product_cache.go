package cache

import (
	"context"
	"time"

	"github.com/wady/orderhub/internal/domain/catalog"
)

// ProductCache caches catalog products so that opening an order detail
// does not refetch the full catalog from the order service every time.
type ProductCache interface {
	// Get returns the cached product, or nil on a miss
	Get(ctx context.Context, id string) (*catalog.Product, error)

	// GetAll returns the cached full catalog, or nil on a miss
	GetAll(ctx context.Context) ([]catalog.Product, error)

	// SetAll stores the full catalog, keyed both as a list and per product
	SetAll(ctx context.Context, products []catalog.Product, ttl time.Duration) error

	// InvalidateAll removes all cached products
	InvalidateAll(ctx context.Context) error

	// Close releases any resources held by the cache
	Close() error
}
