package cache

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/wady/orderhub/internal/infrastructure/config"
)

// NewProductCache creates a product cache based on the configured backend
func NewProductCache(cfg config.CacheConfig, logger *zap.Logger) (ProductCache, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	switch cfg.Backend {
	case "redis":
		cache, err := NewRedisProductCache(cfg,
			WithRedisLogger(logger),
			WithRedisTTL(cfg.TTL),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create redis product cache: %w", err)
		}
		return cache, nil
	case "memory":
		return NewInMemoryProductCache(
			WithInMemoryLogger(logger),
			WithInMemoryTTL(cfg.TTL),
		), nil
	default:
		return nil, fmt.Errorf("unknown cache backend: %q", cfg.Backend)
	}
}
