package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	applyDefaults(cfg)

	assert.Equal(t, "orderhub", cfg.App.Name)
	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, "stdout", cfg.Log.Output)
	assert.Equal(t, 15*time.Second, cfg.HTTP.ReadTimeout)
	assert.Equal(t, 15, cfg.OrderService.TimeoutSeconds)
	assert.Equal(t, 100, cfg.OrderService.CatalogPageSize)
	assert.Equal(t, 500*time.Millisecond, cfg.Edit.DebounceDelay)
	assert.Equal(t, "memory", cfg.Cache.Backend)
	assert.Equal(t, 5*time.Minute, cfg.Cache.TTL)
}

func TestApplyDefaultsKeepsExplicitValues(t *testing.T) {
	cfg := &Config{
		App:  AppConfig{Port: "9090"},
		Edit: EditConfig{DebounceDelay: 200 * time.Millisecond},
	}
	applyDefaults(cfg)

	assert.Equal(t, "9090", cfg.App.Port)
	assert.Equal(t, 200*time.Millisecond, cfg.Edit.DebounceDelay)
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		cfg := &Config{
			OrderService: OrderServiceConfig{BaseURL: "http://localhost:3001"},
		}
		applyDefaults(cfg)
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "valid config",
			mutate: func(c *Config) {},
		},
		{
			name:    "missing base url",
			mutate:  func(c *Config) { c.OrderService.BaseURL = "" },
			wantErr: "base_url is required",
		},
		{
			name:    "negative debounce",
			mutate:  func(c *Config) { c.Edit.DebounceDelay = -time.Second },
			wantErr: "cannot be negative",
		},
		{
			name:    "unknown cache backend",
			mutate:  func(c *Config) { c.Cache.Backend = "memcached" },
			wantErr: "cache.backend",
		},
		{
			name: "wildcard cors in production",
			mutate: func(c *Config) {
				c.App.Env = "production"
				c.HTTP.CORSAllowOrigins = []string{"*"}
			},
			wantErr: "cannot be '*' in production",
		},
		{
			name: "wildcard cors in development",
			mutate: func(c *Config) {
				c.HTTP.CORSAllowOrigins = []string{"*"}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(cfg)
			err := cfg.validate()
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("ORDERHUB_ORDERSERVICE_BASE_URL", "http://orders:3001")
	t.Setenv("ORDERHUB_APP_PORT", "9999")
	t.Setenv("ORDERHUB_CACHE_BACKEND", "redis")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://orders:3001", cfg.OrderService.BaseURL)
	assert.Equal(t, "9999", cfg.App.Port)
	assert.Equal(t, "redis", cfg.Cache.Backend)
}

func TestRedisAddr(t *testing.T) {
	c := CacheConfig{Host: "cache.internal", Port: 6380}
	assert.Equal(t, "cache.internal:6380", c.RedisAddr())
}
