package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App          AppConfig
	Log          LogConfig
	HTTP         HTTPConfig
	OrderService OrderServiceConfig
	Edit         EditConfig
	Cache        CacheConfig
}

// AppConfig holds application-specific settings
type AppConfig struct {
	Name string
	Env  string
	Port string
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output string // stdout, stderr, or file path
}

// HTTPConfig holds HTTP server configuration
type HTTPConfig struct {
	ReadTimeout      time.Duration
	WriteTimeout     time.Duration
	IdleTimeout      time.Duration
	CORSAllowOrigins []string
}

// OrderServiceConfig holds the remote order service settings
type OrderServiceConfig struct {
	BaseURL         string
	TimeoutSeconds  int
	CatalogPageSize int
}

// EditConfig holds edit coordination settings
type EditConfig struct {
	// DebounceDelay is the trailing window between the last
	// instructions keystroke and the remote write
	DebounceDelay time.Duration
}

// CacheConfig holds catalog cache settings
type CacheConfig struct {
	Backend  string // memory, redis
	TTL      time.Duration
	Host     string
	Port     int
	Password string
	DB       int
}

// Load loads configuration from TOML file and environment variables.
// Priority (highest to lowest):
// 1. Environment variables with ORDERHUB_ prefix (e.g. ORDERHUB_ORDERSERVICE_BASE_URL)
// 2. config.toml
// 3. Built-in defaults
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("/app")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, we'll use defaults and env vars
	}

	v.SetEnvPrefix("ORDERHUB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		App: AppConfig{
			Name: v.GetString("app.name"),
			Env:  v.GetString("app.env"),
			Port: v.GetString("app.port"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
		HTTP: HTTPConfig{
			ReadTimeout:      v.GetDuration("http.read_timeout"),
			WriteTimeout:     v.GetDuration("http.write_timeout"),
			IdleTimeout:      v.GetDuration("http.idle_timeout"),
			CORSAllowOrigins: v.GetStringSlice("http.cors_allow_origins"),
		},
		OrderService: OrderServiceConfig{
			BaseURL:         v.GetString("orderservice.base_url"),
			TimeoutSeconds:  v.GetInt("orderservice.timeout_seconds"),
			CatalogPageSize: v.GetInt("orderservice.catalog_page_size"),
		},
		Edit: EditConfig{
			DebounceDelay: v.GetDuration("edit.debounce_delay"),
		},
		Cache: CacheConfig{
			Backend:  v.GetString("cache.backend"),
			TTL:      v.GetDuration("cache.ttl"),
			Host:     v.GetString("cache.host"),
			Port:     v.GetInt("cache.port"),
			Password: v.GetString("cache.password"),
			DB:       v.GetInt("cache.db"),
		},
	}

	applyDefaults(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyDefaults sets default values for any empty config fields
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "orderhub"
	}
	if cfg.App.Env == "" {
		cfg.App.Env = "development"
	}
	if cfg.App.Port == "" {
		cfg.App.Port = "8080"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
	}
	if cfg.Log.Output == "" {
		cfg.Log.Output = "stdout"
	}
	if cfg.HTTP.ReadTimeout == 0 {
		cfg.HTTP.ReadTimeout = 15 * time.Second
	}
	if cfg.HTTP.WriteTimeout == 0 {
		cfg.HTTP.WriteTimeout = 15 * time.Second
	}
	if cfg.HTTP.IdleTimeout == 0 {
		cfg.HTTP.IdleTimeout = 60 * time.Second
	}
	if cfg.OrderService.TimeoutSeconds == 0 {
		cfg.OrderService.TimeoutSeconds = 15
	}
	if cfg.OrderService.CatalogPageSize == 0 {
		cfg.OrderService.CatalogPageSize = 100
	}
	if cfg.Edit.DebounceDelay == 0 {
		cfg.Edit.DebounceDelay = 500 * time.Millisecond
	}
	if cfg.Cache.Backend == "" {
		cfg.Cache.Backend = "memory"
	}
	if cfg.Cache.TTL == 0 {
		cfg.Cache.TTL = 5 * time.Minute
	}
	if cfg.Cache.Host == "" {
		cfg.Cache.Host = "localhost"
	}
	if cfg.Cache.Port == 0 {
		cfg.Cache.Port = 6379
	}
}

// validate performs validation on the configuration
func (c *Config) validate() error {
	if c.OrderService.BaseURL == "" {
		return fmt.Errorf("orderservice.base_url is required")
	}
	if c.Edit.DebounceDelay < 0 {
		return fmt.Errorf("edit.debounce_delay cannot be negative")
	}
	switch c.Cache.Backend {
	case "memory", "redis":
	default:
		return fmt.Errorf("cache.backend must be 'memory' or 'redis', got %q", c.Cache.Backend)
	}
	if c.App.Env == "production" {
		for _, origin := range c.HTTP.CORSAllowOrigins {
			if origin == "*" {
				return fmt.Errorf("cors_allow_origins cannot be '*' in production (use specific origins)")
			}
		}
	}
	return nil
}

// RedisAddr returns the cache host:port pair
func (c *CacheConfig) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
