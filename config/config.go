package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all storefront configuration
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Cache    CacheConfig    `yaml:"cache"`
	Auth     AuthConfig     `yaml:"auth"`
	Storage  StorageConfig  `yaml:"storage"`
	Visitor  VisitorConfig  `yaml:"visitor"`
}

// ServerConfig configures the HTTP listener
type ServerConfig struct {
	Port string `yaml:"port"`
}

// DatabaseConfig configures the durable visitor storage
type DatabaseConfig struct {
	Driver        string `yaml:"driver"` // sqlite3
	Path          string `yaml:"path"`
	MigrationsDir string `yaml:"migrations_dir"`
}

// CacheConfig configures the read-through cache in front of storage
type CacheConfig struct {
	Type          string `yaml:"type"` // memory, redis
	RedisAddr     string `yaml:"redis_addr"`
	RedisPassword string `yaml:"redis_password"`
	RedisDB       int    `yaml:"redis_db"`
	TTL           string `yaml:"ttl"`
}

// AuthConfig configures the mock auth flow
type AuthConfig struct {
	// Simulated identity-provider latency before login/signup takes effect
	LoginDelay string `yaml:"login_delay"`
}

// StorageConfig names the per-visitor storage keys
type StorageConfig struct {
	CartKey    string `yaml:"cart_key"`
	SessionKey string `yaml:"session_key"`
}

// VisitorConfig configures the cookie that identifies a browser
type VisitorConfig struct {
	CookieName string `yaml:"cookie_name"`
	CookieTTL  string `yaml:"cookie_ttl"`
	Secure     bool   `yaml:"secure"`
	// IdleTTL is how long an untouched visitor stays in memory; it must be
	// shorter than cache.ttl so an evicted visitor reloads from the cache
	IdleTTL string `yaml:"idle_ttl"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port: "8080",
		},
		Database: DatabaseConfig{
			Driver:        "sqlite3",
			Path:          "./storefront.db",
			MigrationsDir: "./database/migrations",
		},
		Cache: CacheConfig{
			Type:      "memory",
			RedisAddr: "localhost:6379",
			TTL:       "30m",
		},
		Auth: AuthConfig{
			LoginDelay: "1500ms",
		},
		Storage: StorageConfig{
			CartKey:    "britannia_cart",
			SessionKey: "britannia_user",
		},
		Visitor: VisitorConfig{
			CookieName: "visitor_id",
			CookieTTL:  "8760h",
			IdleTTL:    "10m",
		},
	}
}

// Load loads configuration from a YAML file.
// A missing file yields the defaults; environment overrides apply either way.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if err == nil {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		}
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes configuration as YAML
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() {
	if port := os.Getenv("STOREFRONT_PORT"); port != "" {
		c.Server.Port = port
	}
	if path := os.Getenv("STOREFRONT_DB"); path != "" {
		c.Database.Path = path
	}
	if typ := os.Getenv("STOREFRONT_CACHE_TYPE"); typ != "" {
		c.Cache.Type = typ
	}
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		c.Cache.RedisAddr = addr
	}
	if db := os.Getenv("REDIS_DB"); db != "" {
		if n, err := strconv.Atoi(db); err == nil {
			c.Cache.RedisDB = n
		}
	}
	if delay := os.Getenv("STOREFRONT_LOGIN_DELAY"); delay != "" {
		c.Auth.LoginDelay = delay
	}
}

// Validate checks the fields the server cannot start without
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("server.port is required")
	}
	if c.Database.Driver == "" || c.Database.Path == "" {
		return fmt.Errorf("database.driver and database.path are required")
	}
	switch c.Cache.Type {
	case "memory", "redis":
	default:
		return fmt.Errorf("cache.type must be memory or redis, got %q", c.Cache.Type)
	}
	if c.Visitor.CookieName == "" {
		return fmt.Errorf("visitor.cookie_name is required")
	}
	if c.GetIdleTTL() >= c.GetCacheTTL() {
		return fmt.Errorf("visitor.idle_ttl (%s) must be shorter than cache.ttl (%s)", c.GetIdleTTL(), c.GetCacheTTL())
	}
	return nil
}

// GetLoginDelay returns the simulated auth latency
func (c *Config) GetLoginDelay() time.Duration {
	d, err := time.ParseDuration(c.Auth.LoginDelay)
	if err != nil || d < 0 {
		return 1500 * time.Millisecond
	}
	return d
}

// GetCacheTTL returns how long storage reads stay cached
func (c *Config) GetCacheTTL() time.Duration {
	d, err := time.ParseDuration(c.Cache.TTL)
	if err != nil || d <= 0 {
		return 30 * time.Minute
	}
	return d
}

// GetCookieTTL returns the visitor cookie lifetime
func (c *Config) GetCookieTTL() time.Duration {
	d, err := time.ParseDuration(c.Visitor.CookieTTL)
	if err != nil || d <= 0 {
		return 365 * 24 * time.Hour
	}
	return d
}

// GetIdleTTL returns how long an idle visitor is kept in memory
func (c *Config) GetIdleTTL() time.Duration {
	d, err := time.ParseDuration(c.Visitor.IdleTTL)
	if err != nil || d <= 0 {
		return 10 * time.Minute
	}
	return d
}
