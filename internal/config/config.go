package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the artcollector configuration.
type Config struct {
	HTTP    HTTPConfig    `yaml:"http"`
	Catalog CatalogConfig `yaml:"catalog"`
	Cache   CacheConfig   `yaml:"cache"`
	Session SessionConfig `yaml:"session"`
	Auth    AuthConfig    `yaml:"auth"`
	Logging LoggingConfig `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// AuthConfig holds JSON API authentication settings. The HTML pages are never gated.
type AuthConfig struct {
	APIKeys []string `yaml:"api_keys"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// CatalogConfig holds the museum catalog API settings.
type CatalogConfig struct {
	BaseURL         string `yaml:"base_url"`
	APIKey          string `yaml:"api_key"`
	TimeoutSec      int    `yaml:"timeout_sec"`
	OptionPageSize  int    `yaml:"option_page_size"`
	DailyQuota      int64  `yaml:"daily_quota"` // 0 = unlimited
	EnforceQuota    bool   `yaml:"enforce_quota"`
	OptionsCacheTTL int    `yaml:"options_cache_ttl_sec"`
}

// CacheConfig selects the KV backend for option lists and quota counters.
type CacheConfig struct {
	Driver           string   `yaml:"driver"` // memory, redis, valkey (default: memory)
	Addrs            []string `yaml:"addrs"`
	Username         string   `yaml:"username"`
	Password         string   `yaml:"password"`
	DB               int      `yaml:"db"`
	Standalone       bool     `yaml:"standalone"`
	ReadinessTimeout int      `yaml:"readiness_timeout_sec"`
}

// SessionConfig holds visitor session settings.
type SessionConfig struct {
	CookieName string `yaml:"cookie_name"`
	IdleTTLSec int    `yaml:"idle_ttl_sec"`
	Secure     bool   `yaml:"secure"`
}

// Override adjusts a decoded config before defaults and validation run.
type Override func(*Config)

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string, overrides ...Override) (Config, error) {
	return LoadFile(findConfigPath(env), overrides...)
}

// LoadFile reads configuration from an explicit path.
func LoadFile(configPath string, overrides ...Override) (Config, error) {
	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}
	return Parse(data, overrides...)
}

// Parse decodes YAML, expands ${VAR} references, applies overrides and defaults, then validates.
func Parse(data []byte, overrides ...Override) (Config, error) {
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	for _, o := range overrides {
		o(&cfg)
	}
	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.Port == 0 {
		c.HTTP.Port = 3000
	}
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 30
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Catalog.BaseURL == "" {
		c.Catalog.BaseURL = "https://api.harvardartmuseums.org"
	}
	c.Catalog.BaseURL = strings.TrimRight(c.Catalog.BaseURL, "/")
	if c.Catalog.TimeoutSec <= 0 {
		c.Catalog.TimeoutSec = 15
	}
	if c.Catalog.OptionPageSize <= 0 {
		c.Catalog.OptionPageSize = 100
	}
	if c.Catalog.OptionsCacheTTL <= 0 {
		c.Catalog.OptionsCacheTTL = 24 * 60 * 60
	}
	if c.Cache.Driver == "" {
		c.Cache.Driver = "memory"
	}
	if c.Cache.ReadinessTimeout <= 0 {
		c.Cache.ReadinessTimeout = 10
	}
	if c.Session.CookieName == "" {
		c.Session.CookieName = "artcollector_session"
	}
	if c.Session.IdleTTLSec <= 0 {
		c.Session.IdleTTLSec = 2 * 60 * 60
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	u, err := url.Parse(c.Catalog.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("catalog.base_url must be an absolute URL, got %q", c.Catalog.BaseURL)
	}
	if c.Catalog.APIKey == "" {
		return fmt.Errorf("catalog.api_key is required")
	}
	if c.Catalog.DailyQuota < 0 {
		return fmt.Errorf("catalog.daily_quota must not be negative, got %d", c.Catalog.DailyQuota)
	}
	switch c.Cache.Driver {
	case "memory":
		// ok
	case "redis", "valkey":
		if len(c.Cache.Addrs) == 0 {
			return fmt.Errorf("cache.addrs is required for driver %q", c.Cache.Driver)
		}
		if c.Cache.DB < 0 {
			return fmt.Errorf("cache.db must not be negative, got %d", c.Cache.DB)
		}
	default:
		return fmt.Errorf("cache.driver must be \"memory\", \"redis\" or \"valkey\", got %q", c.Cache.Driver)
	}
	return nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
