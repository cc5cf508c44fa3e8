package artcollector

import (
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	apiKey  string
	baseURL string
	timeout time.Duration

	driver     string // "memory", "valkey" or "redis"
	addrs      []string
	password   string
	standalone bool

	optionsTTL   time.Duration
	dailyQuota   int64
	enforceQuota bool
	probeCatalog bool

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

// WithAPIKey sets the catalog API key. Required.
func WithAPIKey(key string) Option {
	return optionFunc(func(c *clientConfig) {
		c.apiKey = key
	})
}

// WithBaseURL points the client at a different catalog host.
// Default: https://api.harvardartmuseums.org.
func WithBaseURL(u string) Option {
	return optionFunc(func(c *clientConfig) {
		c.baseURL = u
	})
}

// WithTimeout bounds a single catalog request. Default: 15s.
func WithTimeout(d time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.timeout = d
	})
}

// WithValkey caches option lists and quota counters in a Valkey instance.
// Without it the client keeps them in process memory.
func WithValkey(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = "valkey"
		c.addrs = []string{addr}
		c.password = password
	})
}

// WithRedis caches option lists and quota counters in a Redis instance.
func WithRedis(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = "redis"
		c.addrs = []string{addr}
		c.password = password
	})
}

// WithStandalone disables cluster topology discovery.
// Use for standalone Valkey/Redis instances (not managed by cluster operator).
func WithStandalone() Option {
	return optionFunc(func(c *clientConfig) {
		c.standalone = true
	})
}

// WithOptionsTTL sets how long century and classification lists stay cached.
// Default: 24h.
func WithOptionsTTL(ttl time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.optionsTTL = ttl
	})
}

// WithDailyQuota meters catalog requests against a daily limit.
// With enforce set, requests over the limit fail with ErrQuotaExceeded;
// otherwise they are only counted. Default: unlimited.
func WithDailyQuota(limit int64, enforce bool) Option {
	return optionFunc(func(c *clientConfig) {
		c.dailyQuota = limit
		c.enforceQuota = enforce
	})
}

// WithCatalogProbe makes Health call the catalog too. Each probe spends one request.
func WithCatalogProbe() Option {
	return optionFunc(func(c *clientConfig) {
		c.probeCatalog = true
	})
}

// WithLogger enables structured logging for SDK operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers SDK metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
