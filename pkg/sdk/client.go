package artcollector

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/artcollector/internal/db"
	"github.com/kailas-cloud/artcollector/internal/db/memory"
	dbRedis "github.com/kailas-cloud/artcollector/internal/db/redis"
	"github.com/kailas-cloud/artcollector/internal/domain/facet"
	"github.com/kailas-cloud/artcollector/internal/domain/object"
	"github.com/kailas-cloud/artcollector/internal/domain/option"
	"github.com/kailas-cloud/artcollector/internal/domain/resultset"
	"github.com/kailas-cloud/artcollector/internal/repository/optioncache"
	"github.com/kailas-cloud/artcollector/internal/repository/quota"
	"github.com/kailas-cloud/artcollector/internal/transport/harvard"
	healthuc "github.com/kailas-cloud/artcollector/internal/usecase/health"
	usageuc "github.com/kailas-cloud/artcollector/internal/usecase/usage"
)

const (
	defaultBaseURL           = "https://api.harvardartmuseums.org"
	defaultTimeout           = 15 * time.Second
	defaultOptionsTTL        = 24 * time.Hour
	defaultReadinessTimeout  = 10 * time.Second
	defaultOptionListPageLen = 100
)

// Internal interfaces, swapped for fakes in tests.
type catalogUseCase interface {
	FetchQueryResults(ctx context.Context, f facet.Facets) (resultset.ResultSet, error)
	FetchQueryResultsFromTermAndValue(ctx context.Context, term object.Term, value string) (resultset.ResultSet, error)
	FetchPage(ctx context.Context, link string) (resultset.ResultSet, error)
}

type optionsUseCase interface {
	FetchAllCenturies(ctx context.Context) (option.List, error)
	FetchAllClassifications(ctx context.Context) (option.List, error)
}

// Client is the artcollector SDK entry point. It is safe for concurrent use.
type Client struct {
	store     db.Store
	catalog   catalogUseCase
	options   optionsUseCase
	healthSvc healthUseCase
	usageSvc  usageUseCase
	obs       *observer
}

// New creates a Client. The provided context is used for the cache readiness check.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		baseURL:    defaultBaseURL,
		timeout:    defaultTimeout,
		driver:     "memory",
		optionsTTL: defaultOptionsTTL,
	}
	for _, o := range opts {
		o.apply(cfg)
	}

	if cfg.apiKey == "" {
		return nil, errors.New("artcollector: catalog api key required (use WithAPIKey)")
	}

	store, err := createStore(cfg)
	if err != nil {
		return nil, err
	}

	if err := store.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("artcollector: cache not ready: %w", err)
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		store.Close()
		return nil, err
	}

	c, err := wireClient(store, cfg, obs)
	if err != nil {
		store.Close()
		return nil, err
	}
	return c, nil
}

func createStore(cfg *clientConfig) (db.Store, error) {
	switch cfg.driver {
	case "memory":
		return memory.NewStore(), nil
	case "valkey", "redis":
		s, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:      cfg.addrs,
			Password:   cfg.password,
			Standalone: cfg.standalone,
		})
		if err != nil {
			return nil, fmt.Errorf("artcollector: create %s store: %w", cfg.driver, err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("artcollector: unknown driver %q", cfg.driver)
	}
}

func wireClient(store db.Store, cfg *clientConfig, obs *observer) (*Client, error) {
	// Internal components log through zap; SDK callers see slog via the observer.
	nop := zap.NewNop()

	usageSvc := usageuc.New(quota.New(store), cfg.dailyQuota, cfg.enforceQuota, nop)

	catalog, err := harvard.NewClient(&harvard.Config{
		BaseURL:        strings.TrimRight(cfg.baseURL, "/"),
		APIKey:         cfg.apiKey,
		OptionPageSize: defaultOptionListPageLen,
		Timeout:        cfg.timeout,
		Logger:         nop,
	})
	if err != nil {
		return nil, fmt.Errorf("artcollector: %w", err)
	}
	catalog.WithQuota(usageSvc)

	var checker healthuc.CatalogChecker
	if cfg.probeCatalog {
		checker = catalog
	}

	return &Client{
		store:     store,
		catalog:   catalog,
		options:   optioncache.New(catalog, store, cfg.optionsTTL, nil, nop),
		healthSvc: healthuc.New(store, checker),
		usageSvc:  usageSvc,
		obs:       obs,
	}, nil
}

// Close releases all resources.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Ping checks cache connectivity.
func (c *Client) Ping(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("ping", start, err) }()

	if err = c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}
