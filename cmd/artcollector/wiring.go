package main

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/artcollector/internal/config"
	"github.com/kailas-cloud/artcollector/internal/db"
	"github.com/kailas-cloud/artcollector/internal/db/memory"
	dbRedis "github.com/kailas-cloud/artcollector/internal/db/redis"
	"github.com/kailas-cloud/artcollector/internal/metrics"
	"github.com/kailas-cloud/artcollector/internal/repository/optioncache"
	"github.com/kailas-cloud/artcollector/internal/repository/quota"
	"github.com/kailas-cloud/artcollector/internal/transport/harvard"
	usageuc "github.com/kailas-cloud/artcollector/internal/usecase/usage"
)

// deps are the collaborators shared by the server and the one-shot commands.
type deps struct {
	store   db.Store
	catalog *harvard.Client
	options *optioncache.Cached
	usage   *usageuc.Service
}

func (d *deps) Close() { d.store.Close() }

// buildDeps is the composition root below the transport layer.
func buildDeps(ctx context.Context, cfg config.Config, logger *zap.Logger) (*deps, error) {
	metrics.RegisterCatalogMetrics()

	store, err := buildStore(ctx, cfg.Cache, logger)
	if err != nil {
		return nil, err
	}

	usageSvc := usageuc.New(quota.New(store), cfg.Catalog.DailyQuota, cfg.Catalog.EnforceQuota, logger)

	client, err := harvard.NewClient(&harvard.Config{
		BaseURL:        cfg.Catalog.BaseURL,
		APIKey:         cfg.Catalog.APIKey,
		OptionPageSize: cfg.Catalog.OptionPageSize,
		Timeout:        time.Duration(cfg.Catalog.TimeoutSec) * time.Second,
		Logger:         logger,
	})
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("create catalog client: %w", err)
	}
	client.WithQuota(usageSvc)

	options := optioncache.New(client, store,
		time.Duration(cfg.Catalog.OptionsCacheTTL)*time.Second, metrics.OptionCacheTotal, logger)

	return &deps{store: store, catalog: client, options: options, usage: usageSvc}, nil
}

func buildStore(ctx context.Context, cfg config.CacheConfig, logger *zap.Logger) (db.Store, error) {
	var (
		store db.Store
		err   error
	)
	switch cfg.Driver {
	case "redis", "valkey":
		store, err = dbRedis.NewStore(dbRedis.Config{
			Addrs:      cfg.Addrs,
			Username:   cfg.Username,
			Password:   cfg.Password,
			DB:         cfg.DB,
			Standalone: cfg.Standalone,
		})
	case "memory":
		store = memory.NewStore()
	default:
		return nil, fmt.Errorf("unknown cache driver %q", cfg.Driver)
	}
	if err != nil {
		return nil, fmt.Errorf("create cache store: %w", err)
	}

	if err := store.WaitForReady(ctx, time.Duration(cfg.ReadinessTimeout)*time.Second); err != nil {
		store.Close()
		return nil, fmt.Errorf("cache not ready: %w", err)
	}
	logger.Info("Connected to cache", zap.String("driver", cfg.Driver), zap.Strings("addrs", cfg.Addrs))
	return store, nil
}
