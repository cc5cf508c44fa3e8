// Package optioncache keeps the century and classification lists in the KV store
// so page loads do not spend catalog quota on data that changes rarely.
package optioncache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/kailas-cloud/artcollector/internal/db"
	"github.com/kailas-cloud/artcollector/internal/domain"
	"github.com/kailas-cloud/artcollector/internal/domain/option"
)

var cacheKeyPrefix = domain.KeyPrefix + "options:"

// store is the consumer interface for the option cache (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// Source fetches option lists from the catalog.
type Source interface {
	FetchAllCenturies(ctx context.Context) (option.List, error)
	FetchAllClassifications(ctx context.Context) (option.List, error)
}

// Cached is a read-through cache in front of a Source.
type Cached struct {
	inner      Source
	store      store
	ttl        time.Duration
	cacheTotal *prometheus.CounterVec
	logger     *zap.Logger
}

// New creates a caching decorator.
// cacheTotal is a counter vec with labels "kind" and "result" ("hit"/"miss"); it may be nil.
func New(inner Source, s store, ttl time.Duration, cacheTotal *prometheus.CounterVec, logger *zap.Logger) *Cached {
	return &Cached{
		inner:      inner,
		store:      s,
		ttl:        ttl,
		cacheTotal: cacheTotal,
		logger:     logger,
	}
}

// FetchAllCenturies returns the cached century list or fetches and caches it.
func (c *Cached) FetchAllCenturies(ctx context.Context) (option.List, error) {
	return c.fetch(ctx, option.Centuries, c.inner.FetchAllCenturies)
}

// FetchAllClassifications returns the cached classification list or fetches and caches it.
func (c *Cached) FetchAllClassifications(ctx context.Context) (option.List, error) {
	return c.fetch(ctx, option.Classifications, c.inner.FetchAllClassifications)
}

func (c *Cached) fetch(
	ctx context.Context, kind option.Kind, load func(context.Context) (option.List, error),
) (option.List, error) {
	key := cacheKeyPrefix + string(kind)

	if list, ok := c.getFromCache(ctx, key); ok {
		c.incCache(kind, "hit")
		return list, nil
	}
	c.incCache(kind, "miss")

	list, err := load(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch %s options: %w", kind, err)
	}

	// An empty list is never cached: it usually means the catalog had a bad moment.
	if len(list) > 0 {
		c.putToCache(ctx, key, list)
	}
	return list, nil
}

func (c *Cached) incCache(kind option.Kind, result string) {
	if c.cacheTotal != nil {
		c.cacheTotal.WithLabelValues(string(kind), result).Inc()
	}
}

func (c *Cached) getFromCache(ctx context.Context, key string) (option.List, bool) {
	data, err := c.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, db.ErrKeyNotFound) {
			c.logger.Warn("Failed to get cached options", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}

	var list option.List
	if err := json.Unmarshal(data, &list); err != nil {
		c.logger.Warn("Failed to parse cached options", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	if len(list) == 0 {
		return nil, false
	}
	return list, true
}

func (c *Cached) putToCache(ctx context.Context, key string, list option.List) {
	data, err := json.Marshal(list)
	if err != nil {
		c.logger.Warn("Failed to encode options", zap.String("key", key), zap.Error(err))
		return
	}
	if err := c.store.SetWithTTL(ctx, key, data, c.ttl); err != nil {
		c.logger.Warn("Failed to cache options", zap.String("key", key), zap.Error(err))
	}
}
