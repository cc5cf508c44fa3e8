// Package quota counts catalog requests per UTC day in the KV store.
package quota

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/kailas-cloud/artcollector/internal/db"
	"github.com/kailas-cloud/artcollector/internal/domain"
)

var keyPrefix = domain.KeyPrefix + "quota:day:"

// dayTTL keeps yesterday's counter readable for a while after midnight.
const dayTTL = 48 * time.Hour

// store is the consumer interface for quota counters (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	IncrBy(ctx context.Context, key string, val int64) (int64, error)
	Expire(ctx context.Context, key string, ttl time.Duration, nx bool) error
}

// Store implements a daily request counter on top of INCRBY + EXPIRE NX.
type Store struct {
	store store
	now   func() time.Time
}

// New creates a quota store.
func New(s store) *Store {
	return &Store{store: s, now: time.Now}
}

// Incr counts one request against today and returns today's total.
func (s *Store) Incr(ctx context.Context) (int64, error) {
	key := s.Key(s.now())
	n, err := s.store.IncrBy(ctx, key, 1)
	if err != nil {
		return 0, fmt.Errorf("quota INCRBY %s: %w", key, err)
	}

	// Set TTL only if the key has no expiry yet (NX: not reset on repeat).
	if err := s.store.Expire(ctx, key, dayTTL, true); err != nil {
		return n, fmt.Errorf("quota EXPIRE %s: %w", key, err)
	}
	return n, nil
}

// Used returns today's total. Returns 0 if nothing was counted yet.
func (s *Store) Used(ctx context.Context) (int64, error) {
	key := s.Key(s.now())
	data, err := s.store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return 0, nil
		}
		return 0, fmt.Errorf("quota GET %s: %w", key, err)
	}

	n, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse quota value %q: %w", string(data), err)
	}
	return n, nil
}

// Key returns the counter key for the UTC day containing t.
func (s *Store) Key(t time.Time) string {
	return keyPrefix + t.UTC().Format("2006-01-02")
}

// ResetsAt returns the start of the next UTC day after t.
func ResetsAt(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d+1, 0, 0, 0, 0, time.UTC)
}
