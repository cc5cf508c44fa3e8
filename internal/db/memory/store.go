// Package memory is an in-process db.Store used when no cache server is configured.
package memory

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/kailas-cloud/artcollector/internal/db"
)

// Compile-time check: Store implements db.Store.
var _ db.Store = (*Store)(nil)

type entry struct {
	value     []byte
	expiresAt time.Time // zero = no expiry
}

// Store keeps keys in a map guarded by a mutex. Expired keys are dropped lazily on read.
type Store struct {
	mu   sync.Mutex
	data map[string]entry
	now  func() time.Time
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{data: make(map[string]entry), now: time.Now}
}

// Ping always succeeds.
func (s *Store) Ping(context.Context) error { return nil }

// Close drops every key.
func (s *Store) Close() {
	s.mu.Lock()
	s.data = make(map[string]entry)
	s.mu.Unlock()
}

// WaitForReady returns immediately.
func (s *Store) WaitForReady(context.Context, time.Duration) error { return nil }

// Get retrieves a value by key.
func (s *Store) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.live(key)
	if !ok {
		return nil, db.ErrKeyNotFound
	}
	out := make([]byte, len(e.value))
	copy(out, e.value)
	return out, nil
}

// SetWithTTL stores a copy of value. A non-positive ttl stores without expiry.
func (s *Store) SetWithTTL(_ context.Context, key string, value []byte, ttl time.Duration) error {
	e := entry{value: append([]byte(nil), value...)}
	if ttl > 0 {
		e.expiresAt = s.now().Add(ttl)
	}

	s.mu.Lock()
	s.data[key] = e
	s.mu.Unlock()
	return nil
}

// IncrBy increments a decimal counter, creating it at zero, and returns the new value.
func (s *Store) IncrBy(_ context.Context, key string, val int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var cur int64
	e, ok := s.live(key)
	if ok {
		n, err := strconv.ParseInt(string(e.value), 10, 64)
		if err != nil {
			return 0, &db.Error{Op: db.OpIncrBy, Err: err}
		}
		cur = n
	}
	cur += val
	e.value = []byte(strconv.FormatInt(cur, 10))
	s.data[key] = e
	return cur, nil
}

// Expire sets TTL on an existing key. When nx=true, only keys without expiry are touched.
func (s *Store) Expire(_ context.Context, key string, ttl time.Duration, nx bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.live(key)
	if !ok {
		return nil
	}
	if nx && !e.expiresAt.IsZero() {
		return nil
	}
	e.expiresAt = s.now().Add(ttl)
	s.data[key] = e
	return nil
}

// live returns the entry if present and unexpired. Caller holds mu.
func (s *Store) live(key string) (entry, bool) {
	e, ok := s.data[key]
	if !ok {
		return entry{}, false
	}
	if !e.expiresAt.IsZero() && !s.now().Before(e.expiresAt) {
		delete(s.data, key)
		return entry{}, false
	}
	return e, true
}
