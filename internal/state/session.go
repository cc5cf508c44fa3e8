// Package state owns what a visitor's page shows between requests: facets, option lists,
// the current result set, the featured object and the busy indicator.
package state

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/kailas-cloud/artcollector/internal/domain"
	"github.com/kailas-cloud/artcollector/internal/domain/facet"
	"github.com/kailas-cloud/artcollector/internal/domain/object"
	"github.com/kailas-cloud/artcollector/internal/domain/option"
	"github.com/kailas-cloud/artcollector/internal/domain/resultset"
)

// Session is one visitor's state. All methods are safe for concurrent use.
//
// Overlapping queries follow cancel-and-replace: Begin cancels the previous query's
// context and bumps the generation, and a superseded ticket can no longer publish.
// The busy indicator counts in-flight queries so a superseded query finishing late
// does not clear it for the one still running.
type Session struct {
	id string

	mu              sync.Mutex
	facets          facet.Facets
	centuries       option.List
	classifications option.List
	optionsClaimed  bool
	results         *resultset.ResultSet
	featured        *object.Object
	inFlight        int
	generation      uint64
	cancel          context.CancelFunc
	lastSeen        time.Time
}

// Snapshot is an immutable copy of a session for rendering.
type Snapshot struct {
	Facets          facet.Facets
	Centuries       option.List
	Classifications option.List
	Results         *resultset.ResultSet
	Featured        *object.Object
	Loading         bool
}

// NewSession creates a session with default facets and empty option lists.
func NewSession(id string, now time.Time) *Session {
	return &Session{
		id:              id,
		facets:          facet.Default(),
		centuries:       option.List{},
		classifications: option.List{},
		lastSeen:        now,
	}
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// Facets returns the current facets.
func (s *Session) Facets() facet.Facets {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.facets
}

// SetFacets replaces all three facets.
func (s *Session) SetFacets(f facet.Facets) {
	s.mu.Lock()
	s.facets = f
	s.mu.Unlock()
}

// SetFacet changes a single facet and leaves the others untouched.
func (s *Session) SetFacet(name facet.Name, value string) (facet.Facets, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := s.facets.With(name, value)
	if err != nil {
		return s.facets, err
	}
	s.facets = f
	return f, nil
}

// ClaimOptionsLoad returns true exactly once per session: the caller owns the initial option fetch.
func (s *Session) ClaimOptionsLoad() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.optionsClaimed {
		return false
	}
	s.optionsClaimed = true
	return true
}

// SetOptions stores both option lists verbatim.
func (s *Session) SetOptions(centuries, classifications option.List) {
	s.mu.Lock()
	s.centuries = centuries
	s.classifications = classifications
	s.mu.Unlock()
}

// Loading reports whether any query is in flight.
func (s *Session) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inFlight > 0
}

// Select features records[index] of the current result set.
func (s *Session) Select(index int) (object.Object, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.results.At(index)
	if !ok {
		return object.Object{}, fmt.Errorf("%w: no record at index %d", domain.ErrNotFound, index)
	}
	s.featured = &o
	return o, nil
}

// Snapshot copies the session for rendering.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		Facets:          s.facets,
		Centuries:       append(option.List{}, s.centuries...),
		Classifications: append(option.List{}, s.classifications...),
		Loading:         s.inFlight > 0,
	}
	if s.results != nil {
		rs := *s.results
		rs.Records = append(rs.Records[:0:0], s.results.Records...)
		snap.Results = &rs
	}
	if s.featured != nil {
		f := *s.featured
		snap.Featured = &f
	}
	return snap
}

// Begin starts a query. It cancels any query still in flight and returns a context
// bound to this query plus the ticket through which its outcome is published.
func (s *Session) Begin(ctx context.Context) (context.Context, *Ticket) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
	}
	s.generation++
	qctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	return qctx, &Ticket{session: s, generation: s.generation, cancel: cancel}
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *Session) idleSince(now time.Time) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Sub(s.lastSeen)
}

// Ticket is one query's handle on its session: the loading and result setters.
type Ticket struct {
	session    *Session
	generation uint64
	cancel     context.CancelFunc
	loading    bool
}

// SetLoading raises or lowers this query's share of the busy indicator.
// Repeated calls with the same value are no-ops.
func (t *Ticket) SetLoading(loading bool) {
	s := t.session
	s.mu.Lock()
	defer s.mu.Unlock()

	if loading == t.loading {
		return
	}
	t.loading = loading
	if loading {
		s.inFlight++
	} else if s.inFlight > 0 {
		s.inFlight--
	}
}

// SetResults replaces the session's result set wholesale.
// It returns domain.ErrStale and publishes nothing if a newer query has begun.
func (t *Ticket) SetResults(rs resultset.ResultSet) error {
	s := t.session
	s.mu.Lock()
	defer s.mu.Unlock()

	if t.generation != s.generation {
		return domain.ErrStale
	}
	s.results = &rs
	return nil
}

// Done releases the query context. Safe to call more than once.
func (t *Ticket) Done() {
	t.cancel()
	s := t.session
	s.mu.Lock()
	if t.generation == s.generation {
		s.cancel = nil
	}
	s.mu.Unlock()
}
