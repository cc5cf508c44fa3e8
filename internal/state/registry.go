package state

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Registry maps session ids to sessions. Sessions idle for longer than ttl are dropped
// the next time a session is created.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*Session
	ttl      time.Duration
	now      func() time.Time
	newID    func() string
}

// NewRegistry creates an empty registry.
func NewRegistry(ttl time.Duration) *Registry {
	return &Registry{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

// Get returns a live session and marks it as seen.
func (r *Registry) Get(id string) (*Session, bool) {
	if id == "" {
		return nil, false
	}
	now := r.now()

	r.mu.Lock()
	s, ok := r.sessions[id]
	r.mu.Unlock()
	if !ok {
		return nil, false
	}
	if r.ttl > 0 && s.idleSince(now) > r.ttl {
		r.mu.Lock()
		delete(r.sessions, id)
		r.mu.Unlock()
		return nil, false
	}
	s.touch(now)
	return s, true
}

// GetOrCreate returns the session for id, creating a fresh one under a new id when absent.
func (r *Registry) GetOrCreate(id string) (s *Session, created bool) {
	if s, ok := r.Get(id); ok {
		return s, false
	}
	return r.Create(), true
}

// Create registers a new session and sweeps idle ones.
func (r *Registry) Create() *Session {
	now := r.now()
	s := NewSession(r.newID(), now)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.sweepLocked(now)
	r.sessions[s.ID()] = s
	return s
}

// Len returns the number of registered sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

func (r *Registry) sweepLocked(now time.Time) {
	if r.ttl <= 0 {
		return
	}
	for id, s := range r.sessions {
		if s.idleSince(now) > r.ttl {
			delete(r.sessions, id)
		}
	}
}
