package session

import (
	"errors"
	"sync"
	"time"
)

// ErrNotFound reports a session ID with no live session behind it, either
// because it never existed or because it expired.
var ErrNotFound = errors.New("session not found")

// Registry is an in-memory store of live sessions keyed by ID. Sessions are
// ephemeral: a server restart loses them, and PurgeExpired drops sessions
// idle for longer than the configured TTL.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	ttl      time.Duration
}

// NewRegistry creates a registry expiring sessions idle longer than ttl.
func NewRegistry(ttl time.Duration) *Registry {
	return &Registry{
		sessions: make(map[string]*Session),
		ttl:      ttl,
	}
}

// Put stores a session under its ID.
func (r *Registry) Put(s *Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[s.ID()] = s
}

// Get returns the session with the given ID or ErrNotFound.
func (r *Registry) Get(id string) (*Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return s, nil
}

// Delete removes a session. Deleting an unknown ID is a no-op.
func (r *Registry) Delete(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// PurgeExpired drops sessions idle longer than the TTL and returns how many
// were removed. The server runs this periodically from a janitor goroutine.
func (r *Registry) PurgeExpired() int {
	cutoff := time.Now().Add(-r.ttl)

	r.mu.Lock()
	defer r.mu.Unlock()
	removed := 0
	for id, s := range r.sessions {
		if s.LastActive().Before(cutoff) {
			delete(r.sessions, id)
			removed++
		}
	}
	return removed
}
