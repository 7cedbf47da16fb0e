package wizard

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"bookingdesk/internal/service"
)

// Registry holds the live wizard sessions of this process.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*Controller
	deps     Deps
	now      func() time.Time
}

// NewRegistry creates a Registry whose sessions share deps.
func NewRegistry(deps Deps) *Registry {
	return &Registry{
		sessions: make(map[string]*Controller),
		deps:     deps,
		now:      time.Now,
	}
}

// Create starts a new session.
func (r *Registry) Create() *Controller {
	c := NewController(uuid.New().String(), r.deps)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[c.ID()] = c
	return c
}

// Get returns a session by id.
func (r *Registry) Get(id string) (*Controller, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.sessions[id]
	if !ok {
		return nil, service.ErrSessionNotFound
	}
	return c, nil
}

// Delete ends a session.
func (r *Registry) Delete(id string) error {
	r.mu.Lock()
	c, ok := r.sessions[id]
	delete(r.sessions, id)
	r.mu.Unlock()

	if !ok {
		return service.ErrSessionNotFound
	}
	c.Close()
	return nil
}

// EvictIdle ends sessions unused for at least ttl and returns how many were removed.
func (r *Registry) EvictIdle(ttl time.Duration) int {
	cutoff := r.now().Add(-ttl)

	r.mu.Lock()
	var evicted []*Controller
	for id, c := range r.sessions {
		if !c.LastActive().After(cutoff) {
			evicted = append(evicted, c)
			delete(r.sessions, id)
		}
	}
	r.mu.Unlock()

	for _, c := range evicted {
		c.Close()
	}
	return len(evicted)
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
