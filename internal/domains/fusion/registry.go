package fusion

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Registry holds live fusion sessions in process memory. Sessions expire
// after a TTL; expired entries are dropped lazily on access and by the
// background sweeper. All session transitions run under the registry lock,
// so a session never sees two transitions at once.
type Registry struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*Session
	ttl      time.Duration
}

func NewRegistry(ttl time.Duration) *Registry {
	return &Registry{
		sessions: make(map[uuid.UUID]*Session),
		ttl:      ttl,
	}
}

// TTL returns the configured session lifetime.
func (r *Registry) TTL() time.Duration { return r.ttl }

// Put registers a new session and stamps its expiry.
func (r *Registry) Put(s *Session) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s.ExpiresAt = time.Now().Add(r.ttl)
	r.sessions[s.ID] = s
}

// WithSession runs fn on the live session under the registry lock. An
// unknown or expired id yields ErrSessionNotFound.
func (r *Registry) WithSession(id uuid.UUID, fn func(*Session) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[id]
	if !ok {
		return ErrSessionNotFound
	}
	if time.Now().After(s.ExpiresAt) {
		delete(r.sessions, id)
		return ErrSessionNotFound
	}

	return fn(s)
}

// Sweep drops every expired session and reports how many were removed.
func (r *Registry) Sweep() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	removed := 0
	for id, s := range r.sessions {
		if now.After(s.ExpiresAt) {
			delete(r.sessions, id)
			removed++
		}
	}
	return removed
}

// StartSweeper sweeps on the given interval until ctx is cancelled.
func (r *Registry) StartSweeper(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if n := r.Sweep(); n > 0 {
					log.Debug().Int("expired", n).Msg("swept fusion sessions")
				}
			}
		}
	}()
}
