// Package session provides the in-memory registry of live conversation
// sessions.
//
// Sessions exist only for the lifetime of the screen that opened them:
// nothing is persisted, and removing a session closes and discards it.
package session

import (
	"log/slog"
	"sync"

	"github.com/ConnectHealth/HealthBot/internal/convo"
	"github.com/ConnectHealth/HealthBot/internal/models"
	"github.com/ConnectHealth/HealthBot/internal/util"
)

// Registry is a mutex-guarded map of session id to live session.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*convo.Session
}

// NewRegistry creates an empty session registry.
func NewRegistry() *Registry {
	return &Registry{sessions: make(map[string]*convo.Session)}
}

// Add registers a new session and returns its generated id.
func (r *Registry) Add(s *convo.Session) string {
	id := util.GenerateSessionID()
	r.mu.Lock()
	r.sessions[id] = s
	r.mu.Unlock()
	slog.Debug("Registry.Add: session registered", "sessionID", id, "username", s.Username())
	return id
}

// Get returns the session for the given id.
func (r *Registry) Get(id string) (*convo.Session, error) {
	r.mu.RLock()
	s, ok := r.sessions[id]
	r.mu.RUnlock()
	if !ok {
		return nil, models.ErrSessionNotFound
	}
	return s, nil
}

// Remove closes the session and discards it from the registry.
func (r *Registry) Remove(id string) error {
	r.mu.Lock()
	s, ok := r.sessions[id]
	if ok {
		delete(r.sessions, id)
	}
	r.mu.Unlock()
	if !ok {
		return models.ErrSessionNotFound
	}
	s.Close()
	slog.Debug("Registry.Remove: session discarded", "sessionID", id)
	return nil
}

// Len reports the number of live sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
