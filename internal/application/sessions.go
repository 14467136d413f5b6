package application

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// SessionRegistry maps browser session IDs to their SettingsHost so every
// session owns an independent dialog.
type SessionRegistry struct {
	newHost func() *SettingsHost
	now     func() time.Time

	mu       sync.Mutex
	sessions map[string]*session
}

type session struct {
	host     *SettingsHost
	lastSeen time.Time
}

// NewSessionRegistry creates an empty registry. newHost is called once per
// created session.
func NewSessionRegistry(newHost func() *SettingsHost) *SessionRegistry {
	return &SessionRegistry{
		newHost:  newHost,
		now:      time.Now,
		sessions: make(map[string]*session),
	}
}

// Create registers a new session and returns its ID and host.
func (r *SessionRegistry) Create() (string, *SettingsHost) {
	id := uuid.NewString()
	host := r.newHost()

	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[id] = &session{host: host, lastSeen: r.now()}
	return id, host
}

// Get returns the host for id and marks the session as active.
func (r *SessionRegistry) Get(id string) (*SettingsHost, bool) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, false
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if !ok {
		return nil, false
	}
	s.lastSeen = r.now()
	return s.host, true
}

// Prune closes and forgets sessions idle for longer than maxIdle. It returns
// the number of sessions removed.
func (r *SessionRegistry) Prune(maxIdle time.Duration) int {
	cutoff := r.now().Add(-maxIdle)

	r.mu.Lock()
	var stale []*SettingsHost
	for id, s := range r.sessions {
		if s.lastSeen.Before(cutoff) {
			stale = append(stale, s.host)
			delete(r.sessions, id)
		}
	}
	r.mu.Unlock()

	// Closing stops any pending auto-close timer.
	for _, host := range stale {
		host.RequestClose()
	}
	return len(stale)
}

// Len returns the number of live sessions.
func (r *SessionRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}
