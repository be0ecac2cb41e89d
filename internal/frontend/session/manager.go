package session

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Session is one connected browser client.
type Session struct {
	// ID is a random UUID assigned on Open.
	ID string
	// RemoteAddr is the client's network address (for logging).
	RemoteAddr string
	// ConnectedAt is when the session was opened.
	ConnectedAt time.Time
	// View is the session's browser state. Only the session goroutine touches it.
	View *View
}

// Manager tracks all live browser sessions.
// All methods are safe for concurrent use.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	now      func() time.Time
}

// NewManager creates an empty session Manager.
func NewManager() *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
		now:      time.Now,
	}
}

// Open registers a new session with a fresh View.
//
// Postcondition: Returns a Session with a unique ID.
func (m *Manager) Open(remoteAddr string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := uuid.NewString()
	for _, exists := m.sessions[id]; exists; _, exists = m.sessions[id] {
		id = uuid.NewString()
	}
	sess := &Session{
		ID:          id,
		RemoteAddr:  remoteAddr,
		ConnectedAt: m.now(),
		View:        NewView(),
	}
	m.sessions[id] = sess
	return sess
}

// Close removes a session.
//
// Postcondition: The session is no longer tracked. Returns an error if not found.
func (m *Manager) Close(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.sessions[id]; !exists {
		return fmt.Errorf("session %q not found", id)
	}
	delete(m.sessions, id)
	return nil
}

// Count returns the number of live sessions.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
