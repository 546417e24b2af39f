package movement

import (
	"context"
	"sync"
	"time"

	"movistock/internal/core/apperror"
	"movistock/internal/core/id"
	"movistock/pkg/logger"
)

// Session binds one MovementForm to a session identifier for its whole
// lifetime. The mutex serializes every mutation together with its
// recompute, giving the same atomicity a single-threaded event loop
// would provide.
type Session struct {
	ID        id.ID
	CreatedAt time.Time

	mu       sync.Mutex
	lastSeen time.Time
	form     *MovementForm
}

// Do runs fn with exclusive access to the session's form.
func (s *Session) Do(fn func(f *MovementForm) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = time.Now()
	return fn(s.form)
}

// Manager is the in-memory store of open form sessions.
type Manager struct {
	mu       sync.RWMutex
	sessions map[id.ID]*Session
	ttl      time.Duration
}

// DefaultSessionTTL is how long an idle session survives before the
// sweeper closes it.
const DefaultSessionTTL = 2 * time.Hour

// NewManager creates a session manager. ttl <= 0 uses the default.
func NewManager(ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &Manager{
		sessions: make(map[id.ID]*Session),
		ttl:      ttl,
	}
}

// Open registers a new session around the given form.
func (m *Manager) Open(form *MovementForm) *Session {
	now := time.Now()
	s := &Session{
		ID:        id.New(),
		CreatedAt: now,
		lastSeen:  now,
		form:      form,
	}

	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()

	return s
}

// Get returns the session or a not-found error.
func (m *Manager) Get(sessionID id.ID) (*Session, error) {
	m.mu.RLock()
	s, ok := m.sessions[sessionID]
	m.mu.RUnlock()
	if !ok {
		return nil, apperror.NewNotFound("session", sessionID.String())
	}
	return s, nil
}

// Close removes the session.
func (m *Manager) Close(sessionID id.ID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[sessionID]; !ok {
		return apperror.NewNotFound("session", sessionID.String())
	}
	delete(m.sessions, sessionID)
	return nil
}

// Count returns the number of open sessions.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// StartSweeper closes idle sessions in the background until ctx is done.
func (m *Manager) StartSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if n := m.sweep(time.Now()); n > 0 {
					logger.Info(ctx, "idle sessions closed", "count", n)
				}
			}
		}
	}()
}

func (m *Manager) sweep(now time.Time) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	closed := 0
	for sid, s := range m.sessions {
		s.mu.Lock()
		idle := now.Sub(s.lastSeen)
		s.mu.Unlock()
		if idle > m.ttl {
			delete(m.sessions, sid)
			closed++
		}
	}
	return closed
}
