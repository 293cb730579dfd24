package storefront

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	DefaultIdleTimeout = 30 * time.Minute
	DefaultCapacity    = 10000
)

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithIdleTimeout drops sessions that have not been resolved for d.
func WithIdleTimeout(d time.Duration) ManagerOption {
	return func(m *Manager) {
		m.idle = d
	}
}

// WithCapacity bounds the number of live sessions. When full, the
// least recently seen session is evicted to make room.
func WithCapacity(n int) ManagerOption {
	return func(m *Manager) {
		m.capacity = n
	}
}

// WithClock overrides the time source used for expiry.
func WithClock(now func() time.Time) ManagerOption {
	return func(m *Manager) {
		m.now = now
	}
}

type entry struct {
	session *Session
	seen    time.Time
}

// Manager hands out sessions keyed by a random UUID.
type Manager struct {
	deps     Deps
	idle     time.Duration
	capacity int
	now      func() time.Time

	mu        sync.Mutex
	sessions  map[string]*entry
	lastSweep time.Time
}

func NewManager(deps Deps, opts ...ManagerOption) *Manager {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	m := &Manager{
		deps:     deps,
		idle:     DefaultIdleTimeout,
		capacity: DefaultCapacity,
		now:      time.Now,
		sessions: make(map[string]*entry),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.lastSweep = m.now()
	return m
}

// Resolve returns the session for id. An empty, unknown or expired id
// yields a new session with a fresh ID; created reports which case
// happened.
func (m *Manager) Resolve(id string) (s *Session, created bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	m.sweep(now)
	if e, ok := m.sessions[id]; ok {
		if !m.expired(e, now) {
			e.seen = now
			return e.session, false
		}
		m.drop(id, "expired")
	}
	if m.capacity > 0 && len(m.sessions) >= m.capacity {
		m.evictOldest()
	}
	s = newSession(uuid.NewString(), m.deps)
	m.sessions[s.id] = &entry{session: s, seen: now}
	m.deps.Logger.Debug("session created", zap.String("session_id", s.id))
	return s, true
}

// New always creates a session.
func (m *Manager) New() *Session {
	s, _ := m.Resolve("")
	return s
}

func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

func (m *Manager) expired(e *entry, now time.Time) bool {
	return m.idle > 0 && now.Sub(e.seen) >= m.idle
}

// sweep drops expired sessions, at most once per sweep interval.
func (m *Manager) sweep(now time.Time) {
	if m.idle <= 0 || now.Sub(m.lastSweep) < min(m.idle, time.Minute) {
		return
	}
	m.lastSweep = now
	for id, e := range m.sessions {
		if m.expired(e, now) {
			m.drop(id, "expired")
		}
	}
}

func (m *Manager) evictOldest() {
	var oldest string
	var seen time.Time
	for id, e := range m.sessions {
		if oldest == "" || e.seen.Before(seen) {
			oldest, seen = id, e.seen
		}
	}
	if oldest != "" {
		m.drop(oldest, "evicted")
	}
}

func (m *Manager) drop(id, reason string) {
	delete(m.sessions, id)
	m.deps.Logger.Debug("session dropped", zap.String("session_id", id), zap.String("reason", reason))
}
