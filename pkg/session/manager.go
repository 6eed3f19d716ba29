package session

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/aretw0/automata/internal/logging"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/google/uuid"
)

// Info describes an active session.
type Info struct {
	ID        string    `json:"id"`
	StartedAt time.Time `json:"started_at"`
}

// Session is the handle returned by Start. Its context is cancelled by Cancel,
// by Complete or when the parent context is done.
type Session struct {
	Info
	ctx    context.Context
	cancel context.CancelFunc
}

// Context returns the context the exploration must run under.
func (s *Session) Context() context.Context {
	return s.ctx
}

// Manager is a concurrency-safe registry of active sessions.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session

	logger *slog.Logger
	newID  func() string
	now    func() time.Time
}

// Option configures the Manager.
type Option func(*Manager)

// WithLogger configures a logger for the Manager.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithIDGenerator replaces the uuid generator.
func WithIDGenerator(gen func() string) Option {
	return func(m *Manager) {
		m.newID = gen
	}
}

// NewManager creates an empty registry.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		sessions: make(map[string]*Session),
		logger:   logging.NewNop(),
		newID:    uuid.NewString,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Start registers a new session derived from parent.
func (m *Manager) Start(parent context.Context) *Session {
	ctx, cancel := context.WithCancel(parent)
	s := &Session{
		Info:   Info{ID: m.newID(), StartedAt: m.now()},
		ctx:    ctx,
		cancel: cancel,
	}

	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()

	m.logger.Debug("session started", "session_id", s.ID)
	return s
}

// Cancel stops the exploration behind id. The session stays registered until
// its owner calls Complete.
func (m *Manager) Cancel(id string) error {
	m.mu.Lock()
	s, ok := m.sessions[id]
	m.mu.Unlock()
	if !ok {
		return domain.ErrSessionNotFound
	}

	s.cancel()
	m.logger.Info("session cancelled", "session_id", id)
	return nil
}

// Complete removes id from the registry and releases its context.
// Completing an unknown or already completed session is a no-op.
func (m *Manager) Complete(id string) {
	m.mu.Lock()
	s, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()
	if !ok {
		return
	}

	s.cancel()
	m.logger.Debug("session completed",
		"session_id", id,
		"duration", m.now().Sub(s.StartedAt),
	)
}

// Get returns the info of an active session.
func (m *Manager) Get(id string) (Info, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return Info{}, domain.ErrSessionNotFound
	}
	return s.Info, nil
}

// Active lists the registered sessions, oldest first.
func (m *Manager) Active() []Info {
	m.mu.Lock()
	out := make([]Info, 0, len(m.sessions))
	for _, s := range m.sessions {
		out = append(out, s.Info)
	}
	m.mu.Unlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].StartedAt.Equal(out[j].StartedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].StartedAt.Before(out[j].StartedAt)
	})
	return out
}
