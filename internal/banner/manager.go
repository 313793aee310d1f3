package banner

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// Manager owns one Loop per viewer session and evicts loops whose
// sessions have gone idle.
type Manager struct {
	source   Source
	resolver Resolver
	defaults Config
	ttl      time.Duration
	logger   *zap.Logger

	mu       sync.Mutex
	sessions map[string]*session
	stop     chan struct{}
	started  bool
}

type session struct {
	loop     *Loop
	lastSeen time.Time
}

// NewManager builds a manager using defaults for every session's timing.
func NewManager(source Source, resolver Resolver, defaults Config, ttl time.Duration, logger *zap.Logger) *Manager {
	if ttl <= 0 {
		ttl = 2 * time.Hour
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		source:   source,
		resolver: resolver,
		defaults: defaults,
		ttl:      ttl,
		logger:   logger,
		sessions: make(map[string]*session),
	}
}

// Start launches the idle-session sweeper.
func (m *Manager) Start() {
	m.mu.Lock()
	if m.started {
		m.mu.Unlock()
		return
	}
	m.started = true
	m.stop = make(chan struct{})
	m.mu.Unlock()

	go func() {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				m.sweep()
			case <-m.stop:
				return
			}
		}
	}()
}

// Stop halts the sweeper and every managed loop.
func (m *Manager) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.started {
		return
	}
	m.started = false
	close(m.stop)
	for key, sess := range m.sessions {
		sess.loop.Stop()
		delete(m.sessions, key)
	}
}

// Acquire returns the loop for the session, creating and starting it on
// first sight. Language changes on an existing session propagate to the
// loop.
func (m *Manager) Acquire(sessionID, roomID, language string, menuContext bool) *Loop {
	m.mu.Lock()
	defer m.mu.Unlock()

	if sess, ok := m.sessions[sessionID]; ok {
		sess.lastSeen = time.Now()
		sess.loop.SetLanguage(language)
		return sess.loop
	}

	cfg := m.defaults
	cfg.RoomID = roomID
	cfg.Language = language
	cfg.MenuContext = menuContext

	loop := NewLoop(m.source, m.resolver, cfg, m.logger)
	loop.Start()
	m.sessions[sessionID] = &session{loop: loop, lastSeen: time.Now()}
	m.logger.Debug("banner session started",
		zap.String("session", sessionID), zap.String("room", roomID))
	return loop
}

// SessionCount returns the number of live sessions.
func (m *Manager) SessionCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

func (m *Manager) sweep() {
	cutoff := time.Now().Add(-m.ttl)
	m.mu.Lock()
	defer m.mu.Unlock()
	for key, sess := range m.sessions {
		if sess.lastSeen.Before(cutoff) {
			sess.loop.Stop()
			delete(m.sessions, key)
		}
	}
}
