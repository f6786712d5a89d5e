package auth

import (
	"context"
	"errors"
	"sync"

	"cleanadmin/internal/events"
	"cleanadmin/internal/models"
	"cleanadmin/internal/session"

	"github.com/rs/zerolog"
)

type State int

const (
	StateUninitialized State = iota
	StateVerifying
	StateAuthenticated
	StateUnauthenticated
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateVerifying:
		return "verifying"
	case StateAuthenticated:
		return "authenticated"
	case StateUnauthenticated:
		return "unauthenticated"
	default:
		return "unknown"
	}
}

// Snapshot is a consistent copy of the manager's observable state.
type Snapshot struct {
	Admin           *models.Admin
	Token           string
	IsAuthenticated bool
	Loading         bool
	Error           string
	State           State
}

// Manager owns the current admin session for the process. It is safe for
// concurrent use.
type Manager struct {
	svc    *Service
	store  session.Store
	bus    *events.EventBus
	logger zerolog.Logger

	initOnce sync.Once
	initErr  error

	mu      sync.Mutex
	state   State
	token   string
	admin   *models.Admin
	loading bool
	errText string
}

func NewManager(svc *Service, store session.Store, bus *events.EventBus, logger *zerolog.Logger) *Manager {
	l := zerolog.Nop()
	if logger != nil {
		l = logger.With().Str("component", "session").Logger()
	}
	return &Manager{svc: svc, store: store, bus: bus, logger: l}
}

// Init restores a persisted session, verifying it first. Only the first call
// does any work; later calls return its result.
func (m *Manager) Init(ctx context.Context) error {
	m.initOnce.Do(func() {
		m.initErr = m.restore(ctx)
	})
	return m.initErr
}

func (m *Manager) restore(ctx context.Context) error {
	m.mu.Lock()
	if m.state != StateUninitialized {
		m.mu.Unlock()
		return nil
	}
	m.state = StateVerifying
	m.loading = true
	m.mu.Unlock()

	stored, err := m.store.Load(ctx)
	if err != nil || stored == nil {
		if err != nil {
			m.logger.Error().Err(err).Msg("session restore failed")
		}
		m.finish(StateUnauthenticated, nil)
		return err
	}

	if _, err := m.svc.VerifyToken(ctx, stored.Token); err != nil {
		m.logger.Info().Err(err).Str("admin", stored.Admin.Email).Msg("stored session rejected")
		if clearErr := m.store.Clear(ctx); clearErr != nil {
			m.logger.Error().Err(clearErr).Msg("failed to clear rejected session")
		}
		m.finish(StateUnauthenticated, nil)
		m.publish(events.EventSessionInvalidated, stored.Admin, err.Error())
		return nil
	}

	m.finish(StateAuthenticated, stored)
	m.publish(events.EventSessionRestored, stored.Admin, "")
	return nil
}

func (m *Manager) finish(state State, s *models.Session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = state
	m.loading = false
	if s == nil {
		m.token, m.admin = "", nil
		return
	}
	a := s.Admin
	m.token, m.admin = s.Token, &a
}

// Login authenticates and persists the session. On failure the error text
// is kept for Snapshot and any previous session stays in place. Init must
// have run first.
func (m *Manager) Login(ctx context.Context, email, password string) error {
	m.mu.Lock()
	if m.state == StateUninitialized || m.state == StateVerifying || m.loading {
		m.mu.Unlock()
		return ErrInvalidTransition
	}
	m.loading = true
	m.errText = ""
	m.mu.Unlock()

	sess, err := m.svc.Login(ctx, email, password)
	if err == nil {
		err = m.store.Save(ctx, *sess)
	}

	m.mu.Lock()
	m.loading = false
	if err != nil {
		m.errText = err.Error()
		m.mu.Unlock()
		m.logger.Warn().Err(err).Str("email", email).Msg("login failed")
		return err
	}
	a := sess.Admin
	m.token, m.admin = sess.Token, &a
	m.state = StateAuthenticated
	m.mu.Unlock()

	m.logger.Info().Str("admin", a.Email).Msg("logged in")
	m.publish(events.EventSessionLogin, a, "")
	return nil
}

// Logout clears the stored and in-memory session.
func (m *Manager) Logout(ctx context.Context) error {
	m.mu.Lock()
	if m.state == StateUninitialized || m.state == StateVerifying || m.loading {
		m.mu.Unlock()
		return ErrInvalidTransition
	}
	prev := m.admin
	m.mu.Unlock()

	if err := m.svc.Logout(ctx); err != nil {
		return err
	}

	m.mu.Lock()
	m.token, m.admin, m.errText = "", nil, ""
	m.state = StateUnauthenticated
	m.mu.Unlock()

	if prev != nil {
		m.publish(events.EventSessionLogout, *prev, "")
	}
	return nil
}

// Revalidate re-verifies the current token. A rejected token ends the
// session and ErrInvalidToken is returned.
func (m *Manager) Revalidate(ctx context.Context) error {
	m.mu.Lock()
	if m.state != StateAuthenticated || m.loading {
		m.mu.Unlock()
		return ErrInvalidTransition
	}
	token := m.token
	current := *m.admin
	m.mu.Unlock()

	_, err := m.svc.VerifyToken(ctx, token)
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) {
		return err
	}

	if clearErr := m.store.Clear(ctx); clearErr != nil {
		m.logger.Error().Err(clearErr).Msg("failed to clear rejected session")
	}
	m.mu.Lock()
	if m.token == token {
		m.token, m.admin = "", nil
		m.state = StateUnauthenticated
	}
	m.mu.Unlock()

	m.publish(events.EventSessionInvalidated, current, err.Error())
	if errors.Is(err, ErrInvalidToken) {
		return err
	}
	return errors.Join(ErrInvalidToken, err)
}

// Token returns the current bearer token, or "" when signed out.
func (m *Manager) Token(_ context.Context) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token
}

func (m *Manager) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	var a *models.Admin
	if m.admin != nil {
		cp := *m.admin
		a = &cp
	}
	return Snapshot{
		Admin:           a,
		Token:           m.token,
		IsAuthenticated: m.token != "" && m.admin != nil,
		Loading:         m.loading,
		Error:           m.errText,
		State:           m.state,
	}
}

func (m *Manager) publish(eventType string, a models.Admin, reason string) {
	payload := events.SessionEventPayload{AdminID: a.ID, Email: a.Email, Role: a.Role, Reason: reason}
	if err := m.bus.PublishJSON(eventType, payload); err != nil {
		m.logger.Error().Err(err).Str("event", eventType).Msg("failed to publish session event")
	}
}
