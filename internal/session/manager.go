package session

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/phonestore/storefront/internal/domain"
	apperrors "github.com/phonestore/storefront/pkg/errors"
)

// Manager is the only code that reads or writes sessions. Handlers, services
// and commands receive the *Session it returns and pass it on explicitly.
type Manager struct {
	store  Store
	ttl    time.Duration
	logger *zap.Logger
	now    func() time.Time
}

// NewManager creates a session manager over the given store
func NewManager(store Store, ttl time.Duration, logger *zap.Logger) *Manager {
	return &Manager{
		store:  store,
		ttl:    ttl,
		logger: logger,
		now:    time.Now,
	}
}

// Begin starts an anonymous session with a fresh guest cart key
func (m *Manager) Begin(ctx context.Context) (*Session, error) {
	now := m.now()
	s := &Session{
		ID:        uuid.NewString(),
		CartKey:   uuid.NewString(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if m.ttl > 0 {
		s.ExpiresAt = now.Add(m.ttl)
	}

	if err := m.store.Save(ctx, s); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}
	return s, nil
}

// Load returns a live session. Expired sessions are removed and reported
// as not found.
func (m *Manager) Load(ctx context.Context, id string) (*Session, error) {
	if id == "" {
		return nil, &apperrors.ErrNotFound{Resource: "session"}
	}

	s, err := m.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.Expired(m.now()) {
		if err := m.store.Delete(ctx, id); err != nil {
			m.logger.Warn("Failed to delete expired session", zap.String("session_id", id), zap.Error(err))
		}
		return nil, &apperrors.ErrNotFound{Resource: "session", ID: id}
	}
	return s, nil
}

// LoadOrBegin loads id or starts a new session when it is unknown or expired.
// The boolean reports whether a new session was created.
func (m *Manager) LoadOrBegin(ctx context.Context, id string) (*Session, bool, error) {
	s, err := m.Load(ctx, id)
	if err == nil {
		return s, false, nil
	}
	if !apperrors.IsNotFound(err) {
		return nil, false, err
	}

	s, err = m.Begin(ctx)
	if err != nil {
		return nil, false, err
	}
	return s, true, nil
}

// Authenticate stores the backend token and profile on the session
func (m *Manager) Authenticate(ctx context.Context, s *Session, token string, user *domain.User) error {
	if token == "" {
		return &apperrors.ErrUnauthorized{Message: "empty token"}
	}
	s.Token = token
	s.User = user
	return m.save(ctx, s)
}

// UpdateUser refreshes the cached profile
func (m *Manager) UpdateUser(ctx context.Context, s *Session, user *domain.User) error {
	s.User = user
	return m.save(ctx, s)
}

// Logout drops credentials and the cached profile and hands out a new cart
// key so the next visitor does not inherit the previous cart.
func (m *Manager) Logout(ctx context.Context, s *Session) error {
	s.Token = ""
	s.User = nil
	s.CartKey = uuid.NewString()
	return m.save(ctx, s)
}

// Touch extends the session expiry
func (m *Manager) Touch(ctx context.Context, s *Session) error {
	return m.save(ctx, s)
}

// TouchAfter extends the expiry only when the session was last saved at
// least every ago. It reports whether the session was saved.
func (m *Manager) TouchAfter(ctx context.Context, s *Session, every time.Duration) (bool, error) {
	if m.now().Sub(s.UpdatedAt) < every {
		return false, nil
	}
	if err := m.Touch(ctx, s); err != nil {
		return false, err
	}
	return true, nil
}

func (m *Manager) save(ctx context.Context, s *Session) error {
	now := m.now()
	s.UpdatedAt = now
	if m.ttl > 0 {
		s.ExpiresAt = now.Add(m.ttl)
	}
	if err := m.store.Save(ctx, s); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}
