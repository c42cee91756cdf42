package session

import (
	"context"
	"time"

	"github.com/phonestore/storefront/internal/domain"
)

// Session is everything the storefront remembers about a visitor between
// requests: the backend bearer token, the cached profile and the key that
// owns a guest cart.
type Session struct {
	ID        string       `json:"id" yaml:"id"`
	Token     string       `json:"token,omitempty" yaml:"token,omitempty"`
	User      *domain.User `json:"user,omitempty" yaml:"user,omitempty"`
	CartKey   string       `json:"cartKey" yaml:"cart_key"`
	CreatedAt time.Time    `json:"createdAt" yaml:"created_at"`
	UpdatedAt time.Time    `json:"updatedAt" yaml:"updated_at"`
	ExpiresAt time.Time    `json:"expiresAt" yaml:"expires_at"`
}

// Authenticated reports whether the session carries a backend token
func (s *Session) Authenticated() bool {
	return s != nil && s.Token != ""
}

// Expired reports whether the session is past its expiry
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}

// Clone returns a deep copy so stores never share mutable state with callers
func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}
	c := *s
	if s.User != nil {
		u := *s.User
		c.User = &u
	}
	return &c
}

// Store persists sessions. Get returns *errors.ErrNotFound for unknown ids.
type Store interface {
	Get(ctx context.Context, id string) (*Session, error)
	Save(ctx context.Context, s *Session) error
	Delete(ctx context.Context, id string) error
}
