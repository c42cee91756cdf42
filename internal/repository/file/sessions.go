package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/phonestore/storefront/internal/session"
	apperrors "github.com/phonestore/storefront/pkg/errors"
)

type sessionFile struct {
	Current  string                      `yaml:"current,omitempty"`
	Sessions map[string]*session.Session `yaml:"sessions"`
}

// SessionStore keeps CLI sessions in a single yaml file readable only by
// its owner.
type SessionStore struct {
	path string
	mu   sync.Mutex
}

func NewSessionStore(path string) *SessionStore {
	return &SessionStore{path: path}
}

func (s *SessionStore) Path() string {
	return s.path
}

func (s *SessionStore) Get(_ context.Context, id string) (*session.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := s.read()
	if err != nil {
		return nil, err
	}
	sess, ok := f.Sessions[id]
	if !ok {
		return nil, &apperrors.ErrNotFound{Resource: "session", ID: id}
	}
	sess.ID = id
	return sess, nil
}

func (s *SessionStore) Save(_ context.Context, sess *session.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := s.read()
	if err != nil {
		return err
	}
	f.Sessions[sess.ID] = sess.Clone()
	return s.write(f)
}

func (s *SessionStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := s.read()
	if err != nil {
		return err
	}
	if _, ok := f.Sessions[id]; !ok {
		return nil
	}
	delete(f.Sessions, id)
	if f.Current == id {
		f.Current = ""
	}
	return s.write(f)
}

// Current returns the id of the session the CLI resumes, or "" when none
func (s *SessionStore) Current() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := s.read()
	if err != nil {
		return "", err
	}
	return f.Current, nil
}

// SetCurrent records which session the next invocation resumes
func (s *SessionStore) SetCurrent(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := s.read()
	if err != nil {
		return err
	}
	if f.Current == id {
		return nil
	}
	f.Current = id
	return s.write(f)
}

func (s *SessionStore) read() (*sessionFile, error) {
	f := &sessionFile{}
	raw, err := os.ReadFile(s.path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}
	if len(raw) > 0 {
		if err := yaml.Unmarshal(raw, f); err != nil {
			return nil, fmt.Errorf("failed to parse session file %s: %w", s.path, err)
		}
	}
	if f.Sessions == nil {
		f.Sessions = make(map[string]*session.Session)
	}
	return f, nil
}

func (s *SessionStore) write(f *sessionFile) error {
	raw, err := yaml.Marshal(f)
	if err != nil {
		return fmt.Errorf("failed to encode session file: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}
	return os.Rename(tmp, s.path)
}

var _ session.Store = (*SessionStore)(nil)
