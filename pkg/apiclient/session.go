package apiclient

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"
)

// Session holds the bearer token and cached user for an authenticated
// client. It can optionally be persisted to disk so a CLI or desktop client
// survives restarts without logging in again.
type Session struct {
	mu   sync.RWMutex
	path string

	Token string `json:"token"`
	User  *User  `json:"user,omitempty"`
}

// NewSession returns an empty in-memory session.
func NewSession() *Session {
	return &Session{}
}

// LoadSession reads a session from the given file. A missing file is not an
// error; it just returns an empty session bound to that path.
func LoadSession(path string) (*Session, error) {
	s := &Session{path: path}

	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, errors.WithStack(err)
	}
	defer f.Close()

	err = json.NewDecoder(f).Decode(s)
	if err != nil {
		return nil, errors.Wrap(err, "parsing session file")
	}
	return s, nil
}

// SetAuth stores the token and user and persists the session if it is bound
// to a file.
func (s *Session) SetAuth(token string, user *User) error {
	s.mu.Lock()
	s.Token = token
	s.User = user
	s.mu.Unlock()
	return s.save()
}

// BearerToken returns the stored token, or "" if the session is
// unauthenticated.
func (s *Session) BearerToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Token
}

// CurrentUser returns the cached user from the last successful login or
// verify call.
func (s *Session) CurrentUser() *User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.User
}

// Clear forgets the token and user. If the session is bound to a file, the
// file is removed.
func (s *Session) Clear() error {
	s.mu.Lock()
	s.Token = ""
	s.User = nil
	path := s.path
	s.mu.Unlock()

	if path == "" {
		return nil
	}
	err := os.Remove(path)
	if err != nil && !os.IsNotExist(err) {
		return errors.WithStack(err)
	}
	return nil
}

func (s *Session) save() error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.path == "" {
		return nil
	}

	err := os.MkdirAll(filepath.Dir(s.path), 0o755)
	if err != nil {
		return errors.WithStack(err)
	}

	contents, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return errors.WithStack(err)
	}

	err = os.WriteFile(s.path, contents, 0o600)
	return errors.WithStack(err)
}
