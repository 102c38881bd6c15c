// Package session holds the authenticated user and bearer token for the
// current client session, persisted to ~/.agentscope/credentials.yaml.
package session

import (
	"fmt"
	"os"
	"sync"

	"github.com/agentscope-io/agentscope/internal/config"
	"github.com/agentscope-io/agentscope/internal/models"
)

// Store is the session state container. User and token are either both
// present or both absent; SetAuth and Logout only ever move them together.
type Store struct {
	mu    sync.RWMutex
	path  string
	user  *models.User
	token string
}

// NewStore creates a store persisting to the given credentials file.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// NewDefaultStore creates a store persisting to the global credentials file
// and loads any existing credential.
func NewDefaultStore() (*Store, error) {
	path, err := config.GlobalCredentialsFile()
	if err != nil {
		return nil, err
	}
	s := NewStore(path)
	if err := s.Load(); err != nil {
		return nil, err
	}
	return s, nil
}

// Load reads the persisted credential, if any. A missing file leaves the
// store logged out.
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !config.FileExists(s.path) {
		return nil
	}
	var creds models.Credentials
	if err := config.LoadYAML(s.path, &creds); err != nil {
		return err
	}
	if creds.Token == "" || creds.User == nil {
		// Half-written credential, treat as logged out.
		s.user = nil
		s.token = ""
		return nil
	}
	s.user = creds.User
	s.token = creds.Token
	return nil
}

// SetAuth stores the user and token and persists them before returning, so
// the very next request observes the new token.
func (s *Store) SetAuth(user *models.User, token string) error {
	if user == nil || token == "" {
		return fmt.Errorf("both user and token are required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	creds := models.Credentials{Version: 1, Token: token, User: user}
	if err := config.SaveYAML(s.path, &creds, 0600); err != nil {
		return fmt.Errorf("failed to persist credentials: %w", err)
	}
	s.user = user
	s.token = token
	return nil
}

// Logout clears the session and removes the credentials file. Calling it on
// an already-empty store is a no-op.
func (s *Store) Logout() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.user = nil
	s.token = ""
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove credentials: %w", err)
	}
	return nil
}

// Token returns the current bearer token, or "" when logged out.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// User returns the current user, or nil when logged out.
func (s *Store) User() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// Authenticated reports whether a credential is present.
func (s *Store) Authenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token != "" && s.user != nil
}
