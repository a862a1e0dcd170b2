// Package session owns the authentication token and decides which views a
// user may see.
package session

import (
	"errors"
	"fmt"
	"sync"
)

// ErrEmptyToken is returned by Login when given an empty token.
var ErrEmptyToken = errors.New("session: empty token")

// Session is the single owner of the bearer token. The token is either absent
// or a non-empty opaque credential; it is never validated, refreshed or expired.
//
// Reads are safe from any goroutine: API calls read the token while the UI
// goroutine signs in and out.
type Session struct {
	mu    sync.RWMutex
	token string
	store Store
}

// New returns an unauthenticated session backed by store.
func New(store Store) *Session {
	if store == nil {
		store = &MemoryStore{}
	}
	return &Session{store: store}
}

// Open restores a session. A non-empty override (e.g. from the environment)
// takes precedence over the stored token.
func Open(store Store, override string) (*Session, error) {
	s := New(store)
	if override != "" {
		s.token = override
		return s, nil
	}
	tok, err := s.store.Load()
	if err != nil {
		return s, fmt.Errorf("session.Open: %w", err)
	}
	s.token = tok
	return s, nil
}

// IsAuthenticated reports whether a token is held.
func (s *Session) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token != ""
}

// Token returns the bearer token, or "" when signed out.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Login stores token. Call it only after a successful login exchange.
// The in-memory session is updated even when persisting fails.
func (s *Session) Login(token string) error {
	if token == "" {
		return ErrEmptyToken
	}
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
	if err := s.store.Save(token); err != nil {
		return fmt.Errorf("session.Login: %w", err)
	}
	return nil
}

// Logout clears the token unconditionally. The returned error only reports
// a failure to remove the persisted copy.
func (s *Session) Logout() error {
	s.mu.Lock()
	s.token = ""
	s.mu.Unlock()
	if err := s.store.Clear(); err != nil {
		return fmt.Errorf("session.Logout: %w", err)
	}
	return nil
}

// Identity decodes display information from the current token.
func (s *Session) Identity() Identity {
	return DecodeIdentity(s.Token())
}
