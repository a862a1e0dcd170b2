package session

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Store persists the bearer token between runs.
type Store interface {
	Load() (string, error) // "" and nil when nothing is stored
	Save(token string) error
	Clear() error
}

// tokenFileName is the fixed key the token is stored under.
const tokenFileName = "token"

// DefaultDir returns ~/.jobdesk.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".jobdesk"), nil
}

// FileStore keeps the token in a single 0600 file.
type FileStore struct {
	path string
}

// NewFileStore returns a store writing dir/token.
func NewFileStore(dir string) *FileStore {
	return &FileStore{path: filepath.Join(dir, tokenFileName)}
}

// Path returns the token file location.
func (s *FileStore) Path() string { return s.path }

func (s *FileStore) Load() (string, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read token: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

func (s *FileStore) Save(token string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("create token dir: %w", err)
	}
	if err := os.WriteFile(s.path, []byte(token), 0600); err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	return nil
}

func (s *FileStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove token: %w", err)
	}
	return nil
}

// MemoryStore is a Store that forgets everything on exit.
type MemoryStore struct {
	mu    sync.Mutex
	token string
}

func (s *MemoryStore) Load() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, nil
}

func (s *MemoryStore) Save(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	return nil
}

func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	return nil
}
