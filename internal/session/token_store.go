package session

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// FileTokenStore persists the bearer token to a single file. It is the only
// durable client state; everything else is re-fetched on each view mount.
type FileTokenStore struct {
	path string

	mu     sync.Mutex
	cached string
	loaded bool
}

func NewFileTokenStore(path string) *FileTokenStore {
	return &FileTokenStore{path: path}
}

func (s *FileTokenStore) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.loaded {
		raw, err := os.ReadFile(s.path)
		if err == nil {
			s.cached = strings.TrimSpace(string(raw))
		}

		s.loaded = true
	}

	return s.cached
}

func (s *FileTokenStore) Save(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}

	if err := os.WriteFile(s.path, []byte(token), 0o600); err != nil {
		return err
	}

	s.cached = token
	s.loaded = true

	return nil
}

// Purge drops the token from memory and disk. Called on logout and on any
// 401 from the server.
func (s *FileTokenStore) Purge() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		slog.Warn("failed to remove token file", slog.String("path", s.path), slog.String("error", err.Error()))
	}

	s.cached = ""
	s.loaded = true
}
