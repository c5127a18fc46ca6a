package client

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// SessionStore persists the api key between runs so that each
// invocation of the client does not require a fresh login.
type SessionStore interface {
	Load() (string, error)
	Save(token string) error
	Clear() error
}

// FileSessionStore keeps the api key in a single file, the CLI
// equivalent of the single browser storage slot the web client used.
type FileSessionStore struct {
	path string
}

// DefaultSessionPath returns the per-user location of the session
// file, under the OS user config directory.
func DefaultSessionPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate user config directory: %w", err)
	}
	return filepath.Join(dir, "biblio", "session"), nil
}

// NewFileSessionStore builds a store on the given path, or on
// DefaultSessionPath when path is empty.
func NewFileSessionStore(path string) (*FileSessionStore, error) {
	if path == "" {
		p, err := DefaultSessionPath()
		if err != nil {
			return nil, err
		}
		path = p
	}
	return &FileSessionStore{path: path}, nil
}

// Load returns the stored api key, or the empty string when no
// session exists yet.
func (s *FileSessionStore) Load() (string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read session file: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

// Save writes the api key, creating the parent directory on first
// use. The file is readable by the owner only.
func (s *FileSessionStore) Save(token string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}
	if err := os.WriteFile(s.path, []byte(token), 0o600); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}
	return nil
}

// Clear removes the session file. A missing file is not an error.
func (s *FileSessionStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove session file: %w", err)
	}
	return nil
}

// MemorySessionStore holds the api key in memory only. It backs the
// probe command and the tests, where nothing should touch disk.
type MemorySessionStore struct {
	token string
}

func NewMemorySessionStore(token string) *MemorySessionStore {
	return &MemorySessionStore{token: token}
}

func (s *MemorySessionStore) Load() (string, error) { return s.token, nil }

func (s *MemorySessionStore) Save(token string) error {
	s.token = token
	return nil
}

func (s *MemorySessionStore) Clear() error {
	s.token = ""
	return nil
}
