// ABOUTME: Session store owning the bearer token lifecycle
// ABOUTME: Persists a single token slot in the user's config directory

package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Store holds at most one bearer token.
type Store interface {
	// SetToken persists the token, overwriting any prior value.
	SetToken(token string) error
	// Token returns the persisted token and whether one exists.
	Token() (string, bool)
	// Clear removes the token. Clearing an empty store is not an error.
	Clear() error
}

const sessionFileName = "session.json"

type sessionData struct {
	Token string `json:"token"`
}

// FileStore keeps the token in <configDir>/session.json
type FileStore struct {
	configDir string
	mu        sync.Mutex
}

// NewFileStore creates a file-backed store rooted at configDir
func NewFileStore(configDir string) *FileStore {
	return &FileStore{configDir: configDir}
}

// Path returns the location of the session file
func (s *FileStore) Path() string {
	return filepath.Join(s.configDir, sessionFileName)
}

// SetToken writes the token through a temp file so readers never see a partial slot
func (s *FileStore) SetToken(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.configDir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.Marshal(sessionData{Token: token})
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	tmp, err := os.CreateTemp(s.configDir, "session-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to write session: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write session: %w", err)
	}
	if err := tmp.Chmod(0600); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write session: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write session: %w", err)
	}

	if err := os.Rename(tmpPath, s.Path()); err != nil {
		return fmt.Errorf("failed to write session: %w", err)
	}
	return nil
}

// Token reads the persisted token. A missing or unreadable file means no session.
func (s *FileStore) Token() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.Path())
	if err != nil {
		return "", false
	}

	var sd sessionData
	if err := json.Unmarshal(data, &sd); err != nil {
		return "", false
	}
	if sd.Token == "" {
		return "", false
	}
	return sd.Token, true
}

// Clear deletes the session file
func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.Path())
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

// MemoryStore is a process-local Store
type MemoryStore struct {
	mu    sync.Mutex
	token string
	set   bool
}

// NewMemoryStore returns an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) SetToken(token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
	m.set = true
	return nil
}

func (m *MemoryStore) Token() (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.set || m.token == "" {
		return "", false
	}
	return m.token, true
}

func (m *MemoryStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	m.set = false
	return nil
}
