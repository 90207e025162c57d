package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/kabachok/dropclient/internal/domain"
)

// Store persists the session across process restarts.
type Store interface {
	Load() (*domain.Session, error)
	Save(s *domain.Session) error
	Clear() error
}

// FileStore keeps the session as a JSON file in the client state directory.
// Tokens are secrets, so the file is created user-only.
type FileStore struct {
	path string
}

// NewFileStore creates a store writing to <dir>/session.json.
func NewFileStore(dir string) *FileStore {
	return &FileStore{path: filepath.Join(dir, SessionFileName)}
}

// Load reads the persisted session. A missing file is not an error: it means
// no session survived (fresh install or prior logout).
func (fs *FileStore) Load() (*domain.Session, error) {
	raw, err := os.ReadFile(fs.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}

	var s domain.Session
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("failed to parse session file: %w", err)
	}
	if s.AccessToken == "" && s.RefreshToken == "" {
		return nil, nil
	}
	return &s, nil
}

// Save writes the session atomically (temp file + rename).
func (fs *FileStore) Save(s *domain.Session) error {
	if err := os.MkdirAll(filepath.Dir(fs.path), 0o700); err != nil {
		return fmt.Errorf("failed to create state dir: %w", err)
	}

	payload, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	tmp := fs.path + ".tmp"
	if err := os.WriteFile(tmp, payload, 0o600); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}
	if err := os.Rename(tmp, fs.path); err != nil {
		return fmt.Errorf("failed to replace session file: %w", err)
	}
	return nil
}

// Clear removes the persisted session. Idempotent.
func (fs *FileStore) Clear() error {
	err := os.Remove(fs.path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove session file: %w", err)
	}
	return nil
}
