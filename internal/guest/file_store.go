package guest

import (
	"calltracker/internal/models"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	json "github.com/goccy/go-json"
)

// FileStore keeps every guest in one JSON document. Writes replace the file
// atomically.
type FileStore struct {
	path string

	mu      sync.Mutex
	entries map[string]models.Identity
}

func NewFileStore(path string) (*FileStore, error) {
	s := &FileStore{path: path, entries: make(map[string]models.Identity)}
	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read guest file: %w", err)
	}
	if len(raw) == 0 {
		return s, nil
	}
	if err := json.Unmarshal(raw, &s.entries); err != nil {
		return nil, fmt.Errorf("decode guest file: %w", err)
	}
	return s, nil
}

func (s *FileStore) Load(token string) (models.Identity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	identity, ok := s.entries[entryKey(token)]
	if !ok {
		return models.Identity{}, fmt.Errorf("guest %s: %w", token, models.ErrNotFound)
	}
	return identity, nil
}

func (s *FileStore) Save(token string, identity models.Identity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := entryKey(token)
	prev, had := s.entries[key]
	s.entries[key] = identity
	if err := s.flushLocked(); err != nil {
		if had {
			s.entries[key] = prev
		} else {
			delete(s.entries, key)
		}
		return err
	}
	return nil
}

// Touch only checks the entry exists; file entries do not expire.
func (s *FileStore) Touch(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entries[entryKey(token)]; !ok {
		return fmt.Errorf("guest %s: %w", token, models.ErrNotFound)
	}
	return nil
}

func (s *FileStore) Clear(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := entryKey(token)
	if _, ok := s.entries[key]; !ok {
		return nil
	}
	delete(s.entries, key)
	return s.flushLocked()
}

func (s *FileStore) flushLocked() error {
	raw, err := json.Marshal(s.entries)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return fmt.Errorf("write guest file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replace guest file: %w", err)
	}
	return nil
}
