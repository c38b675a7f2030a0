package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog/log"
)

// FileKeyValueStore keeps every key in a single JSON document on disk.
// The document is read once when the store opens and rewritten atomically
// on every change.
type FileKeyValueStore struct {
	filePath string
	mu       sync.RWMutex
	data     map[string]json.RawMessage
}

// NewFileKeyValueStore opens the store at path, creating its directory.
// A missing file starts an empty store. An unreadable document is logged
// and replaced on the next write.
func NewFileKeyValueStore(path string) (*FileKeyValueStore, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create storage directory: %w", err)
		}
	}

	store := &FileKeyValueStore{
		filePath: path,
		data:     make(map[string]json.RawMessage),
	}

	if err := store.load(); err != nil {
		log.Warn().Err(err).Str("path", path).Msg("Storage file unreadable, starting empty")
	}

	return store, nil
}

func (s *FileKeyValueStore) load() error {
	raw, err := os.ReadFile(s.filePath)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	if len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, &s.data)
}

// Get retrieves the blob stored under key.
func (s *FileKeyValueStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.data[key]
	if !ok {
		return nil, keyNotFound(key)
	}
	out := make([]byte, len(value))
	copy(out, value)
	return out, nil
}

// Set stores value under key. The value must be a JSON document.
func (s *FileKeyValueStore) Set(_ context.Context, key string, value []byte) error {
	if !json.Valid(value) {
		return fmt.Errorf("value for key %s is not valid JSON", key)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	previous, existed := s.data[key]
	s.data[key] = append(json.RawMessage(nil), value...)
	if err := s.flush(); err != nil {
		if existed {
			s.data[key] = previous
		} else {
			delete(s.data, key)
		}
		return err
	}
	return nil
}

// Delete removes key. Deleting an absent key is not an error.
func (s *FileKeyValueStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	previous, ok := s.data[key]
	if !ok {
		return nil
	}
	delete(s.data, key)
	if err := s.flush(); err != nil {
		s.data[key] = previous
		return err
	}
	return nil
}

// HealthCheck verifies the storage directory is still accessible.
func (s *FileKeyValueStore) HealthCheck(context.Context) error {
	if _, err := os.Stat(filepath.Dir(s.filePath)); err != nil {
		return fmt.Errorf("storage health check failed: %w", err)
	}
	return nil
}

// Close is a no-op; every change is already on disk.
func (s *FileKeyValueStore) Close() error {
	return nil
}

// flush writes the document to a temporary file and renames it into place.
// Callers hold the write lock.
func (s *FileKeyValueStore) flush() error {
	raw, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode storage file: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.filePath), filepath.Base(s.filePath)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary storage file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write storage file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to write storage file: %w", err)
	}
	if err := os.Rename(tmpName, s.filePath); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace storage file: %w", err)
	}
	return nil
}
