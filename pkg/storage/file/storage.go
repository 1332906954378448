package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fadedpez/eldorado/pkg/storage"
)

// Storage implements file-based storage for user economy records. Each
// user gets one JSON file in the data directory holding the record's
// sub-documents keyed by name. Writes go through a temp file and rename
// so a crash never leaves a half-written record.
type Storage struct {
	dir string
	mu  sync.RWMutex
}

// New creates a new file storage instance rooted at dir.
func New(dir string) (*Storage, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}

	return &Storage{dir: dir}, nil
}

// Get returns the JSON value under key for userID.
func (s *Storage) Get(ctx context.Context, userID, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, err := s.loadRecord(userID)
	if err != nil {
		return nil, err
	}

	value, ok := record[key]
	if !ok {
		return nil, storage.ErrKeyNotFound
	}

	return value, nil
}

// Set writes the JSON value under key for userID.
func (s *Storage) Set(ctx context.Context, userID, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, err := s.loadRecord(userID)
	if errors.Is(err, storage.ErrKeyNotFound) {
		record = make(map[string]json.RawMessage)
	} else if err != nil {
		// An unreadable record must never be replaced by a fresh one; that
		// would wipe every other sub-key. Leave the file alone and surface
		// the failure.
		return err
	}

	record[key] = json.RawMessage(value)

	return s.saveRecord(userID, record)
}

// SetMany writes several sub-keys for userID in one record update. The
// record is rewritten through the same temp-file-and-rename path as Set,
// so either every key lands or the file is untouched.
func (s *Storage) SetMany(ctx context.Context, userID string, values map[string][]byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, err := s.loadRecord(userID)
	if errors.Is(err, storage.ErrKeyNotFound) {
		record = make(map[string]json.RawMessage)
	} else if err != nil {
		return err
	}

	for key, value := range values {
		record[key] = json.RawMessage(value)
	}

	return s.saveRecord(userID, record)
}

// Users lists every user id with a record on disk.
func (s *Storage) Users(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read storage directory: %w", err)
	}

	users := make([]string, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		users = append(users, strings.TrimSuffix(name, ".json"))
	}

	return users, nil
}

// Close is a no-op for file storage.
func (s *Storage) Close() error {
	return nil
}

// Helper functions

func (s *Storage) path(userID string) string {
	return filepath.Join(s.dir, userID+".json")
}

func (s *Storage) loadRecord(userID string) (map[string]json.RawMessage, error) {
	data, err := os.ReadFile(s.path(userID))
	if os.IsNotExist(err) {
		return nil, storage.ErrKeyNotFound
	}
	if err != nil {
		return nil, err
	}

	record := make(map[string]json.RawMessage)
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal record for %s: %w", userID, err)
	}

	return record, nil
}

func (s *Storage) saveRecord(userID string, record map[string]json.RawMessage) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}

	tmp := s.path(userID) + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write record: %w", err)
	}

	if err := os.Rename(tmp, s.path(userID)); err != nil {
		return fmt.Errorf("failed to replace record: %w", err)
	}

	return nil
}
