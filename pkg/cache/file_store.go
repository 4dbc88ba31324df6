package cache

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// FileStore persists cache entries to a single JSON file, one entry per
// key, following the teacher's pkg/persistence/state.go pattern of a
// mutex-guarded read-modify-write cycle over os.ReadFile/os.WriteFile.
// It is the default store (spec.md §4.H).
type FileStore struct {
	mu   sync.Mutex
	path string
	ttl  time.Duration
}

// NewFileStore creates a file-backed store at path with the given TTL.
// A zero ttl is treated as DefaultTTL.
func NewFileStore(path string, ttl time.Duration) *FileStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &FileStore{path: path, ttl: ttl}
}

// load reads the full entry map from disk. A missing file is treated as
// an empty store, matching state.go's Load() "returns nil, nil if the
// file doesn't exist" convention.
func (s *FileStore) load() (map[string]entry, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return map[string]entry{}, nil
	}
	if err != nil {
		return nil, err
	}

	entries := map[string]entry{}
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// save writes the full entry map to disk, creating the parent directory
// if needed (state.go's Save() does the same before MarshalIndent).
func (s *FileStore) save(entries map[string]entry) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0644)
}

// Get implements Store.Get (spec.md §4.H check-then-delete-on-read).
func (s *FileStore) Get(key string, out any) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.load()
	if err != nil {
		return false, err
	}

	e, ok := entries[key]
	if !ok {
		return false, nil
	}

	if len(e.Data) == 0 || e.LastSeen.IsZero() || e.expired(time.Now(), s.ttl) {
		delete(entries, key)
		return false, s.save(entries)
	}

	if err := json.Unmarshal(e.Data, out); err != nil {
		delete(entries, key)
		return false, s.save(entries)
	}
	return true, nil
}

// Set implements Store.Set.
func (s *FileStore) Set(key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.load()
	if err != nil {
		return err
	}

	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	entries[key] = entry{Data: data, LastSeen: time.Now()}
	return s.save(entries)
}

// Delete implements Store.Delete.
func (s *FileStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.load()
	if err != nil {
		return err
	}
	if _, ok := entries[key]; !ok {
		return nil
	}
	delete(entries, key)
	return s.save(entries)
}

// Clear implements Store.Clear.
func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(map[string]entry{})
}

// Close is a no-op for FileStore; every operation already flushes to
// disk (spec.md §4.H: "no write buffering").
func (s *FileStore) Close() error {
	return nil
}
