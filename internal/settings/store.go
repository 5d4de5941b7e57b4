package settings

import (
	"os"
	"path/filepath"
	"sync"
)

// Store is the durable key-value storage behind user settings.
// Implementations must persist whole values; there is no partial write.
type Store interface {
	Get(key string) ([]byte, bool, error)
	Set(key string, value []byte) error
}

// FileStore persists each key as a JSON file inside a directory
type FileStore struct {
	dir string
}

// NewFileStore creates the backing directory if needed
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FileStore{dir: dir}, nil
}

// Get reads the value for key. A missing file is not an error; it reports
// found = false so callers fall back to defaults.
func (f *FileStore) Get(key string) ([]byte, bool, error) {
	data, err := os.ReadFile(f.path(key))
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

// Set rewrites the value for key wholesale
func (f *FileStore) Set(key string, value []byte) error {
	return os.WriteFile(f.path(key), value, 0o644)
}

func (f *FileStore) path(key string) string {
	return filepath.Join(f.dir, key+".json")
}

// MemStore is an in-memory Store for tests
type MemStore struct {
	mu sync.Mutex
	m  map[string][]byte
}

// NewMemStore returns an empty in-memory store
func NewMemStore() *MemStore {
	return &MemStore{m: make(map[string][]byte)}
}

// Get returns the stored value for key, if any
func (s *MemStore) Get(key string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.m[key]
	return v, ok, nil
}

// Set stores the value for key
func (s *MemStore) Set(key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[key] = append([]byte(nil), value...)
	return nil
}
