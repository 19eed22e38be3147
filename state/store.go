package state

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/gruntwork-io/go-commons/errors"
	"github.com/mitchellh/go-homedir"
)

// DefaultStatePath is where the session is kept when no path is configured.
const DefaultStatePath = "~/.metro/state.yaml"

// Store is the persistence target for serialized sessions.
type Store interface {
	Load() (string, error)
	Save(blob string) error
}

// FileStore keeps the blob in a single file.
type FileStore struct {
	Path string
}

// NewFileStore creates a FileStore at path. A leading ~ is expanded to the user's home directory.
func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		path = DefaultStatePath
	}
	expanded, err := homedir.Expand(path)
	if err != nil {
		return nil, errors.WithStackTrace(err)
	}
	return &FileStore{Path: expanded}, nil
}

// Load returns the stored blob. A missing file is an empty blob.
func (s *FileStore) Load() (string, error) {
	raw, err := os.ReadFile(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", errors.WithStackTrace(err)
	}
	return string(raw), nil
}

// Save replaces the stored blob. The file is written next to the target and renamed over it.
func (s *FileStore) Save(blob string) error {
	if err := os.MkdirAll(filepath.Dir(s.Path), 0o755); err != nil {
		return errors.WithStackTrace(err)
	}

	tmp := s.Path + ".tmp"
	if err := os.WriteFile(tmp, []byte(blob), 0o644); err != nil {
		return errors.WithStackTrace(err)
	}
	if err := os.Rename(tmp, s.Path); err != nil {
		return errors.WithStackTrace(err)
	}
	return nil
}

// MemoryStore keeps the blob in memory. It is used when persistence is disabled.
type MemoryStore struct {
	mu    sync.Mutex
	blob  string
	saves int
}

func (s *MemoryStore) Load() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.blob, nil
}

func (s *MemoryStore) Save(blob string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blob = blob
	s.saves++
	return nil
}

// Saves returns how many times Save was called.
func (s *MemoryStore) Saves() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}
