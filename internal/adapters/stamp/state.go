// Package stamp implements completion tracking with marker files and a
// JSON state store.
package stamp

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"go.trai.ch/fab/internal/core/domain"
	"go.trai.ch/zerr"
)

// StateStore persists stamp metadata in a flat JSON file.
type StateStore struct {
	path  string
	mu    sync.RWMutex
	cache map[string]domain.StampInfo
}

// NewStateStore creates a StateStore backed by the file at the given
// path, loading any existing state.
func NewStateStore(path string) (*StateStore, error) {
	s := &StateStore{
		path:  filepath.Clean(path),
		cache: make(map[string]domain.StampInfo),
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *StateStore) load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	//nolint:gosec // Path is cleaned and provided by trusted caller
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return zerr.Wrap(err, "failed to read stamp state")
	}

	if len(data) == 0 {
		return nil
	}

	if err := json.Unmarshal(data, &s.cache); err != nil {
		return zerr.Wrap(err, "failed to unmarshal stamp state")
	}

	return nil
}

func (s *StateStore) save() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(s.cache, "", "  ")
	if err != nil {
		return zerr.Wrap(err, "failed to marshal stamp state")
	}

	if err := os.MkdirAll(filepath.Dir(s.path), domain.DirPerm); err != nil {
		return zerr.Wrap(err, "failed to create directory for stamp state")
	}

	//nolint:gosec // Path is cleaned and provided by trusted caller
	if err := os.WriteFile(s.path, data, domain.FilePerm); err != nil {
		return zerr.Wrap(err, "failed to write stamp state")
	}

	return nil
}

// Get retrieves the recorded info for a task name, or nil if absent.
func (s *StateStore) Get(taskName string) *domain.StampInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()

	info, ok := s.cache[taskName]
	if !ok {
		return nil
	}
	return &info
}

// Put records the info and saves to disk.
func (s *StateStore) Put(info domain.StampInfo) error {
	s.mu.Lock()
	s.cache[info.TaskName] = info
	s.mu.Unlock()

	return s.save()
}

// Reset drops all recorded state and removes the state file.
func (s *StateStore) Reset() error {
	s.mu.Lock()
	s.cache = make(map[string]domain.StampInfo)
	s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return zerr.Wrap(err, "failed to remove stamp state")
	}
	return nil
}
