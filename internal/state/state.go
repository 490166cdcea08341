// Package state persists the outcome of the last sync run.
package state

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"
)

// ErrCorrupt is returned alongside an empty State when the state file cannot
// be decoded.
var ErrCorrupt = errors.New("state file is corrupt")

// State is the sync bookkeeping: when the last run finished and which
// "@scope/name" skills it installed.
type State struct {
	LastSyncTime    *time.Time `json:"last_sync_time,omitempty"`
	InstalledSkills []string   `json:"installed_skills"`
}

// Empty returns the state of a host that has never synced.
func Empty() *State {
	return &State{InstalledSkills: []string{}}
}

// Record replaces the state with the result of a run finished at now.
func (s *State) Record(now time.Time, installed []string) {
	t := now.UTC()
	s.LastSyncTime = &t
	s.InstalledSkills = slices.Clone(installed)
	if s.InstalledSkills == nil {
		s.InstalledSkills = []string{}
	}
	slices.Sort(s.InstalledSkills)
}

// Store loads and saves State.
type Store interface {
	Load() (*State, error)
	Save(*State) error
}

// FileStore keeps State as JSON in a single file.
type FileStore struct {
	path string
}

// NewFileStore returns a store backed by path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the backing file.
func (s *FileStore) Path() string { return s.path }

// Load reads the state file. A missing file is an empty state. A file that
// does not decode is also reported as an empty state, with an error wrapping
// ErrCorrupt.
func (s *FileStore) Load() (*State, error) {
	// #nosec G304 - path is under the skillhub root
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return Empty(), nil
		}
		return Empty(), fmt.Errorf("failed to read state: %w", err)
	}

	st := Empty()
	if err := json.Unmarshal(data, st); err != nil {
		return Empty(), fmt.Errorf("%w: %s: %v", ErrCorrupt, s.path, err)
	}
	if st.InstalledSkills == nil {
		st.InstalledSkills = []string{}
	}
	return st, nil
}

// Save writes st to a temporary file next to the state file and renames it
// into place, so readers never see a half-written file.
func (s *FileStore) Save(st *State) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}

	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode state: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".state-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp state file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(append(data, '\n')); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write state: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write state: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("failed to replace state file: %w", err)
	}
	return nil
}

// MemoryStore keeps State in memory. Saved states are copied.
type MemoryStore struct {
	mu    sync.Mutex
	state *State
	// SaveErr, when set, is returned by Save.
	SaveErr error
}

// NewMemoryStore returns a store holding st, or an empty state when st is nil.
func NewMemoryStore(st *State) *MemoryStore {
	if st == nil {
		st = Empty()
	}
	return &MemoryStore{state: st.clone()}
}

func (m *MemoryStore) Load() (*State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.clone(), nil
}

func (m *MemoryStore) Save(st *State) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.state = st.clone()
	return nil
}

func (s *State) clone() *State {
	c := &State{InstalledSkills: slices.Clone(s.InstalledSkills)}
	if c.InstalledSkills == nil {
		c.InstalledSkills = []string{}
	}
	if s.LastSyncTime != nil {
		t := *s.LastSyncTime
		c.LastSyncTime = &t
	}
	return c
}
