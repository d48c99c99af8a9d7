package navigator

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/triz-financeiro/backend/internal/types"
)

// Store persists the month cache as a JSON file between runs.
type Store struct {
	path string
}

// State is everything the store persists: the cached months and the month
// the navigator last pointed at.
type State struct {
	Current types.Month             `json:"current"`
	Months  map[types.Month][]Entry `json:"months"`
}

// NewStore returns a store writing to the given file.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load reads the persisted state. A missing file is an empty cache.
func (s *Store) Load() (State, error) {
	empty := State{Months: make(map[types.Month][]Entry)}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return empty, nil
		}

		return State{}, err
	}

	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		return State{}, err
	}

	if state.Months == nil {
		state.Months = make(map[types.Month][]Entry)
	}

	return state, nil
}

// Save writes the state, atomically replacing the previous file.
func (s *Store) Save(state State) error {
	data, err := json.Marshal(state)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".cache-*")
	if err != nil {
		return err
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}

	return os.Rename(tmp.Name(), s.path)
}
