package mapping

import (
	"encoding/json"
	"os"
	"sync"

	"issuebot/model"
)

// Store persists channel-to-repository mappings as an ordered JSON list in a
// flat file. The whole list is rewritten on every mutation; this assumes a
// single writer (one bot process owning the file).
type Store struct {
	mu    sync.Mutex
	path  string
	pairs []model.RepoMapping
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load reads the mapping file. A missing file is initialized to an empty
// list.
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.pairs = []model.RepoMapping{}
			return s.save()
		}
		return err
	}

	var pairs []model.RepoMapping
	if err := json.Unmarshal(data, &pairs); err != nil {
		return err
	}
	s.pairs = pairs
	return nil
}

// Add appends the mapping and persists the list. Adding a mapping that is
// already present (exact triple) is a no-op; the first return value reports
// whether anything was added.
func (s *Store) Add(m model.RepoMapping) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range s.pairs {
		if p == m {
			return false, nil
		}
	}
	s.pairs = append(s.pairs, m)
	return true, s.save()
}

// Remove deletes the mapping (exact triple) and persists the list. The first
// return value reports whether the mapping existed.
func (s *Store) Remove(m model.RepoMapping) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, p := range s.pairs {
		if p == m {
			s.pairs = append(s.pairs[:i], s.pairs[i+1:]...)
			return true, s.save()
		}
	}
	return false, s.save()
}

// ListChannel returns every mapping registered for the channel, in insertion
// order.
func (s *Store) ListChannel(channelID string) []model.RepoMapping {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []model.RepoMapping
	for _, p := range s.pairs {
		if p.ChannelID == channelID {
			out = append(out, p)
		}
	}
	return out
}

// First returns the first mapping registered for the channel. When several
// repositories are mapped to one channel, issue submission uses this one.
func (s *Store) First(channelID string) (model.RepoMapping, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range s.pairs {
		if p.ChannelID == channelID {
			return p, true
		}
	}
	return model.RepoMapping{}, false
}

func (s *Store) save() error {
	data, err := json.MarshalIndent(s.pairs, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0644)
}
