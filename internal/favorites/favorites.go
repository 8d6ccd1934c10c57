// Package favorites persists the operator's starred actions as a JSON array
// of action keys. Storage problems never surface to the UI.
package favorites

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/noelruault/lazyops/internal/logger"
)

// FileName is the fixed storage key under the config directory.
const FileName = "favorites.json"

// Store is a favorites list backed by a file.
type Store struct {
	mu    sync.Mutex
	path  string
	items []string
	log   *logger.Logger
}

// DefaultPath returns ~/.lazyops/favorites.json.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".lazyops", FileName), nil
}

// Open loads the list at path. Read or decode failures start an empty list.
func Open(path string, log *logger.Logger) *Store {
	if log == nil {
		log = logger.Nop()
	}
	s := &Store{path: path, log: log}
	s.items = s.load()
	return s
}

func (s *Store) load() []string {
	if s.path == "" {
		return nil
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.log.Debug("favorites unreadable", "path", s.path, "error", err)
		}
		return nil
	}
	var items []string
	if err := json.Unmarshal(data, &items); err != nil {
		s.log.Debug("favorites corrupt", "path", s.path, "error", err)
		return nil
	}
	return dedupe(items)
}

func (s *Store) save() {
	if s.path == "" {
		return
	}
	data, err := json.Marshal(s.items)
	if err != nil {
		s.log.Debug("favorites encode failed", "error", err)
		return
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		s.log.Debug("favorites dir failed", "path", s.path, "error", err)
		return
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		s.log.Debug("favorites write failed", "path", s.path, "error", err)
	}
}

// List returns the favorites in the order they were added.
func (s *Store) List() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.items...)
}

// Has reports whether key is a favorite.
func (s *Store) Has(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return indexOf(s.items, key) >= 0
}

// Toggle adds key if absent or removes it if present, then persists. It
// returns whether key is now a favorite.
func (s *Store) Toggle(key string) bool {
	if key == "" {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	added := true
	if i := indexOf(s.items, key); i >= 0 {
		s.items = append(s.items[:i:i], s.items[i+1:]...)
		added = false
	} else {
		s.items = append(s.items, key)
	}
	s.save()
	return added
}

func indexOf(items []string, key string) int {
	for i, it := range items {
		if it == key {
			return i
		}
	}
	return -1
}

func dedupe(items []string) []string {
	seen := make(map[string]bool, len(items))
	out := items[:0]
	for _, it := range items {
		if it == "" || seen[it] {
			continue
		}
		seen[it] = true
		out = append(out, it)
	}
	return out
}
