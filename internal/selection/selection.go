// Package selection keeps the identifiers the operator last picked, so other
// panels can pre-fill them. State lives for the process lifetime only.
package selection

import (
	"sort"
	"sync"
)

// Common selection keys.
const (
	AlertID   = "alert_id"
	TaskID    = "task_id"
	AssetID   = "asset_id"
	ModelKey  = "model_key"
	ReviewID  = "review_id"
	ReportID  = "report_id"
	AppID     = "app_id"
	UserID    = "user_id"
	OutcomeID = "outcome_id"
)

// Store is a concurrency-safe key/value map of current selections.
type Store struct {
	mu     sync.RWMutex
	values map[string]string
	last   string
}

// New returns an empty store.
func New() *Store {
	return &Store{values: make(map[string]string)}
}

// Set overwrites the selection for key. Empty values are ignored.
func (s *Store) Set(key, value string) {
	if key == "" || value == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	s.last = key
}

// Get returns the current selection for key.
func (s *Store) Get(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok
}

// Last returns the most recently set key and value.
func (s *Store) Last() (string, string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.last == "" {
		return "", "", false
	}
	return s.last, s.values[s.last], true
}

// Snapshot returns a copy of all selections.
func (s *Store) Snapshot() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]string, len(s.values))
	for k, v := range s.values {
		out[k] = v
	}
	return out
}

// Keys returns the selected keys in sorted order.
func (s *Store) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.values))
	for k := range s.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
