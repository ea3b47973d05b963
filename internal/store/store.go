package store

import (
	"errors"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/abhisek/roadtrack/internal/roadmap"
)

// ErrUnknownKey is returned by SetActive for a key that holds no roadmap.
var ErrUnknownKey = errors.New("no roadmap stored under key")

// Store holds the roadmaps loaded during a session and tracks which one is
// active. Stored values are never mutated in place: readers receive copies
// and UpdateItem swaps in a new value.
type Store struct {
	mu        sync.RWMutex
	roadmaps  map[string]*roadmap.Roadmap
	activeKey string
}

// New creates an empty Store.
func New() *Store {
	return &Store{roadmaps: make(map[string]*roadmap.Roadmap)}
}

// NewUploadKey returns a fresh key for a roadmap loaded from a file.
func NewUploadKey() string {
	return "file-" + uuid.NewString()
}

// Put stores rm under key, replacing whatever was there. The roadmap is not
// validated; that is the loader's job.
func (s *Store) Put(key string, rm *roadmap.Roadmap) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.roadmaps[key] = rm.Clone()
}

// SetActive makes the roadmap under key the active one.
// The active key is left unchanged when key holds no roadmap.
func (s *Store) SetActive(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.roadmaps[key]; !ok {
		return ErrUnknownKey
	}
	s.activeKey = key
	return nil
}

// ActiveKey returns the active key, or "" when none is set.
func (s *Store) ActiveKey() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.activeKey
}

// Active returns a copy of the active roadmap.
func (s *Store) Active() (*roadmap.Roadmap, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rm, ok := s.active()
	if !ok {
		return nil, false
	}
	return rm.Clone(), true
}

// Get returns a copy of the roadmap stored under key.
func (s *Store) Get(key string) (*roadmap.Roadmap, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rm, ok := s.roadmaps[key]
	if !ok {
		return nil, false
	}
	return rm.Clone(), true
}

// Has reports whether a roadmap is stored under key.
func (s *Store) Has(key string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.roadmaps[key]
	return ok
}

// Keys returns the stored keys in lexical order.
func (s *Store) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.roadmaps))
	for k := range s.roadmaps {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// UpdateItem replaces the first item of the active roadmap whose ID matches
// item.ID with item. It does nothing when no roadmap is active or no item
// matches, and reports whether a replacement was made.
func (s *Store) UpdateItem(item roadmap.Item) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	rm, ok := s.active()
	if !ok {
		return false
	}
	next, replaced := rm.WithItem(item)
	if !replaced {
		return false
	}
	s.roadmaps[s.activeKey] = next
	return true
}

func (s *Store) active() (*roadmap.Roadmap, bool) {
	if s.activeKey == "" {
		return nil, false
	}
	rm, ok := s.roadmaps[s.activeKey]
	return rm, ok && rm != nil
}
