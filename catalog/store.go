// Package catalog holds the venue browser's state and its pure operations:
// loading list.json, filtering, category controls, card and detail rendering,
// the random pick and scroll affordances.
package catalog

import (
	"errors"
	"slices"
	"sync"

	"placebook/models"
)

// ErrAlreadyLoaded is returned when a Store is assigned a second time.
var ErrAlreadyLoaded = errors.New("catalog: store already loaded")

// Store is the single write-once sequence of venues for a session.
type Store struct {
	mu     sync.RWMutex
	venues []models.Venue
	loaded bool
}

// NewStore creates an empty, unloaded Store.
func NewStore() *Store {
	return &Store{}
}

// Set assigns the venues. It succeeds exactly once.
func (s *Store) Set(venues []models.Venue) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loaded {
		return ErrAlreadyLoaded
	}
	s.venues = slices.Clone(venues)
	s.loaded = true
	return nil
}

// All returns a copy of the stored venues in load order.
func (s *Store) All() []models.Venue {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.venues)
}

// Len returns the number of stored venues.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.venues)
}

// Loaded reports whether Set has succeeded.
func (s *Store) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}
