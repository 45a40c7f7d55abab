package catalog

import (
	"fmt"

	"placebook/models"
)

// Session is the browser's application state: the write-once store, the
// category controls, the search text, the current filtered view and the
// modal. The active category and search text are read from here at filter
// time; nothing else duplicates them.
type Session struct {
	store    *Store
	registry *Registry
	picker   *Picker
	modal    Modal

	search  string
	results []models.Venue
	cards   CardList
	failed  bool
}

// NewSession creates an unloaded session.
func NewSession(picker *Picker) *Session {
	return &Session{
		store:  NewStore(),
		picker: picker,
	}
}

// Load stores the venues, builds the category controls and renders all cards.
func (s *Session) Load(venues []models.Venue) error {
	if err := s.store.Set(venues); err != nil {
		return fmt.Errorf("session: load: %w", err)
	}
	s.registry = NewRegistry(venues)
	s.refresh()
	return nil
}

// LoadFailed puts the card area into the load-failure state.
func (s *Session) LoadFailed() {
	s.failed = true
	s.cards = FailedCards()
}

// Loaded reports whether venues were stored.
func (s *Session) Loaded() bool {
	return s.store.Loaded()
}

// Failed reports whether loading failed.
func (s *Session) Failed() bool {
	return s.failed
}

// Registry returns the category controls, nil before load.
func (s *Session) Registry() *Registry {
	return s.registry
}

// Venues returns the full unfiltered catalog.
func (s *Session) Venues() []models.Venue {
	return s.store.All()
}

// Search returns the current search text.
func (s *Session) Search() string {
	return s.search
}

// SetSearch updates the search text and re-filters.
func (s *Session) SetSearch(text string) {
	s.search = text
	s.refresh()
}

// SelectCategory activates a category control and re-filters. Unknown
// categories are ignored.
func (s *Session) SelectCategory(value string) bool {
	if s.registry == nil || !s.registry.Select(value) {
		return false
	}
	s.refresh()
	return true
}

// NextCategory activates the following control and re-filters.
func (s *Session) NextCategory() string {
	if s.registry == nil {
		return AllCategories
	}
	v := s.registry.Next()
	s.refresh()
	return v
}

// PrevCategory activates the preceding control and re-filters.
func (s *Session) PrevCategory() string {
	if s.registry == nil {
		return AllCategories
	}
	v := s.registry.Prev()
	s.refresh()
	return v
}

// Query reads the filter input from the controls.
func (s *Session) Query() Query {
	q := Query{Category: AllCategories, Search: s.search}
	if s.registry != nil {
		q.Category = s.registry.Active()
	}
	return q
}

// Results returns the current filtered view.
func (s *Session) Results() []models.Venue {
	return s.results
}

// Cards returns the current card area.
func (s *Session) Cards() CardList {
	return s.cards
}

// OpenCard opens the modal for the i-th card of the current view.
func (s *Session) OpenCard(i int) bool {
	if i < 0 || i >= len(s.cards.Cards) {
		return false
	}
	s.modal.Open(s.cards.Cards[i].Venue)
	return true
}

// OpenVenue opens the modal for v.
func (s *Session) OpenVenue(v models.Venue) {
	s.modal.Open(v)
}

// CloseModal closes the modal; safe when already closed.
func (s *Session) CloseModal() {
	s.modal.Close()
}

// Modal exposes the modal state.
func (s *Session) Modal() *Modal {
	return &s.modal
}

// Pick chooses a random venue from the full catalog, not the filtered view.
func (s *Session) Pick() (models.Venue, error) {
	return s.picker.Pick(s.store.All())
}

// Picker returns the session's picker.
func (s *Session) Picker() *Picker {
	return s.picker
}

func (s *Session) refresh() {
	if !s.store.Loaded() {
		return
	}
	s.results = Filter(s.store.All(), s.Query())
	s.cards = RenderCards(s.results)
}
