package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"placebook/models"
	"placebook/utils"
)

// ListStore reads and writes the list.json crawl list.
type ListStore struct {
	path   string
	logger *utils.Logger
}

// NewListStore creates a ListStore for the file at path.
func NewListStore(path string, logger *utils.Logger) *ListStore {
	return &ListStore{path: path, logger: logger}
}

// Path returns the backing file path.
func (s *ListStore) Path() string {
	return s.path
}

// Load reads every entry of the list. A missing file is an empty list.
// Entries that are not JSON objects are skipped.
func (s *ListStore) Load() ([]models.Venue, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("list: read %q: %w", s.path, err)
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("list: decode %q: %w", s.path, err)
	}

	items := make([]models.Venue, 0, len(raw))
	for i, r := range raw {
		var v models.Venue
		if err := json.Unmarshal(r, &v); err != nil {
			s.logger.Warn("[list] Skipping malformed entry %d: %v", i, err)
			continue
		}
		items = append(items, v)
	}
	return items, nil
}

// Save replaces the list file atomically, pretty-printed with two-space
// indentation and unescaped non-ASCII text.
func (s *ListStore) Save(items []models.Venue) error {
	if items == nil {
		items = []models.Venue{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(items); err != nil {
		return fmt.Errorf("list: encode: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("list: create dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".list-*.json")
	if err != nil {
		return fmt.Errorf("list: create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("list: write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("list: close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("list: replace %q: %w", s.path, err)
	}
	s.logger.Debug("[list] Saved %d entries to %s", len(items), s.path)
	return nil
}
