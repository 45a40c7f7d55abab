package services

import (
	"errors"
	"slices"
	"strings"

	"placebook/models"
)

var (
	// ErrDuplicateURL is returned when adding a URL that is already listed.
	ErrDuplicateURL = errors.New("이미 목록에 있는 URL입니다")
	// ErrEmptyURL is returned when adding a blank URL.
	ErrEmptyURL = errors.New("url is empty")
)

// TargetList is the crawl list kept in list.json: crawled venues (with a
// title) and new targets (URL only), in file order.
type TargetList struct {
	items []models.Venue
}

// NewTargetList wraps the items read from the list file.
func NewTargetList(items []models.Venue) *TargetList {
	return &TargetList{items: slices.Clone(items)}
}

// Items returns every entry in order.
func (l *TargetList) Items() []models.Venue {
	return slices.Clone(l.items)
}

// Existing returns the crawled entries.
func (l *TargetList) Existing() []models.Venue {
	return l.filter(func(v models.Venue) bool { return v.Title != "" })
}

// Pending returns the entries that have not been crawled.
func (l *TargetList) Pending() []models.Venue {
	return l.filter(func(v models.Venue) bool { return v.Title == "" })
}

// Add appends a new target URL.
func (l *TargetList) Add(url string) error {
	url = strings.TrimSpace(url)
	if url == "" {
		return ErrEmptyURL
	}
	if l.index(url) >= 0 {
		return ErrDuplicateURL
	}
	l.items = append(l.items, models.Venue{URL: url})
	return nil
}

// Remove deletes the entry with the given URL, reporting whether one existed.
func (l *TargetList) Remove(url string) bool {
	i := l.index(strings.TrimSpace(url))
	if i < 0 {
		return false
	}
	l.items = slices.Delete(l.items, i, i+1)
	return true
}

// Merge replaces the entry whose URL matches v with v.
func (l *TargetList) Merge(v models.Venue) bool {
	i := l.index(v.URL)
	if i < 0 {
		return false
	}
	l.items[i] = v
	return true
}

// Rebuild applies a recrawl: crawled entries come first, in their previous
// order, replaced by their recrawled version when there is one; uncrawled
// targets follow. Entries whose recrawl failed keep their previous data.
func (l *TargetList) Rebuild(recrawled map[string]models.Venue) {
	items := make([]models.Venue, 0, len(l.items))
	for _, v := range l.Existing() {
		if nv, ok := recrawled[v.URL]; ok {
			v = nv
		}
		items = append(items, v)
	}
	l.items = append(items, l.Pending()...)
}

// DisplayText is how an entry is listed: "title - url", or the URL alone.
func DisplayText(v models.Venue) string {
	if v.Title != "" && v.Title != v.URL {
		return v.Title + " - " + v.URL
	}
	return v.URL
}

// URLs returns the URLs of the given entries.
func URLs(items []models.Venue) []string {
	urls := make([]string, 0, len(items))
	for _, v := range items {
		urls = append(urls, v.URL)
	}
	return urls
}

func (l *TargetList) index(url string) int {
	return slices.IndexFunc(l.items, func(v models.Venue) bool { return v.URL == url })
}

func (l *TargetList) filter(keep func(models.Venue) bool) []models.Venue {
	var out []models.Venue
	for _, v := range l.items {
		if keep(v) {
			out = append(out, v)
		}
	}
	return out
}
