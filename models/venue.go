package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
	"time"
)

// Venue is one catalog record as stored in list.json. Every field is optional
// on the wire; a record without Title is a crawl target that has not been
// crawled yet and is never shown in the catalog.
type Venue struct {
	Title          string
	Category       string
	ImageURL       string
	Description    string
	VisitorReviews string
	BlogReviews    string
	Address        string
	Phone          string
	BusinessHours  string
	URL            string
}

// venueJSON is the on-disk shape. Review counts are kept raw so that numeric
// counts stay JSON numbers.
type venueJSON struct {
	Title          string          `json:"title,omitempty"`
	Category       string          `json:"category,omitempty"`
	ImageURL       string          `json:"imageUrl,omitempty"`
	Description    string          `json:"description,omitempty"`
	VisitorReviews json.RawMessage `json:"visitorReviews,omitempty"`
	BlogReviews    json.RawMessage `json:"blogReviews,omitempty"`
	Address        string          `json:"address,omitempty"`
	Phone          string          `json:"phone,omitempty"`
	BusinessHours  string          `json:"businessHours,omitempty"`
	URL            string          `json:"url,omitempty"`
}

// UnmarshalJSON accepts loosely typed objects: any field may be a string,
// number, boolean or null. Values that would be falsy in the browser (null,
// false, 0, "") decode to the empty string.
func (v *Venue) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	*v = Venue{
		Title:          looseString(fields["title"]),
		Category:       looseString(fields["category"]),
		ImageURL:       looseString(fields["imageUrl"]),
		Description:    looseString(fields["description"]),
		VisitorReviews: looseString(fields["visitorReviews"]),
		BlogReviews:    looseString(fields["blogReviews"]),
		Address:        looseString(fields["address"]),
		Phone:          looseString(fields["phone"]),
		BusinessHours:  looseString(fields["businessHours"]),
		URL:            looseString(fields["url"]),
	}
	return nil
}

// MarshalJSON writes the list.json shape, emitting integer review counts as
// JSON numbers.
func (v Venue) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	err := enc.Encode(venueJSON{
		Title:          v.Title,
		Category:       v.Category,
		ImageURL:       v.ImageURL,
		Description:    v.Description,
		VisitorReviews: countJSON(v.VisitorReviews),
		BlogReviews:    countJSON(v.BlogReviews),
		Address:        v.Address,
		Phone:          v.Phone,
		BusinessHours:  v.BusinessHours,
		URL:            v.URL,
	})
	return bytes.TrimRight(buf.Bytes(), "\n"), err
}

func looseString(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return ""
	}
	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return ""
		}
		return s
	case 't':
		return "true"
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		f, err := strconv.ParseFloat(string(raw), 64)
		if err != nil || f == 0 {
			return ""
		}
		return strconv.FormatFloat(f, 'f', -1, 64)
	default:
		// null, false, objects and arrays carry nothing displayable
		return ""
	}
}

func countJSON(s string) json.RawMessage {
	if s == "" {
		return nil
	}
	// Only canonical integers become numbers; "007" or "+5" are not valid JSON.
	if n, err := strconv.Atoi(s); err == nil && strconv.Itoa(n) == s {
		return json.RawMessage(s)
	}
	b, _ := json.Marshal(s)
	return b
}

// RawVenue holds unprocessed fields exactly as read from a place page.
type RawVenue struct {
	Title          string
	Category       string
	VisitorReviews string
	BlogReviews    string
	Description    string
	Address        string
	BusinessHours  string
	Phone          string
	ImageURL       string
	URL            string
	ScrapedAt      time.Time
}

// CrawlResult is the outcome of crawling one target URL.
type CrawlResult struct {
	URL       string
	Raw       *RawVenue
	Venue     *Venue
	Err       error
	CrawledAt time.Time
}

// OK reports whether the crawl produced a venue.
func (r *CrawlResult) OK() bool { return r.Err == nil && r.Venue != nil }

// CatalogReport holds the computed statistics over the catalog.
type CatalogReport struct {
	TotalVenues      int
	PendingTargets   int
	Uncategorized    int
	VenuesByCategory map[string]int
	MostReviewed     []Venue
	MissingFields    map[string]int
}

// ErrNoTitle marks a crawled page on which the required title was not found.
var ErrNoTitle = errors.New("필수 정보(title)를 찾지 못했습니다.")
