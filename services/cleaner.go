package services

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"placebook/models"
	"placebook/utils"
)

// countRegexp captures the first run of digits in a review link text
var countRegexp = regexp.MustCompile(`\d+`)

// Cleaner transforms RawVenues into catalog Venues.
type Cleaner struct {
	logger *utils.Logger
}

// NewCleaner creates a Cleaner with the given logger.
func NewCleaner(logger *utils.Logger) *Cleaner {
	return &Cleaner{logger: logger}
}

// Clean processes raw venues, dropping records without a URL or title and
// duplicate URLs.
func (c *Cleaner) Clean(raw []*models.RawVenue) []models.Venue {
	seen := make(map[string]struct{})
	result := make([]models.Venue, 0, len(raw))

	for _, r := range raw {
		url := strings.TrimSpace(r.URL)
		if url == "" {
			c.logger.Warn("[cleaner] Dropping venue with empty URL: %s", r.Title)
			continue
		}

		if _, dup := seen[url]; dup {
			c.logger.Debug("[cleaner] Duplicate URL skipped: %s", url)
			continue
		}

		v, err := c.CleanOne(r)
		if err != nil {
			c.logger.Warn("[cleaner] Dropping %s: %v", url, err)
			continue
		}
		seen[url] = struct{}{}
		result = append(result, v)
	}

	c.logger.Info("[cleaner] Cleaned %d → %d venues (dropped %d)",
		len(raw), len(result), len(raw)-len(result))
	return result
}

// CleanOne converts a single raw venue. It fails with models.ErrNoTitle when
// the title is blank.
func (c *Cleaner) CleanOne(r *models.RawVenue) (models.Venue, error) {
	title := normaliseText(r.Title)
	if title == "" {
		return models.Venue{}, models.ErrNoTitle
	}
	return models.Venue{
		Title:          title,
		Category:       normaliseText(r.Category),
		ImageURL:       strings.TrimSpace(r.ImageURL),
		Description:    strings.TrimSpace(r.Description),
		VisitorReviews: c.parseCount(r.VisitorReviews),
		BlogReviews:    c.parseCount(r.BlogReviews),
		Address:        normaliseText(r.Address),
		Phone:          normaliseText(r.Phone),
		BusinessHours:  normaliseHours(r.BusinessHours),
		URL:            strings.TrimSpace(r.URL),
	}, nil
}

// parseCount extracts the first integer from a review link text, ignoring
// thousands separators. Examples:
//
//	"방문자 리뷰 1,234" → "1234"
//	"블로그 리뷰 56"     → "56"
//	"리뷰"             → ""
func (c *Cleaner) parseCount(raw string) string {
	match := countRegexp.FindString(strings.ReplaceAll(raw, ",", ""))
	if match == "" {
		return ""
	}
	n, err := strconv.Atoi(match)
	if err != nil {
		c.logger.Debug("[cleaner] Unparseable count %q: %v", raw, err)
		return ""
	}
	return strconv.Itoa(n)
}

// normaliseText strips leading/trailing whitespace and collapses internal whitespace.
func normaliseText(s string) string {
	s = strings.TrimSpace(s)
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return unicode.IsSpace(r)
	})
	return strings.Join(fields, " ")
}

// normaliseHours replaces literal "\n" sequences left in the hours text.
func normaliseHours(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(s, `\n`, " "))
}
