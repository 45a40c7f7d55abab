package catalog

import (
	"strings"

	"placebook/models"
)

// AllCategories is the sentinel category that disables category filtering.
const AllCategories = "전체"

// Query is the filter input read from the controls at filter time.
type Query struct {
	Category string
	Search   string
}

// Filter returns the venues matching q in source order. The category must
// match exactly; the search text is a case-insensitive title substring.
// venues is never modified.
func Filter(venues []models.Venue, q Query) []models.Venue {
	category := q.Category
	if category == "" {
		category = AllCategories
	}
	search := strings.ToLower(q.Search)

	out := make([]models.Venue, 0, len(venues))
	for _, v := range venues {
		if !matchCategory(v, category) || !matchSearch(v, search) {
			continue
		}
		out = append(out, v)
	}
	return out
}

func matchCategory(v models.Venue, category string) bool {
	return category == AllCategories || v.Category == category
}

func matchSearch(v models.Venue, search string) bool {
	return search == "" || strings.Contains(strings.ToLower(v.Title), search)
}
