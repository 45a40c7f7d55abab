package catalog

import (
	"strings"

	"placebook/models"
)

const (
	noTitle       = "제목 없음"
	noDescription = "설명 없음"
	noInfo        = "정보 없음"

	detailPlaceholderImage = "https://via.placeholder.com/600x250.png?text=No+Image"

	// MapActionLabel is the label of the link to the venue's map page.
	MapActionLabel = "지도에서 보기"
)

// Detail is the full display of one venue, with fallbacks applied.
type Detail struct {
	ImageURL       string
	Title          string
	Category       string
	Description    string
	VisitorReviews string
	BlogReviews    string
	Address        string
	Phone          string
	BusinessHours  string
	// MapURL is empty when the venue has no url; the map action is hidden then.
	MapURL string
}

// ShowMap reports whether the map action is displayed.
func (d Detail) ShowMap() bool {
	return d.MapURL != ""
}

// NewDetail fills every display field of v, substituting the fallback text
// for absent values.
func NewDetail(v models.Venue) Detail {
	return Detail{
		ImageURL:       orDefault(v.ImageURL, detailPlaceholderImage),
		Title:          orDefault(v.Title, noTitle),
		Category:       orDefault(v.Category, OtherCategory),
		Description:    orDefault(v.Description, noDescription),
		VisitorReviews: orDefault(v.VisitorReviews, noInfo),
		BlogReviews:    orDefault(v.BlogReviews, noInfo),
		Address:        orDefault(v.Address, noInfo),
		Phone:          orDefault(v.Phone, noInfo),
		BusinessHours:  strings.ReplaceAll(orDefault(v.BusinessHours, noInfo), `\n`, " "),
		MapURL:         v.URL,
	}
}

// Modal is the detail overlay: Closed or Open with one venue's detail.
type Modal struct {
	open   bool
	detail Detail
}

// Open shows v, replacing whatever is displayed.
func (m *Modal) Open(v models.Venue) {
	m.detail = NewDetail(v)
	m.open = true
}

// Close hides the modal. Closing a closed modal is a no-op.
func (m *Modal) Close() {
	m.open = false
}

// IsOpen reports whether the modal is visible.
func (m *Modal) IsOpen() bool {
	return m.open
}

// Detail returns the content last opened.
func (m *Modal) Detail() Detail {
	return m.detail
}
