package naver

import (
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"placebook/models"
)

// Selectors of the place detail document rendered inside #entryIframe.
const (
	entryFrameSelector     = "#entryIframe"
	titleSelector          = ".GHAhO"
	categorySelector       = ".lnJFt"
	visitorReviewsSelector = `a[href*="review/visitor"]`
	blogReviewsSelector    = `a[href*="review/ugc"]`
	descriptionSelector    = ".XtBbS"
	addressSelector        = ".LDgIH"
	hoursSelector          = ".A_cdD"
	phoneSelector          = ".xlx7Q"
	imageSelector          = ".fNygA img"
)

// ParsePlace extracts the raw venue fields from a place detail document.
// placeURL is recorded as the venue's url. A document without a title is
// rejected with models.ErrNoTitle.
func ParsePlace(html, placeURL string) (*models.RawVenue, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("naver: parse document: %w", err)
	}

	raw := &models.RawVenue{
		Title:          text(doc, titleSelector),
		Category:       text(doc, categorySelector),
		VisitorReviews: text(doc, visitorReviewsSelector),
		BlogReviews:    text(doc, blogReviewsSelector),
		Description:    text(doc, descriptionSelector),
		Address:        text(doc, addressSelector),
		BusinessHours:  text(doc, hoursSelector),
		Phone:          text(doc, phoneSelector),
		ImageURL:       attr(doc, imageSelector, "src"),
		URL:            placeURL,
		ScrapedAt:      time.Now(),
	}
	if raw.Title == "" {
		return nil, models.ErrNoTitle
	}
	return raw, nil
}

func text(doc *goquery.Document, selector string) string {
	return strings.TrimSpace(doc.Find(selector).First().Text())
}

func attr(doc *goquery.Document, selector, name string) string {
	v, _ := doc.Find(selector).First().Attr(name)
	return strings.TrimSpace(v)
}
