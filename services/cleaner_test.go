package services

import (
	"errors"
	"testing"
	"time"

	"placebook/models"
	"placebook/utils"
)

func newTestLogger() *utils.Logger { return utils.NewNopLogger() }

func TestCleanerParseCount(t *testing.T) {
	c := NewCleaner(newTestLogger())

	tests := []struct {
		raw  string
		want string
	}{
		{"방문자 리뷰 1,234", "1234"},
		{"블로그 리뷰 56", "56"},
		{"리뷰 007", "7"},
		{"", ""},
		{"리뷰", ""},
		{"999+", "999"},
	}

	for _, tt := range tests {
		got := c.parseCount(tt.raw)
		if got != tt.want {
			t.Errorf("parseCount(%q) = %q; want %q", tt.raw, got, tt.want)
		}
	}
}

func TestCleanerCleanOne(t *testing.T) {
	c := NewCleaner(newTestLogger())
	v, err := c.CleanOne(&models.RawVenue{
		Title:          "  을지로   골뱅이 ",
		VisitorReviews: "방문자 리뷰 1,234",
		BusinessHours:  `영업 중\n23:00에 영업 종료`,
		URL:            " https://m.place/1 ",
	})
	if err != nil {
		t.Fatalf("CleanOne: %v", err)
	}
	if v.Title != "을지로 골뱅이" {
		t.Errorf("Title: got %q", v.Title)
	}
	if v.VisitorReviews != "1234" {
		t.Errorf("VisitorReviews: got %q", v.VisitorReviews)
	}
	if v.BusinessHours != "영업 중 23:00에 영업 종료" {
		t.Errorf("BusinessHours: got %q", v.BusinessHours)
	}
	if v.URL != "https://m.place/1" {
		t.Errorf("URL: got %q", v.URL)
	}
}

func TestCleanerCleanOneRequiresTitle(t *testing.T) {
	c := NewCleaner(newTestLogger())
	if _, err := c.CleanOne(&models.RawVenue{Title: "   ", URL: "u"}); !errors.Is(err, models.ErrNoTitle) {
		t.Errorf("expected ErrNoTitle, got %v", err)
	}
}

func TestCleanerDropsEmptyURL(t *testing.T) {
	c := NewCleaner(newTestLogger())
	raw := []*models.RawVenue{
		{Title: "No URL", URL: "", ScrapedAt: time.Now()},
		{Title: "Has URL", URL: "https://m.place/1", ScrapedAt: time.Now()},
	}

	cleaned := c.Clean(raw)
	if len(cleaned) != 1 {
		t.Errorf("expected 1 venue after dropping empty URL, got %d", len(cleaned))
	}
}

func TestCleanerDeduplicatesURL(t *testing.T) {
	c := NewCleaner(newTestLogger())
	raw := []*models.RawVenue{
		{Title: "A", URL: "https://m.place/1", ScrapedAt: time.Now()},
		{Title: "B", URL: "https://m.place/1", ScrapedAt: time.Now()},
	}

	cleaned := c.Clean(raw)
	if len(cleaned) != 1 {
		t.Errorf("expected 1 venue after deduplication, got %d", len(cleaned))
	}
}
