package services

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"placebook/models"
	"placebook/utils"
)

var (
	bannerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	sectionStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("220"))
	valueStyle   = lipgloss.NewStyle().Bold(true)
	countStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
)

type InsightService struct {
	logger *utils.Logger
}

func NewInsightService(logger *utils.Logger) *InsightService {
	return &InsightService{logger: logger}
}

// Generate computes catalog statistics. Untitled entries are counted as
// pending crawl targets and otherwise ignored.
func (s *InsightService) Generate(items []models.Venue) *models.CatalogReport {
	report := &models.CatalogReport{
		VenuesByCategory: make(map[string]int),
		MissingFields:    make(map[string]int),
	}

	var reviewed []models.Venue
	for _, v := range items {
		if v.Title == "" {
			report.PendingTargets++
			continue
		}
		report.TotalVenues++

		if v.Category == "" {
			report.Uncategorized++
		} else {
			report.VenuesByCategory[v.Category]++
		}
		if reviewCount(v) > 0 {
			reviewed = append(reviewed, v)
		}

		for field, value := range map[string]string{
			"description":   v.Description,
			"address":       v.Address,
			"phone":         v.Phone,
			"businessHours": v.BusinessHours,
			"imageUrl":      v.ImageURL,
			"url":           v.URL,
		} {
			if value == "" {
				report.MissingFields[field]++
			}
		}
	}

	// Top 5 by visitor reviews
	sort.SliceStable(reviewed, func(i, j int) bool {
		return reviewCount(reviewed[i]) > reviewCount(reviewed[j])
	})
	if len(reviewed) > 5 {
		reviewed = reviewed[:5]
	}
	report.MostReviewed = reviewed

	s.logger.Debug("[insights] %d venues, %d pending, %d categories",
		report.TotalVenues, report.PendingTargets, len(report.VenuesByCategory))
	return report
}

func (s *InsightService) Print(w io.Writer, r *models.CatalogReport) {
	sep := strings.Repeat("═", 54)
	thin := strings.Repeat("─", 54)

	fmt.Fprintf(w, "\n%s\n", bannerStyle.Render(sep))
	fmt.Fprintf(w, "%s\n", bannerStyle.Render("  📊 CATALOG INSIGHTS"))
	fmt.Fprintf(w, "%s\n\n", bannerStyle.Render(sep))

	// Overview
	fmt.Fprintf(w, "%s\n", sectionStyle.Render("  Overview"))
	fmt.Fprintf(w, "  %s\n", thin)
	fmt.Fprintf(w, "  Venues in catalog  : %s\n", valueStyle.Render(strconv.Itoa(r.TotalVenues)))
	fmt.Fprintf(w, "  Pending targets    : %s\n", valueStyle.Render(strconv.Itoa(r.PendingTargets)))
	fmt.Fprintf(w, "  Without category   : %s\n", valueStyle.Render(strconv.Itoa(r.Uncategorized)))
	fmt.Fprintln(w)

	// Most reviewed
	fmt.Fprintf(w, "%s\n", sectionStyle.Render("  Top 5 Most Reviewed"))
	fmt.Fprintf(w, "  %s\n", thin)
	if len(r.MostReviewed) == 0 {
		fmt.Fprintf(w, "  No review counts found\n")
	} else {
		for i, v := range r.MostReviewed {
			fmt.Fprintf(w, "  %d. %-40s %s\n", i+1, truncate(v.Title, 38),
				countStyle.Render(v.VisitorReviews+" reviews"))
		}
	}
	fmt.Fprintln(w)

	// Venues by category
	fmt.Fprintf(w, "%s\n", sectionStyle.Render("  Venues by Category"))
	fmt.Fprintf(w, "  %s\n", thin)
	if len(r.VenuesByCategory) == 0 {
		fmt.Fprintf(w, "  No category data\n")
	} else {
		for _, cc := range sortedCounts(r.VenuesByCategory) {
			bar := strings.Repeat("█", cc.count)
			fmt.Fprintf(w, "  %-30s %s (%d)\n", truncate(cc.key, 28), bar, cc.count)
		}
	}
	fmt.Fprintln(w)

	// Missing fields
	if len(r.MissingFields) > 0 {
		fmt.Fprintf(w, "%s\n", sectionStyle.Render("  Missing Fields"))
		fmt.Fprintf(w, "  %s\n", thin)
		for _, cc := range sortedCounts(r.MissingFields) {
			fmt.Fprintf(w, "  %-30s %d\n", cc.key, cc.count)
		}
	}

	fmt.Fprintf(w, "\n%s\n\n", bannerStyle.Render(sep))
}

type keyCount struct {
	key   string
	count int
}

// sortedCounts orders a count map by count descending, then key.
func sortedCounts(m map[string]int) []keyCount {
	out := make([]keyCount, 0, len(m))
	for k, n := range m {
		out = append(out, keyCount{k, n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].count != out[j].count {
			return out[i].count > out[j].count
		}
		return out[i].key < out[j].key
	})
	return out
}

func reviewCount(v models.Venue) int {
	n, _ := strconv.Atoi(v.VisitorReviews)
	return n
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
