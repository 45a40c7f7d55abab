package storage

import "placebook/models"

// ListReadWriter is the crawl list file backing the catalog.
type ListReadWriter interface {
	Load() ([]models.Venue, error)
	Save(items []models.Venue) error
}

// VenueWriter is the interface any venue mirror must satisfy.
type VenueWriter interface {
	Write(venues []models.Venue) error
	Close() error
}

// ReportWriter is the interface for persisting per-URL crawl outcomes.
type ReportWriter interface {
	WriteResult(r *models.CrawlResult) error
	Close() error
}
