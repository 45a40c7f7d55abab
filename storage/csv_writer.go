package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"placebook/models"
)

// CSVWriter writes one row per crawl outcome to a CSV report.
// It is safe for concurrent use.
type CSVWriter struct {
	mu     sync.Mutex
	file   *os.File
	writer *csv.Writer
}

// NewCSVWriter creates (or truncates) the CSV file at the given path and
// writes the header row. Intermediate directories are created automatically.
func NewCSVWriter(path string) (*CSVWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("csv: create output dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("csv: create file %q: %w", path, err)
	}

	w := csv.NewWriter(f)

	// Write header
	if err := w.Write([]string{
		"status", "url", "title", "category", "visitor_reviews", "blog_reviews", "error", "crawled_at",
	}); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("csv: write header: %w", err)
	}
	w.Flush()

	return &CSVWriter{file: f, writer: w}, nil
}

// WriteResult appends one crawl outcome and flushes it.
func (c *CSVWriter) WriteResult(r *models.CrawlResult) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	row := []string{"ok", r.URL, "", "", "", "", "", r.CrawledAt.Format(time.RFC3339)}
	if r.Venue != nil {
		row[2] = r.Venue.Title
		row[3] = r.Venue.Category
		row[4] = r.Venue.VisitorReviews
		row[5] = r.Venue.BlogReviews
	}
	if r.Err != nil {
		row[0] = "failed"
		row[6] = r.Err.Error()
	}
	if err := c.writer.Write(row); err != nil {
		return fmt.Errorf("csv: write row: %w", err)
	}

	c.writer.Flush()
	return c.writer.Error()
}

// Close flushes and closes the underlying file.
func (c *CSVWriter) Close() error {
	c.writer.Flush()
	return c.file.Close()
}
