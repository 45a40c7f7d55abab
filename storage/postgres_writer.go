package storage

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"

	"placebook/models"
)

// PostgresWriter mirrors the catalog's venues into PostgreSQL.
type PostgresWriter struct {
	db *sql.DB
}

// NewPostgresWriter opens a connection to PostgreSQL, runs schema migrations,
// and returns a ready-to-use PostgresWriter.
func NewPostgresWriter(dsn string) (*PostgresWriter, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	for i := 0; i < 10; i++ {
		if err = db.Ping(); err == nil {
			break
		}
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: ping failed after retries: %w", err)
	}

	pw := &PostgresWriter{db: db}
	if err := pw.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: migrate: %w", err)
	}

	return pw, nil
}

func (pw *PostgresWriter) migrate() error {
	_, err := pw.db.Exec(`
		CREATE TABLE IF NOT EXISTS venues (
			id              SERIAL PRIMARY KEY,
			title           TEXT        NOT NULL,
			category        TEXT        NOT NULL DEFAULT '',
			image_url       TEXT        NOT NULL DEFAULT '',
			description     TEXT        NOT NULL DEFAULT '',
			visitor_reviews TEXT        NOT NULL DEFAULT '',
			blog_reviews    TEXT        NOT NULL DEFAULT '',
			address         TEXT        NOT NULL DEFAULT '',
			phone           TEXT        NOT NULL DEFAULT '',
			business_hours  TEXT        NOT NULL DEFAULT '',
			url             TEXT        UNIQUE NOT NULL,
			updated_at      TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);

		CREATE INDEX IF NOT EXISTS idx_venues_category ON venues(category);
	`)
	return err
}

// Write upserts the titled venues by URL in batches. Crawl targets without a
// title are skipped.
func (pw *PostgresWriter) Write(venues []models.Venue) error {
	rows := make([]models.Venue, 0, len(venues))
	for _, v := range venues {
		if v.Title != "" && v.URL != "" {
			rows = append(rows, v)
		}
	}
	if len(rows) == 0 {
		return nil
	}

	const batchSize = 50
	for i := 0; i < len(rows); i += batchSize {
		end := min(i+batchSize, len(rows))
		if err := pw.upsertBatch(rows[i:end]); err != nil {
			return err
		}
	}
	return nil
}

const venueColumns = 10

func (pw *PostgresWriter) upsertBatch(batch []models.Venue) error {
	query, args := buildUpsert(batch)
	if _, err := pw.db.Exec(query, args...); err != nil {
		return fmt.Errorf("postgres: upsert: %w", err)
	}
	return nil
}

func buildUpsert(batch []models.Venue) (string, []interface{}) {
	valueStrings := make([]string, 0, len(batch))
	valueArgs := make([]interface{}, 0, len(batch)*venueColumns)

	for idx, v := range batch {
		base := idx * venueColumns
		placeholders := make([]string, venueColumns)
		for c := range placeholders {
			placeholders[c] = fmt.Sprintf("$%d", base+c+1)
		}
		valueStrings = append(valueStrings, "("+strings.Join(placeholders, ",")+")")
		valueArgs = append(valueArgs,
			v.Title, v.Category, v.ImageURL, v.Description, v.VisitorReviews,
			v.BlogReviews, v.Address, v.Phone, v.BusinessHours, v.URL)
	}

	query := fmt.Sprintf(`
		INSERT INTO venues (title, category, image_url, description, visitor_reviews,
			blog_reviews, address, phone, business_hours, url)
		VALUES %s
		ON CONFLICT (url) DO UPDATE SET
			title = EXCLUDED.title,
			category = EXCLUDED.category,
			image_url = EXCLUDED.image_url,
			description = EXCLUDED.description,
			visitor_reviews = EXCLUDED.visitor_reviews,
			blog_reviews = EXCLUDED.blog_reviews,
			address = EXCLUDED.address,
			phone = EXCLUDED.phone,
			business_hours = EXCLUDED.business_hours,
			updated_at = NOW()
	`, strings.Join(valueStrings, ","))
	return query, valueArgs
}

func (pw *PostgresWriter) Close() error {
	return pw.db.Close()
}

// FetchAll retrieves all stored venues for the stats report.
func (pw *PostgresWriter) FetchAll() ([]models.Venue, error) {
	rows, err := pw.db.Query(`
		SELECT title, category, image_url, description, visitor_reviews,
			blog_reviews, address, phone, business_hours, url
		FROM venues
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("postgres: fetch all: %w", err)
	}
	defer rows.Close()

	var venues []models.Venue
	for rows.Next() {
		var v models.Venue
		if err := rows.Scan(
			&v.Title, &v.Category, &v.ImageURL, &v.Description, &v.VisitorReviews,
			&v.BlogReviews, &v.Address, &v.Phone, &v.BusinessHours, &v.URL,
		); err != nil {
			return nil, fmt.Errorf("postgres: scan row: %w", err)
		}
		venues = append(venues, v)
	}
	return venues, rows.Err()
}
