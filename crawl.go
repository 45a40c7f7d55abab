package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"placebook/models"
	"placebook/scraper/naver"
	"placebook/services"
	"placebook/storage"
	"placebook/utils"
)

func (a *app) crawlCmd() *cobra.Command {
	var recrawl bool
	cmd := &cobra.Command{
		Use:   "crawl",
		Short: "Crawl new targets in the list (or every place with --recrawl)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.crawl(cmd.Context(), recrawl)
		},
	}
	cmd.Flags().BoolVar(&recrawl, "recrawl", false, "crawl every already crawled place again")
	return cmd
}

func (a *app) crawl(ctx context.Context, recrawl bool) error {
	store := a.listStore()
	items, err := store.Load()
	if err != nil {
		return err
	}
	targets := services.NewTargetList(items)

	batch := targets.Pending()
	if recrawl {
		batch = targets.Existing()
	}
	if len(batch) == 0 {
		a.logger.Info("[crawl] Nothing to crawl in %s", store.Path())
		return nil
	}
	a.logger.Info("[crawl] %d targets — concurrency: %d | rate: %dms | retries: %d",
		len(batch), a.cfg.MaxConcurrency, a.cfg.RateLimitMs, a.cfg.MaxRetries)

	report, err := storage.NewCSVWriter(a.cfg.ReportCSVPath)
	if err != nil {
		return err
	}
	defer report.Close()

	run := &crawlRun{
		list:    store,
		report:  report,
		cleaner: services.NewCleaner(a.logger),
		logger:  a.logger,
		recrawl: recrawl,
	}
	scraper := naver.New(a.cfg, a.logger)
	sum, err := run.consume(targets, scraper.Crawl(ctx, services.URLs(batch)))
	if err != nil {
		return err
	}

	fmt.Println(sum)
	fmt.Printf("  Report → %s | List → %s\n", a.cfg.ReportCSVPath, store.Path())

	if a.cfg.PostgresEnabled {
		a.mirror(targets.Existing())
	}
	return ctx.Err()
}

// crawlRun turns crawl results into list updates and report rows.
type crawlRun struct {
	list    storage.ListReadWriter
	report  storage.ReportWriter
	cleaner *services.Cleaner
	logger  *utils.Logger
	recrawl bool
}

type crawlSummary struct {
	succeeded int
	failed    int
}

// String reports the results actually received; duplicates skipped by the
// scraper and targets cut off by cancellation are not counted.
func (s crawlSummary) String() string {
	return fmt.Sprintf("총 %d개 중 %d개 성공, %d개 실패", s.succeeded+s.failed, s.succeeded, s.failed)
}

// consume drains results. New targets are merged and the list saved after
// every success; a recrawl rebuilds and saves the list once at the end so
// places whose recrawl failed keep their previous data.
func (c *crawlRun) consume(targets *services.TargetList, results <-chan *models.CrawlResult) (crawlSummary, error) {
	var sum crawlSummary
	recrawled := make(map[string]models.Venue)

	for r := range results {
		if r.Err == nil && r.Raw != nil {
			v, err := c.cleaner.CleanOne(r.Raw)
			if err != nil {
				r.Err = err
			} else {
				r.Venue = &v
			}
		}
		if err := c.report.WriteResult(r); err != nil {
			c.logger.Warn("[crawl] Report write failed: %v", err)
		}

		if !r.OK() {
			sum.failed++
			c.logger.Warn("[실패] %s %v", r.URL, r.Err)
			continue
		}
		sum.succeeded++
		c.logger.Info("[성공] %s (%s)", r.Venue.Title, r.URL)

		if c.recrawl {
			recrawled[r.URL] = *r.Venue
			continue
		}
		targets.Merge(*r.Venue)
		if err := c.list.Save(targets.Items()); err != nil {
			return sum, err
		}
	}

	if c.recrawl {
		targets.Rebuild(recrawled)
		if err := c.list.Save(targets.Items()); err != nil {
			return sum, err
		}
	}
	return sum, nil
}

// mirror upserts the crawled venues into PostgreSQL. Failures are logged; the
// list file stays the source of truth.
func (a *app) mirror(venues []models.Venue) {
	pg, err := storage.NewPostgresWriter(a.cfg.DSN())
	if err != nil {
		a.logger.Error("[crawl] Failed to connect to PostgreSQL: %v", err)
		a.logger.Error("[crawl] Make sure the database is running: docker compose up -d")
		return
	}
	a.writeVenues(pg, venues)
}

func (a *app) writeVenues(w storage.VenueWriter, venues []models.Venue) {
	defer w.Close()
	if err := w.Write(venues); err != nil {
		a.logger.Error("[crawl] PostgreSQL write failed: %v", err)
		return
	}
	a.logger.Info("[crawl] %d venues stored in PostgreSQL (table: venues)", len(venues))
}
