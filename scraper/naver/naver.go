package naver

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"os/exec"
	"time"

	"github.com/chromedp/chromedp"

	"placebook/config"
	"placebook/models"
	"placebook/utils"
)

// titleGrace bounds the extra wait for the title to render once the place
// document is ready. The page is captured either way.
const titleGrace = 5 * time.Second

// Scraper crawls Naver map place pages with headless Chrome.
type Scraper struct {
	cfg    *config.Config
	logger *utils.Logger
	pool   *utils.WorkerPool
	retry  *utils.RetryConfig
}

// New creates a ready-to-use Scraper.
func New(cfg *config.Config, logger *utils.Logger) *Scraper {
	return &Scraper{
		cfg:    cfg,
		logger: logger,
		pool:   utils.NewWorkerPool(cfg.MaxConcurrency, cfg.RateLimitMs),
		retry: &utils.RetryConfig{
			MaxAttempts: cfg.MaxRetries,
			BaseDelay:   2 * time.Second,
			Logger:      logger,
		},
	}
}

// Crawl visits every URL once and streams one result per distinct URL. The
// channel is closed when all jobs have finished or ctx is done.
func (s *Scraper) Crawl(ctx context.Context, urls []string) <-chan *models.CrawlResult {
	out := make(chan *models.CrawlResult)

	go func() {
		defer close(out)

		chromeBin := s.cfg.ChromeBin
		if chromeBin == "" {
			chromeBin = findChromeBinary()
		}
		s.logger.Info("[naver] Starting crawl of %d targets — browser: %s", len(urls), chromeBin)

		allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, allocatorOptions(chromeBin)...)
		defer cancelAlloc()

		// Suppress chromedp log noise
		browserCtx, cancelBrowser := chromedp.NewContext(allocCtx, chromedp.WithLogf(func(string, ...interface{}) {}))
		defer cancelBrowser()

		if err := chromedp.Run(browserCtx); err != nil {
			s.logger.Error("[naver] Could not start browser: %v", err)
			for _, u := range urls {
				send(ctx, out, &models.CrawlResult{URL: u, Err: fmt.Errorf("start browser: %w", err), CrawledAt: time.Now()})
			}
			return
		}

		seen := utils.NewURLSet()
		for _, u := range urls {
			if !seen.Add(u) {
				s.logger.Debug("[naver] Skipping duplicate: %s", u)
				continue
			}
			placeURL := u
			s.pool.Submit(ctx, func() {
				raw, err := s.scrapePlace(browserCtx, placeURL)
				send(ctx, out, &models.CrawlResult{URL: placeURL, Raw: raw, Err: err, CrawledAt: time.Now()})
			})
		}
		s.pool.Wait()
		s.logger.Info("[naver] Crawl finished — %d distinct targets", seen.Size())
	}()

	return out
}

func send(ctx context.Context, out chan<- *models.CrawlResult, r *models.CrawlResult) {
	select {
	case out <- r:
	case <-ctx.Done():
	}
}

// scrapePlace opens the place page, follows the entry iframe to the detail
// document and extracts the venue fields from its HTML.
func (s *Scraper) scrapePlace(browserCtx context.Context, placeURL string) (*models.RawVenue, error) {
	var raw *models.RawVenue

	err := s.retry.Do(browserCtx, "place "+placeURL, func() error {
		ctx, cancel := chromedp.NewContext(browserCtx)
		defer cancel()

		ctx, cancelTimeout := context.WithTimeout(ctx, time.Duration(s.cfg.PageTimeoutSec)*time.Second)
		defer cancelTimeout()

		var frameSrc string
		var ok bool
		err := chromedp.Run(ctx,
			chromedp.Navigate(placeURL),
			chromedp.WaitReady(entryFrameSelector, chromedp.ByQuery),
			chromedp.AttributeValue(entryFrameSelector, "src", &frameSrc, &ok, chromedp.ByQuery),
		)
		if err != nil {
			return fmt.Errorf("chromedp entry frame: %w", err)
		}
		if !ok || frameSrc == "" {
			return fmt.Errorf("entry frame has no src")
		}

		frameURL, err := resolveFrameURL(placeURL, frameSrc)
		if err != nil {
			return err
		}

		if err := chromedp.Run(ctx,
			chromedp.Navigate(frameURL),
			chromedp.WaitReady("body", chromedp.ByQuery),
		); err != nil {
			return fmt.Errorf("chromedp place document: %w", err)
		}

		waitCtx, cancelWait := context.WithTimeout(ctx, titleGrace)
		if err := chromedp.Run(waitCtx, chromedp.WaitVisible(titleSelector, chromedp.ByQuery)); err != nil {
			s.logger.Debug("[naver] Title not visible yet on %s: %v", placeURL, err)
		}
		cancelWait()

		var html string
		if err := chromedp.Run(ctx, chromedp.OuterHTML("html", &html, chromedp.ByQuery)); err != nil {
			return fmt.Errorf("chromedp capture: %w", err)
		}

		raw, err = ParsePlace(html, placeURL)
		return err
	})

	return raw, err
}

// resolveFrameURL makes the iframe src absolute against the page URL.
func resolveFrameURL(pageURL, src string) (string, error) {
	base, err := url.Parse(pageURL)
	if err != nil {
		return "", fmt.Errorf("parse page url: %w", err)
	}
	ref, err := url.Parse(src)
	if err != nil {
		return "", fmt.Errorf("parse frame src: %w", err)
	}
	return base.ResolveReference(ref).String(), nil
}

func allocatorOptions(chromeBin string) []chromedp.ExecAllocatorOption {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", "new"),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("lang", "ko-KR"),
		chromedp.Flag("accept-lang", "ko-KR,ko;q=0.9,en-US;q=0.8,en;q=0.7"),
	)
	if chromeBin != "" {
		opts = append(opts, chromedp.ExecPath(chromeBin))
	}
	return opts
}

// findChromeBinary locates Chrome/Chromium binary.
func findChromeBinary() string {
	if bin := os.Getenv("CHROME_BIN"); bin != "" {
		return bin
	}

	names := []string{"google-chrome-stable", "google-chrome", "chromium", "chromium-browser"}
	for _, name := range names {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}

	paths := []string{
		"/usr/bin/google-chrome-stable",
		"/usr/bin/google-chrome",
		"/usr/bin/chromium-browser",
		"/usr/bin/chromium",
		"/snap/bin/chromium",
		"/opt/google/chrome/google-chrome",
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	return ""
}
