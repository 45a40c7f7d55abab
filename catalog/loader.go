package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"

	"placebook/models"
	"placebook/utils"
)

// ListFile is the fixed catalog resource name.
const ListFile = "list.json"

// LoadFailedMessage replaces the card list when the catalog cannot be loaded.
const LoadFailedMessage = "데이터를 불러오는 데 실패했습니다."

// Loader fetches the catalog document once, either over HTTP relative to a
// base URL or from a local file.
type Loader struct {
	client  *http.Client
	baseURL string
	path    string
	logger  *utils.Logger
}

// NewLoader creates a Loader. With a non-empty baseURL the catalog is fetched
// with GET <baseURL>/list.json; otherwise path is read from disk.
func NewLoader(client *http.Client, baseURL, path string, logger *utils.Logger) *Loader {
	if client == nil {
		client = http.DefaultClient
	}
	return &Loader{client: client, baseURL: baseURL, path: path, logger: logger}
}

// Load fetches and parses the catalog. Failures are logged and returned; no
// retry is attempted.
func (l *Loader) Load(ctx context.Context) ([]models.Venue, error) {
	data, source, err := l.fetch(ctx)
	if err != nil {
		l.logger.Error("[loader] Error fetching venue data: %v", err)
		return nil, err
	}

	venues, err := Parse(data)
	if err != nil {
		l.logger.Error("[loader] Error parsing venue data from %s: %v", source, err)
		return nil, err
	}

	l.logger.Info("[loader] Loaded %d venues from %s", len(venues), source)
	return venues, nil
}

func (l *Loader) fetch(ctx context.Context) ([]byte, string, error) {
	if l.baseURL == "" {
		data, err := os.ReadFile(l.path)
		if err != nil {
			return nil, l.path, fmt.Errorf("loader: read %q: %w", l.path, err)
		}
		return data, l.path, nil
	}

	base, err := url.Parse(l.baseURL)
	if err != nil {
		return nil, l.baseURL, fmt.Errorf("loader: parse base url: %w", err)
	}
	target := base.ResolveReference(&url.URL{Path: ListFile}).String()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, target, fmt.Errorf("loader: build request: %w", err)
	}
	resp, err := l.client.Do(req)
	if err != nil {
		return nil, target, fmt.Errorf("loader: get %s: %w", target, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, target, fmt.Errorf("loader: get %s: unexpected status %s", target, resp.Status)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, target, fmt.Errorf("loader: read body: %w", err)
	}
	return data, target, nil
}

// Parse decodes a JSON array of loosely typed venue objects. Elements that are
// not objects, or that have no title, are dropped; order is preserved.
func Parse(data []byte) ([]models.Venue, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("loader: decode list: %w", err)
	}
	if items == nil {
		return nil, errors.New("loader: decode list: document is not an array")
	}

	venues := make([]models.Venue, 0, len(items))
	for _, item := range items {
		var v models.Venue
		if err := json.Unmarshal(item, &v); err != nil {
			continue
		}
		if v.Title == "" {
			continue
		}
		venues = append(venues, v)
	}
	return venues, nil
}
