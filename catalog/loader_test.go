package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"placebook/utils"
)

const scenarioJSON = `[
	{"title":"A","category":"Korean"},
	{"title":"B","category":"Italian"},
	{"title":null}
]`

func TestParseDropsUntitled(t *testing.T) {
	venues, err := Parse([]byte(scenarioJSON))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(venues) != 2 {
		t.Fatalf("len: got %d, want 2", len(venues))
	}
	if venues[0].Title != "A" || venues[1].Title != "B" {
		t.Errorf("order: got %q, %q; want A, B", venues[0].Title, venues[1].Title)
	}
}

func TestParseSkipsMalformedEntries(t *testing.T) {
	data := `[{"title":"ok"}, "stray", 42, [], {"url":"https://m.place/1"}, {"title":""}, {"title":"also ok"}]`
	venues, err := Parse([]byte(data))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(venues) != 2 {
		t.Errorf("len: got %d, want 2", len(venues))
	}
}

func TestParseRejectsNonArray(t *testing.T) {
	for _, doc := range []string{`{"title":"A"}`, `null`, `not json`, ``} {
		if _, err := Parse([]byte(doc)); err == nil {
			t.Errorf("Parse(%q): expected error", doc)
		}
	}
}

func TestLoaderReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ListFile)
	if err := os.WriteFile(path, []byte(scenarioJSON), 0644); err != nil {
		t.Fatal(err)
	}

	l := NewLoader(nil, "", path, utils.NewNopLogger())
	venues, err := l.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(venues) != 2 {
		t.Errorf("len: got %d, want 2", len(venues))
	}
}

func TestLoaderMissingFile(t *testing.T) {
	l := NewLoader(nil, "", filepath.Join(t.TempDir(), "absent.json"), utils.NewNopLogger())
	if _, err := l.Load(context.Background()); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoaderFetchesRelativeToBaseURL(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(scenarioJSON))
	}))
	defer srv.Close()

	l := NewLoader(srv.Client(), srv.URL+"/catalog/", "", utils.NewNopLogger())
	venues, err := l.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if gotPath != "/catalog/list.json" {
		t.Errorf("path: got %q, want %q", gotPath, "/catalog/list.json")
	}
	if len(venues) != 2 {
		t.Errorf("len: got %d, want 2", len(venues))
	}
}

func TestLoaderHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	l := NewLoader(srv.Client(), srv.URL+"/", "", utils.NewNopLogger())
	if _, err := l.Load(context.Background()); err == nil {
		t.Error("expected error for 404")
	}
}
