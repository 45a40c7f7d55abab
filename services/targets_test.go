package services

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"placebook/models"
)

func sampleTargets() *TargetList {
	return NewTargetList([]models.Venue{
		{Title: "A", Category: "Korean", URL: "https://m.place/a"},
		{URL: "https://m.place/new1"},
		{Title: "B", URL: "https://m.place/b"},
	})
}

func TestTargetListPartitions(t *testing.T) {
	l := sampleTargets()
	if diff := cmp.Diff([]string{"https://m.place/a", "https://m.place/b"}, URLs(l.Existing())); diff != "" {
		t.Errorf("Existing (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"https://m.place/new1"}, URLs(l.Pending())); diff != "" {
		t.Errorf("Pending (-want +got):\n%s", diff)
	}
}

func TestTargetListAdd(t *testing.T) {
	l := sampleTargets()

	if err := l.Add("  https://m.place/new2 "); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := l.Add("https://m.place/a"); !errors.Is(err, ErrDuplicateURL) {
		t.Errorf("expected ErrDuplicateURL, got %v", err)
	}
	if err := l.Add("   "); !errors.Is(err, ErrEmptyURL) {
		t.Errorf("expected ErrEmptyURL, got %v", err)
	}
	if n := len(l.Pending()); n != 2 {
		t.Errorf("pending: got %d, want 2", n)
	}
}

func TestTargetListRemove(t *testing.T) {
	l := sampleTargets()
	if !l.Remove("https://m.place/new1") {
		t.Fatal("Remove should find the target")
	}
	if l.Remove("https://m.place/new1") {
		t.Error("second Remove should report nothing removed")
	}
	if n := len(l.Items()); n != 2 {
		t.Errorf("items: got %d, want 2", n)
	}
}

func TestTargetListMerge(t *testing.T) {
	l := sampleTargets()
	crawled := models.Venue{Title: "New One", URL: "https://m.place/new1"}
	if !l.Merge(crawled) {
		t.Fatal("Merge should match by URL")
	}
	if diff := cmp.Diff(crawled, l.Items()[1]); diff != "" {
		t.Errorf("merged item (-want +got):\n%s", diff)
	}
	if l.Merge(models.Venue{Title: "X", URL: "https://m.place/unknown"}) {
		t.Error("Merge of unknown URL should fail")
	}
}

func TestTargetListRebuild(t *testing.T) {
	l := sampleTargets()
	l.Rebuild(map[string]models.Venue{
		"https://m.place/b": {Title: "B2", URL: "https://m.place/b"},
	})

	var got []string
	for _, v := range l.Items() {
		got = append(got, DisplayText(v))
	}
	want := []string{
		"A - https://m.place/a",
		"B2 - https://m.place/b",
		"https://m.place/new1",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("rebuilt list (-want +got):\n%s", diff)
	}
}

func TestDisplayTextTitleEqualsURL(t *testing.T) {
	v := models.Venue{Title: "https://m.place/x", URL: "https://m.place/x"}
	if got := DisplayText(v); got != "https://m.place/x" {
		t.Errorf("DisplayText: got %q", got)
	}
}
