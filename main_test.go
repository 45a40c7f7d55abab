package main

import (
	"bytes"
	"strings"
	"testing"

	"placebook/catalog"
	"placebook/models"
	"placebook/services"
)

func TestRootCommandRegistersSubcommands(t *testing.T) {
	root := newRootCmd()
	for _, name := range []string{"browse", "pick", "list", "add", "remove", "crawl", "stats"} {
		cmd, _, err := root.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Errorf("subcommand %q: got %v, err %v", name, cmd, err)
		}
	}
	crawl, _, _ := root.Find([]string{"crawl"})
	if crawl.Flags().Lookup("recrawl") == nil {
		t.Errorf("crawl: missing --recrawl flag")
	}
}

func TestPrintTargets(t *testing.T) {
	targets := services.NewTargetList([]models.Venue{
		{Title: "성수 파스타", URL: "https://map.naver.com/p/entry/place/1"},
		{URL: "https://map.naver.com/p/entry/place/2"},
	})
	var buf bytes.Buffer
	printTargets(&buf, targets)
	out := buf.String()

	for _, want := range []string{
		"기존 항목 (1)",
		"1. 성수 파스타 - https://map.naver.com/p/entry/place/1",
		"새 항목 (1)",
		"1. https://map.naver.com/p/entry/place/2",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("printTargets: missing %q in\n%s", want, out)
		}
	}
}

func TestPrintDetailHidesMapWithoutURL(t *testing.T) {
	var buf bytes.Buffer
	printDetail(&buf, catalog.NewDetail(models.Venue{Title: "골목 국수"}))
	out := buf.String()

	if !strings.Contains(out, "골목 국수") {
		t.Errorf("printDetail: title missing in\n%s", out)
	}
	if !strings.Contains(out, "정보 없음") {
		t.Errorf("printDetail: fallback missing in\n%s", out)
	}
	if strings.Contains(out, catalog.MapActionLabel) {
		t.Errorf("printDetail: map action shown without url")
	}
}
