package feeds

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/mcttz/mediawatch/internal/retry"
)

func rssDocument(title string, items ...string) string {
	body := ""
	for _, it := range items {
		body += it
	}
	return fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0"><channel><title>%s</title>%s</channel></rss>`, title, body)
}

func rssItem(title, link, pubDate string) string {
	date := ""
	if pubDate != "" {
		date = "<pubDate>" + pubDate + "</pubDate>"
	}
	return fmt.Sprintf("<item><title>%s</title><link>%s</link><description>desc</description>%s</item>", title, link, date)
}

func serveRSS(t *testing.T, doc string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		fmt.Fprint(w, doc)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func testIngestor() *Ingestor {
	ing := NewIngestor()
	ing.PerSourceTimeout = 5 * time.Second
	ing.Retry = retry.Config{MaxAttempts: 1, Delay: time.Millisecond}
	return ing
}

func TestFetchAllCollectsFromEverySource(t *testing.T) {
	a := serveRSS(t, rssDocument("Mwananchi",
		rssItem("Habari ya kwanza", "https://a/1", "Mon, 02 Jun 2025 10:00:00 GMT"),
		rssItem("Habari ya pili", "https://a/2", "")))
	b := serveRSS(t, rssDocument("The Citizen",
		rssItem("Top story", "https://b/1", "")))

	got := testIngestor().FetchAll(context.Background(), []string{a.URL, b.URL})
	if len(got) != 3 {
		t.Fatalf("collected %d articles, want 3", len(got))
	}
	if got[0].Platform != "Mwananchi" || got[2].Platform != "The Citizen" {
		t.Errorf("platforms = %q / %q, source order must be preserved", got[0].Platform, got[2].Platform)
	}
	if got[0].Link != "https://a/1" {
		t.Errorf("link = %q", got[0].Link)
	}
	if got[0].Content == "" {
		t.Error("content should carry the normalized title and description")
	}
}

func TestFetchAllIsolatesFailingSource(t *testing.T) {
	dead := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusInternalServerError)
	}))
	t.Cleanup(dead.Close)
	alive := serveRSS(t, rssDocument("Habari Leo", rssItem("Inaendelea", "https://c/1", "")))

	got := testIngestor().FetchAll(context.Background(), []string{dead.URL, alive.URL})
	if len(got) != 1 || got[0].Link != "https://c/1" {
		t.Fatalf("articles = %v, want the healthy source's one article", got)
	}
}

func TestFetchAllCapsPerSource(t *testing.T) {
	srv := serveRSS(t, rssDocument("BBC Swahili",
		rssItem("moja", "https://d/1", ""),
		rssItem("mbili", "https://d/2", ""),
		rssItem("tatu", "https://d/3", "")))

	ing := testIngestor()
	ing.MaxPerSource = 2
	got := ing.FetchAll(context.Background(), []string{srv.URL})
	if len(got) != 2 {
		t.Fatalf("collected %d articles with cap 2, want 2", len(got))
	}
	if got[0].Link != "https://d/1" || got[1].Link != "https://d/2" {
		t.Errorf("cap must keep the leading items, got %q %q", got[0].Link, got[1].Link)
	}
}

func TestPublishedAtFallbacks(t *testing.T) {
	now := time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC)
	published := time.Date(2025, 5, 30, 8, 0, 0, 0, time.UTC)
	updated := time.Date(2025, 5, 31, 9, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		item *gofeed.Item
		want string
	}{
		{"parsed published wins", &gofeed.Item{PublishedParsed: &published, UpdatedParsed: &updated}, published.Format(time.RFC3339)},
		{"updated when no published", &gofeed.Item{UpdatedParsed: &updated}, updated.Format(time.RFC3339)},
		{"raw published string", &gofeed.Item{Published: " 30 May 2025 "}, "30 May 2025"},
		{"collection date last", &gofeed.Item{}, "2025-06-02"},
	}
	for _, tc := range cases {
		if got := publishedAt(tc.item, now); got != tc.want {
			t.Errorf("%s: publishedAt = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestPlatformFallsBackToURL(t *testing.T) {
	srv := serveRSS(t, rssDocument("", rssItem("bila jina", "https://e/1", "")))

	got := testIngestor().FetchAll(context.Background(), []string{srv.URL})
	if len(got) != 1 {
		t.Fatalf("collected %d articles, want 1", len(got))
	}
	if got[0].Platform != srv.URL {
		t.Errorf("Platform = %q, want the source URL %q", got[0].Platform, srv.URL)
	}
}

func TestLoadSources(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "feeds.yaml")
	if err := os.WriteFile(path, []byte("feeds:\n  - https://a/rss\n  - https://b/rss\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := LoadSources(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0] != "https://a/rss" {
		t.Errorf("sources = %v", got)
	}

	empty := filepath.Join(dir, "empty.yaml")
	if err := os.WriteFile(empty, []byte("feeds: []\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadSources(empty); err == nil {
		t.Error("empty feed list should be rejected")
	}
	if _, err := LoadSources(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("missing file should be rejected")
	}
}

func TestThemesCell(t *testing.T) {
	a := Article{DetectedThemes: []string{"one"}, AIThemes: []string{"two", "one"}}
	if got := a.ThemesCell(); got != "one, two" {
		t.Errorf("ThemesCell = %q, want deduplicated union", got)
	}
	if got := (Article{}).ThemesCell(); got != ThemesEmpty {
		t.Errorf("empty ThemesCell = %q, want %q", got, ThemesEmpty)
	}
}
