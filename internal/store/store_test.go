package store

import (
	"testing"
	"time"

	"github.com/mcttz/mediawatch/internal/feeds"
)

func TestSpreadsheetKey(t *testing.T) {
	key, err := SpreadsheetKey("https://docs.google.com/spreadsheets/d/1AbC_dEf-123/edit#gid=0")
	if err != nil {
		t.Fatal(err)
	}
	if key != "1AbC_dEf-123" {
		t.Errorf("key = %q", key)
	}

	// No trailing path after the key.
	key, err = SpreadsheetKey("https://docs.google.com/spreadsheets/d/xyz")
	if err != nil || key != "xyz" {
		t.Errorf("key = %q, err = %v", key, err)
	}

	for _, bad := range []string{
		"https://docs.google.com/spreadsheets/",
		"https://docs.google.com/spreadsheets/d//edit",
		"",
	} {
		if _, err := SpreadsheetKey(bad); err == nil {
			t.Errorf("SpreadsheetKey(%q) accepted a malformed URL", bad)
		}
	}
}

func TestRowFromArticle(t *testing.T) {
	a := feeds.Article{
		Platform:       "Mwananchi",
		Content:        "Mwandishi wa habari alikamatwa",
		Link:           "https://x/1",
		PublishedAt:    "2025-06-02T10:00:00Z",
		DetectedThemes: []string{"A"},
		AIThemes:       []string{"B"},
		Sentiment:      "Negative",
		Impact:         "Direct Impact on Media Sector",
		CollectedAt:    time.Date(2025, 6, 2, 12, 30, 0, 0, time.UTC),
	}

	row := RowFromArticle(a)
	if len(row) != len(Header) {
		t.Fatalf("row has %d cells, header has %d", len(row), len(Header))
	}
	if row[LinkColumn] != a.Link {
		t.Errorf("link column = %q", row[LinkColumn])
	}
	if row[4] != "A, B" {
		t.Errorf("themes cell = %q", row[4])
	}
	if row[7] != "2025-06-02 12:30:00" {
		t.Errorf("collected at = %q", row[7])
	}
}

func TestRowFromArticleEmptyThemes(t *testing.T) {
	row := RowFromArticle(feeds.Article{Platform: "BBC"})
	if row[4] != feeds.ThemesEmpty {
		t.Errorf("themes cell = %q, want %q placeholder", row[4], feeds.ThemesEmpty)
	}
}
