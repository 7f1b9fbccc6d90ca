package pipeline

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/mcttz/mediawatch/internal/classify"
	"github.com/mcttz/mediawatch/internal/feeds"
	"github.com/mcttz/mediawatch/internal/retry"
	"github.com/mcttz/mediawatch/internal/store"
	"github.com/mcttz/mediawatch/internal/syncer"
)

type memStore struct {
	rows map[string][][]string
}

func (m *memStore) EnsureWorksheet(ctx context.Context, name string) error {
	if m.rows == nil {
		m.rows = make(map[string][][]string)
	}
	return nil
}

func (m *memStore) ReadRows(ctx context.Context, name string) ([][]string, error) {
	rows := m.rows[name]
	if len(rows) > 0 && rows[0][0] == store.Header[0] {
		return rows[1:], nil
	}
	return rows, nil
}

func (m *memStore) Replace(ctx context.Context, name string, rows [][]string) error {
	m.rows[name] = append([][]string{store.Header}, rows...)
	return nil
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

func testIngestor() *feeds.Ingestor {
	ing := feeds.NewIngestor()
	ing.PerSourceTimeout = 5 * time.Second
	ing.Retry = retry.Config{MaxAttempts: 1, Delay: time.Millisecond}
	return ing
}

func TestRunEndToEnd(t *testing.T) {
	doc := `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0"><channel><title>Mwananchi</title>
<item><title>Mwandishi wa habari alikamatwa</title><link>https://x/1</link><description>polisi walimhoji</description></item>
<item><title>Habari ya mpira wa miguu</title><link>https://x/2</link><description>timu ilishinda</description></item>
</channel></rss>`
	srv := serveRSS(t, doc)

	mem := &memStore{}
	pl := New(testIngestor(), classify.New(nil, nil), syncer.New(mem), []string{srv.URL}, "Results")

	summary, err := pl.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(summary, "2 new rows synced") {
		t.Errorf("summary = %q", summary)
	}

	rows := mem.rows["Results"]
	if len(rows) != 3 {
		t.Fatalf("persisted %d rows, want header plus 2", len(rows))
	}
	if rows[0][0] != store.Header[0] {
		t.Errorf("first row = %v, want the header", rows[0])
	}
	if rows[1][store.LinkColumn] != "https://x/1" {
		t.Errorf("first data row link = %q", rows[1][store.LinkColumn])
	}
	// The journalist arrest article carries a theme, the football one does not.
	if rows[1][4] == feeds.ThemesEmpty {
		t.Error("keyword article lost its theme")
	}
	if rows[2][4] != feeds.ThemesEmpty {
		t.Errorf("football article themes = %q, want placeholder", rows[2][4])
	}
	for i := 1; i <= 2; i++ {
		if rows[i][5] == "" || rows[i][6] == "" || rows[i][7] == "" {
			t.Errorf("row %d missing sentiment, impact or collected-at: %v", i, rows[i])
		}
	}
}

func TestRunRepeatSkipsDuplicates(t *testing.T) {
	doc := `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0"><channel><title>Habari Leo</title>
<item><title>Taarifa</title><link>https://y/1</link><description>maelezo</description></item>
</channel></rss>`
	srv := serveRSS(t, doc)

	mem := &memStore{}
	ing := testIngestor()
	eng := syncer.New(mem)
	sources := []string{srv.URL}

	if _, err := New(ing, classify.New(nil, nil), eng, sources, "Results").Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	summary, err := New(ing, classify.New(nil, nil), eng, sources, "Results").Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(summary, "0 new rows synced, 1 duplicates skipped") {
		t.Errorf("second run summary = %q", summary)
	}
	if got := len(mem.rows["Results"]); got != 2 {
		t.Errorf("persisted %d rows after rerun, want header plus 1", got)
	}
}

func TestRunWithNoSourcesReportsEmpty(t *testing.T) {
	mem := &memStore{}
	pl := New(testIngestor(), classify.New(nil, nil), syncer.New(mem), nil, "Results")

	summary, err := pl.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if summary != "No articles collected." {
		t.Errorf("summary = %q", summary)
	}
	if len(mem.rows) != 0 {
		t.Error("empty run must not touch the store")
	}
}
