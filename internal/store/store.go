// Package store abstracts the tabular destination the collector syncs into.
package store

import (
	"context"

	"github.com/mcttz/mediawatch/internal/feeds"
)

// Header is the persisted column schema. Order and exact names are a
// contract with the downstream dashboard; never reorder.
var Header = []string{
	"Platform", "Content", "Link", "Date",
	"All Themes", "Sentiment", "Media Sector Impact", "Collected At",
}

// LinkColumn indexes the article link inside a row, the natural key for
// deduplication.
const LinkColumn = 2

// Tabular is the capability the sync engine consumes. ReadRows returns data
// rows only (no header). Replace clears the worksheet and rewrites it:
// header first, then every data row.
type Tabular interface {
	EnsureWorksheet(ctx context.Context, name string) error
	ReadRows(ctx context.Context, name string) ([][]string, error)
	Replace(ctx context.Context, name string, rows [][]string) error
}

// RowFromArticle maps an article record onto the persisted schema.
func RowFromArticle(a feeds.Article) []string {
	return []string{
		a.Platform,
		a.Content,
		a.Link,
		a.PublishedAt,
		a.ThemesCell(),
		a.Sentiment,
		a.Impact,
		a.CollectedAt.Format("2006-01-02 15:04:05"),
	}
}
