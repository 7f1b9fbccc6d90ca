// Package syncer reconciles freshly classified articles against the
// persisted dataset without duplicating previously seen links.
package syncer

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mcttz/mediawatch/internal/feeds"
	"github.com/mcttz/mediawatch/internal/logger"
	"github.com/mcttz/mediawatch/internal/metrics"
	"github.com/mcttz/mediawatch/internal/store"
)

// Engine is the only component that mutates persisted state.
type Engine struct {
	store store.Tabular
	log   *slog.Logger
}

// New wires the sync engine to a tabular destination.
func New(tab store.Tabular) *Engine {
	return &Engine{store: tab, log: logger.With("sync")}
}

// Result reports what one sync cycle did.
type Result struct {
	Added      int
	Duplicates int
	Total      int
}

// Sync appends genuinely new records to the named worksheet. The article
// link is the natural key: records whose link already exists in the
// persisted dataset are dropped, records with an empty link are always kept.
// Persisted row order is preserved, new rows go after it, and the worksheet
// is fully rewritten.
func (e *Engine) Sync(ctx context.Context, records []feeds.Article, worksheet string) (Result, error) {
	if err := e.store.EnsureWorksheet(ctx, worksheet); err != nil {
		return Result{}, fmt.Errorf("ensure worksheet: %w", err)
	}

	existing, err := e.store.ReadRows(ctx, worksheet)
	if err != nil {
		return Result{}, fmt.Errorf("read persisted rows: %w", err)
	}

	seen := make(map[string]bool, len(existing))
	for _, row := range existing {
		if len(row) > store.LinkColumn && row[store.LinkColumn] != "" {
			seen[row[store.LinkColumn]] = true
		}
	}

	merged := existing
	var added, duplicates int
	for _, rec := range records {
		if rec.Link != "" && seen[rec.Link] {
			duplicates++
			continue
		}
		if rec.Link != "" {
			seen[rec.Link] = true
		}
		merged = append(merged, store.RowFromArticle(rec))
		added++
	}

	if err := e.store.Replace(ctx, worksheet, merged); err != nil {
		return Result{}, fmt.Errorf("rewrite worksheet: %w", err)
	}

	metrics.Global.AddDuplicatesSkipped(duplicates)
	metrics.Global.AddRowsAppended(added)
	e.log.Info("sync finished",
		"worksheet", worksheet, "added", added, "duplicates", duplicates, "total", len(merged))

	return Result{Added: added, Duplicates: duplicates, Total: len(merged)}, nil
}
