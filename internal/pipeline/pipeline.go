// Package pipeline sequences ingestion, classification and synchronization.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/mcttz/mediawatch/internal/classify"
	"github.com/mcttz/mediawatch/internal/feeds"
	"github.com/mcttz/mediawatch/internal/logger"
	"github.com/mcttz/mediawatch/internal/metrics"
	"github.com/mcttz/mediawatch/internal/syncer"
)

// previewCount limits how many records get echoed to the log after a run.
const previewCount = 10

// Pipeline owns one collector run end to end.
type Pipeline struct {
	ingestor   *feeds.Ingestor
	classifier *classify.Classifier
	engine     *syncer.Engine
	sources    []string
	worksheet  string
	log        *slog.Logger
}

// New wires the pipeline. The classifier is expected to be freshly built per
// pipeline so its AI cache stays run-scoped.
func New(ingestor *feeds.Ingestor, classifier *classify.Classifier, engine *syncer.Engine, sources []string, worksheet string) *Pipeline {
	return &Pipeline{
		ingestor:   ingestor,
		classifier: classifier,
		engine:     engine,
		sources:    sources,
		worksheet:  worksheet,
		log:        logger.With("pipeline"),
	}
}

// Run collects, classifies and syncs one batch, returning a human-readable
// summary. Only a misconfigured or failing destination surfaces as an error;
// per-source and per-AI-call failures degrade inside their stages.
func (p *Pipeline) Run(ctx context.Context) (summary string, err error) {
	started := time.Now()
	defer func() {
		metrics.Global.RecordRun(time.Since(started), err == nil)
	}()

	records := p.ingestor.FetchAll(ctx, p.sources)
	metrics.Global.AddArticlesCollected(len(records))
	if len(records) == 0 {
		p.log.Warn("no articles collected, skipping classification and sync")
		return "No articles collected.", nil
	}

	collectedAt := time.Now()
	for i := range records {
		p.classifier.Apply(ctx, &records[i])
		records[i].CollectedAt = collectedAt
	}
	p.preview(records)

	result, err := p.engine.Sync(ctx, records, p.worksheet)
	if err != nil {
		metrics.Global.SetError(err.Error())
		return "", fmt.Errorf("sync: %w", err)
	}

	return fmt.Sprintf("Collected %d articles: %d new rows synced, %d duplicates skipped, %d rows total.",
		len(records), result.Added, result.Duplicates, result.Total), nil
}

// preview logs the head of the classified batch, mirroring what operators
// used to eyeball on the console.
func (p *Pipeline) preview(records []feeds.Article) {
	n := len(records)
	if n > previewCount {
		n = previewCount
	}
	for i := 0; i < n; i++ {
		rec := records[i]
		snippet := rec.Content
		if len(snippet) > 160 {
			snippet = snippet[:160] + "..."
		}
		p.log.Info("collected article",
			"platform", rec.Platform,
			"date", rec.PublishedAt,
			"content", snippet,
			"themes", rec.ThemesCell(),
			"sentiment", rec.Sentiment,
			"impact", rec.Impact,
		)
	}
}
