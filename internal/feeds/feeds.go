// Package feeds ingests the configured RSS sources into article records.
package feeds

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/mmcdole/gofeed"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/mcttz/mediawatch/internal/logger"
	"github.com/mcttz/mediawatch/internal/metrics"
	"github.com/mcttz/mediawatch/internal/normalize"
	"github.com/mcttz/mediawatch/internal/retry"
)

// ThemesEmpty is the placeholder persisted when an article matched nothing.
const ThemesEmpty = "—"

// Article is the unit flowing through the collect-classify-sync pipeline.
type Article struct {
	Platform    string
	Content     string
	Link        string
	PublishedAt string

	DetectedThemes []string
	AIThemes       []string
	Sentiment      string
	Impact         string
	CollectedAt    time.Time
}

// AllThemes is the union of keyword and AI themes, keyword matches first.
func (a Article) AllThemes() []string {
	seen := make(map[string]bool, len(a.DetectedThemes)+len(a.AIThemes))
	var all []string
	for _, t := range a.DetectedThemes {
		if !seen[t] {
			seen[t] = true
			all = append(all, t)
		}
	}
	for _, t := range a.AIThemes {
		if !seen[t] {
			seen[t] = true
			all = append(all, t)
		}
	}
	return all
}

// ThemesCell renders AllThemes for the sheet: comma-joined, or the "—"
// placeholder when the article matched nothing.
func (a Article) ThemesCell() string {
	all := a.AllThemes()
	if len(all) == 0 {
		return ThemesEmpty
	}
	return strings.Join(all, ", ")
}

// SourcesConfig is the YAML shape of the feed list file.
//
// feeds:
//   - https://...
type SourcesConfig struct {
	Feeds []string `yaml:"feeds"`
}

// LoadSources reads the RSS source list from a YAML file.
func LoadSources(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg SourcesConfig
	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("parse sources file %s: %w", path, err)
	}
	if len(cfg.Feeds) == 0 {
		return nil, fmt.Errorf("sources file %s lists no feeds", path)
	}
	return cfg.Feeds, nil
}

// Ingestor fetches and parses the configured sources.
type Ingestor struct {
	parser *gofeed.Parser

	// Concurrency caps parallel source fetches; PerSourceTimeout bounds each
	// fetch; MaxPerSource caps entries taken per feed, 0 meaning all of them.
	Concurrency      int
	PerSourceTimeout time.Duration
	MaxPerSource     int
	Retry            retry.Config
}

// NewIngestor returns an Ingestor with the default fetch policy.
func NewIngestor() *Ingestor {
	return &Ingestor{
		parser:           gofeed.NewParser(),
		Concurrency:      5,
		PerSourceTimeout: 30 * time.Second,
		Retry:            retry.Config{MaxAttempts: 2, Delay: 2 * time.Second},
	}
}

// FetchAll downloads and parses every source. Sources are fetched with
// bounded concurrency; a failing source is logged and skipped, never aborting
// the others. Result order follows the source list.
func (ing *Ingestor) FetchAll(ctx context.Context, sources []string) []Article {
	log := logger.With("feeds")
	now := time.Now()

	perSource := make([][]Article, len(sources))
	var mu sync.Mutex
	var okCount, failCount int

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(ing.Concurrency)

	for i, src := range sources {
		i, src := i, src
		g.Go(func() error {
			articles, err := ing.fetchOne(gctx, src, now)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				failCount++
				log.Warn("source failed, skipping", "url", src, "error", err)
				return nil
			}
			okCount++
			perSource[i] = articles
			log.Info("source fetched", "url", src, "articles", len(articles))
			return nil
		})
	}
	_ = g.Wait()

	var all []Article
	for _, articles := range perSource {
		all = append(all, articles...)
	}

	metrics.Global.AddFeedsFetched(okCount)
	metrics.Global.AddFeedsFailed(failCount)
	log.Info("ingestion finished", "sources_ok", okCount, "sources_failed", failCount, "articles", len(all))
	return all
}

func (ing *Ingestor) fetchOne(ctx context.Context, src string, now time.Time) ([]Article, error) {
	fetchCtx, cancel := context.WithTimeout(ctx, ing.PerSourceTimeout)
	defer cancel()

	var feed *gofeed.Feed
	err := retry.Do(fetchCtx, ing.Retry, func() error {
		parsed, err := ing.parser.ParseURLWithContext(src, fetchCtx)
		if err != nil {
			return err
		}
		feed = parsed
		return nil
	})
	if err != nil {
		return nil, err
	}

	platform := strings.TrimSpace(feed.Title)
	if platform == "" {
		platform = src
	}

	items := feed.Items
	if ing.MaxPerSource > 0 && len(items) > ing.MaxPerSource {
		items = items[:ing.MaxPerSource]
	}

	articles := make([]Article, 0, len(items))
	for _, item := range items {
		articles = append(articles, Article{
			Platform:    platform,
			Content:     normalize.Text(item.Title, item.Description),
			Link:        item.Link,
			PublishedAt: publishedAt(item, now),
		})
	}
	return articles, nil
}

// publishedAt picks the source-reported publish time, preferring the parsed
// published field, then updated, then the raw published string, and finally
// the collection time.
func publishedAt(item *gofeed.Item, now time.Time) string {
	if item.PublishedParsed != nil {
		return item.PublishedParsed.Format(time.RFC3339)
	}
	if item.UpdatedParsed != nil {
		return item.UpdatedParsed.Format(time.RFC3339)
	}
	if strings.TrimSpace(item.Published) != "" {
		return strings.TrimSpace(item.Published)
	}
	return now.Format("2006-01-02")
}
