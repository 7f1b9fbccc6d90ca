// Package classify enriches article records with themes, sentiment and
// media-sector impact.
package classify

import (
	"context"
	"log/slog"
	"time"

	"github.com/mcttz/mediawatch/internal/ai"
	"github.com/mcttz/mediawatch/internal/feeds"
	"github.com/mcttz/mediawatch/internal/logger"
	"github.com/mcttz/mediawatch/internal/metrics"
	"github.com/mcttz/mediawatch/internal/ratelimit"
	"github.com/mcttz/mediawatch/internal/retry"
	"github.com/mcttz/mediawatch/internal/sentiment"
	"github.com/mcttz/mediawatch/internal/themes"
)

// Classifier tags article content. Keyword matches are authoritative; the AI
// provider is consulted only when the lexicon finds nothing, and its failures
// degrade to an empty tag set rather than aborting the run.
type Classifier struct {
	lexicon  *themes.Lexicon
	provider ai.Provider
	cache    *Cache
	budget   *ratelimit.AIBudget
	retryCfg retry.Config
	log      *slog.Logger
}

// New builds a Classifier for one pipeline run. provider may be nil to run
// keyword-only; budget may be nil for unlimited AI spending.
func New(provider ai.Provider, budget *ratelimit.AIBudget) *Classifier {
	return &Classifier{
		lexicon:  themes.NewLexicon(),
		provider: provider,
		cache:    NewCache(),
		budget:   budget,
		retryCfg: retry.Config{MaxAttempts: 2, Delay: 3 * time.Second},
		log:      logger.With("classify"),
	}
}

// Apply enriches the record in place: detected themes, AI fallback themes,
// sentiment label and media-sector impact.
func (c *Classifier) Apply(ctx context.Context, a *feeds.Article) {
	a.DetectedThemes = c.lexicon.Match(a.Content)
	if len(a.DetectedThemes) > 0 {
		metrics.Global.IncrementKeywordMatches()
		a.AIThemes = nil
	} else {
		a.AIThemes = c.classifyAI(ctx, a.Content)
	}
	a.Sentiment = string(sentiment.Classify(a.Content))
	a.Impact = string(Impact(a.AllThemes()))
}

// classifyAI consults the cache before the external model. Every outcome is
// cached, including the fail-open empty set after exhausted retries.
func (c *Classifier) classifyAI(ctx context.Context, text string) []string {
	if c.provider == nil {
		return nil
	}

	if tags, ok := c.cache.Get(text); ok {
		metrics.Global.IncrementAICacheHits()
		if c.budget != nil {
			c.budget.RecordCacheHit()
		}
		return tags
	}

	if c.budget != nil && !c.budget.Allow() {
		c.log.Warn("ai budget exhausted, skipping classification")
		c.cache.Set(text, nil)
		return nil
	}

	var tags []string
	metrics.Global.IncrementAIRequests()
	err := retry.Do(ctx, c.retryCfg, func() error {
		result, err := c.provider.ClassifyThemes(ctx, text)
		if err != nil {
			return err
		}
		tags = result
		return nil
	})
	if err != nil {
		metrics.Global.IncrementAIFailures()
		c.log.Warn("ai classification failed, tagging empty", "error", err)
		tags = nil
	}

	c.cache.Set(text, tags)
	return tags
}
