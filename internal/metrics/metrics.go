// Package metrics tracks collector run counters for the monitoring endpoints.
package metrics

import (
	"sync"
	"time"
)

type Metrics struct {
	mu sync.RWMutex

	// Counters
	FeedsFetched      int64
	FeedsFailed       int64
	ArticlesCollected int64
	KeywordMatches    int64
	AIRequests        int64
	AICacheHits       int64
	AIFailures        int64
	DuplicatesSkipped int64
	RowsAppended      int64

	// Timings
	LastRunDuration  time.Duration
	TotalRunDuration time.Duration
	RunCount         int64

	// Status
	LastRunTime   time.Time
	LastErrorTime time.Time
	LastError     string
	IsHealthy     bool
}

var Global = &Metrics{IsHealthy: true}

func (m *Metrics) AddFeedsFetched(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FeedsFetched += int64(n)
}

func (m *Metrics) AddFeedsFailed(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FeedsFailed += int64(n)
}

func (m *Metrics) AddArticlesCollected(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ArticlesCollected += int64(n)
}

func (m *Metrics) IncrementKeywordMatches() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.KeywordMatches++
}

func (m *Metrics) IncrementAIRequests() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.AIRequests++
}

func (m *Metrics) IncrementAICacheHits() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.AICacheHits++
}

func (m *Metrics) IncrementAIFailures() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.AIFailures++
}

func (m *Metrics) AddDuplicatesSkipped(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DuplicatesSkipped += int64(n)
}

func (m *Metrics) AddRowsAppended(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RowsAppended += int64(n)
}

func (m *Metrics) RecordRun(duration time.Duration, ok bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.LastRunDuration = duration
	m.TotalRunDuration += duration
	m.RunCount++
	m.LastRunTime = time.Now()
	if ok {
		m.IsHealthy = true
	}
}

func (m *Metrics) SetError(err string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastError = err
	m.LastErrorTime = time.Now()
	m.IsHealthy = false
}

func (m *Metrics) GetStats() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var avg time.Duration
	if m.RunCount > 0 {
		avg = m.TotalRunDuration / time.Duration(m.RunCount)
	}

	return map[string]interface{}{
		"feeds_fetched":        m.FeedsFetched,
		"feeds_failed":         m.FeedsFailed,
		"articles_collected":   m.ArticlesCollected,
		"keyword_matches":      m.KeywordMatches,
		"ai_requests":          m.AIRequests,
		"ai_cache_hits":        m.AICacheHits,
		"ai_failures":          m.AIFailures,
		"duplicates_skipped":   m.DuplicatesSkipped,
		"rows_appended":        m.RowsAppended,
		"last_run_duration_ms": m.LastRunDuration.Milliseconds(),
		"avg_run_duration_ms":  avg.Milliseconds(),
		"run_count":            m.RunCount,
		"last_run_time":        m.LastRunTime.Format(time.RFC3339),
		"last_error_time":      m.LastErrorTime.Format(time.RFC3339),
		"last_error":           m.LastError,
		"is_healthy":           m.IsHealthy,
	}
}
