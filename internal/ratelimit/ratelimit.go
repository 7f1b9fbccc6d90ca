// Package ratelimit caps spending against the external AI capability.
package ratelimit

import (
	"sync"
	"time"
)

// AIBudget counts classification requests against a daily allowance. A zero
// max means unlimited. All methods are safe for concurrent use.
type AIBudget struct {
	mu          sync.Mutex
	used        int
	max         int
	cacheHits   int
	cacheMisses int
	resetTime   time.Time
}

// NewAIBudget creates a budget that resets every 24 hours.
func NewAIBudget(maxRequests int) *AIBudget {
	return &AIBudget{
		max:       maxRequests,
		resetTime: time.Now().Add(24 * time.Hour),
	}
}

// Allow reports whether one more AI request fits the budget and, if so,
// consumes it.
func (b *AIBudget) Allow() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.checkReset()
	if b.max > 0 && b.used >= b.max {
		return false
	}
	b.used++
	b.cacheMisses++
	return true
}

// RecordCacheHit notes a classification answered from cache.
func (b *AIBudget) RecordCacheHit() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.cacheHits++
}

// Stats returns usage counters for the monitoring endpoint.
func (b *AIBudget) Stats() map[string]interface{} {
	b.mu.Lock()
	defer b.mu.Unlock()

	hitRate := 0.0
	if total := b.cacheHits + b.cacheMisses; total > 0 {
		hitRate = float64(b.cacheHits) / float64(total) * 100
	}
	return map[string]interface{}{
		"ai_requests_used":  b.used,
		"ai_requests_limit": b.max,
		"cache_hits":        b.cacheHits,
		"cache_misses":      b.cacheMisses,
		"cache_hit_rate":    hitRate,
		"reset_time":        b.resetTime,
	}
}

func (b *AIBudget) checkReset() {
	if time.Now().After(b.resetTime) {
		b.used = 0
		b.cacheHits = 0
		b.cacheMisses = 0
		b.resetTime = time.Now().Add(24 * time.Hour)
	}
}
