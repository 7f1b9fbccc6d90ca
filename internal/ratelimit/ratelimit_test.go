package ratelimit

import "testing"

func TestAllowStopsAtLimit(t *testing.T) {
	b := NewAIBudget(2)
	if !b.Allow() || !b.Allow() {
		t.Fatal("first two requests should be allowed")
	}
	if b.Allow() {
		t.Error("third request should exceed the budget")
	}
}

func TestZeroMaxIsUnlimited(t *testing.T) {
	b := NewAIBudget(0)
	for i := 0; i < 100; i++ {
		if !b.Allow() {
			t.Fatalf("request %d denied under unlimited budget", i)
		}
	}
}

func TestStatsTrackHitRate(t *testing.T) {
	b := NewAIBudget(10)
	b.Allow()
	b.RecordCacheHit()
	b.RecordCacheHit()

	stats := b.Stats()
	if stats["ai_requests_used"] != 1 {
		t.Errorf("ai_requests_used = %v", stats["ai_requests_used"])
	}
	if stats["cache_hits"] != 2 || stats["cache_misses"] != 1 {
		t.Errorf("cache counters = %v / %v", stats["cache_hits"], stats["cache_misses"])
	}
	rate, ok := stats["cache_hit_rate"].(float64)
	if !ok || rate < 66 || rate > 67 {
		t.Errorf("cache_hit_rate = %v, want about 66.7", stats["cache_hit_rate"])
	}
}
