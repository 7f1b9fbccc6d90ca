package classify

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"
)

// Cache memoizes AI classification results per unique content text for the
// lifetime of one pipeline run. Exhausted-retry failures are cached as the
// empty set too, so one text never triggers more than one AI round per run.
type Cache struct {
	mu    sync.RWMutex
	items map[string][]string
}

// NewCache returns an empty run-scoped cache.
func NewCache() *Cache {
	return &Cache{items: make(map[string][]string)}
}

func key(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

// Get returns the cached themes for text and whether an entry exists. A nil
// slice with ok=true is a valid entry: the AI saw the text and matched
// nothing (or failed and was recorded fail-open).
func (c *Cache) Get(text string) ([]string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	themes, ok := c.items[key(text)]
	return themes, ok
}

// Set stores the themes for text.
func (c *Cache) Set(text string, themes []string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key(text)] = themes
}

// Len reports the number of distinct texts cached.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}
