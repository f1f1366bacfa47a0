package intelligence

import (
	"sync"

	"github.com/alexanderramin/worklens/internal/domain"
)

// ResultCache memoizes analysis results by dataset content hash, so an
// unchanged upload never reissues the API call across dashboard rerenders.
// Invalidation is explicit: the UI layer drops the entry when a new file
// replaces the dataset.
type ResultCache struct {
	mu      sync.Mutex
	results map[string]*domain.AnalysisResult
}

// NewResultCache creates an empty ResultCache.
func NewResultCache() *ResultCache {
	return &ResultCache{results: make(map[string]*domain.AnalysisResult)}
}

// Get returns the cached result for hash, if any.
func (c *ResultCache) Get(hash string) (*domain.AnalysisResult, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	r, ok := c.results[hash]
	return r, ok
}

// Put stores the result for hash, replacing any previous entry.
func (c *ResultCache) Put(hash string, r *domain.AnalysisResult) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.results[hash] = r
}

// Invalidate removes the entry for hash.
func (c *ResultCache) Invalidate(hash string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.results, hash)
}

// Clear drops all entries.
func (c *ResultCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.results = make(map[string]*domain.AnalysisResult)
}
