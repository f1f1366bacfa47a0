package intelligence

import (
	"testing"

	"github.com/alexanderramin/worklens/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResultCache_PutGetInvalidate(t *testing.T) {
	cache := NewResultCache()

	_, ok := cache.Get("h1")
	assert.False(t, ok)

	r := &domain.AnalysisResult{TimeColumn: "Hours"}
	cache.Put("h1", r)

	got, ok := cache.Get("h1")
	require.True(t, ok)
	assert.Same(t, r, got)

	cache.Invalidate("h1")
	_, ok = cache.Get("h1")
	assert.False(t, ok)
}

func TestResultCache_Clear(t *testing.T) {
	cache := NewResultCache()
	cache.Put("a", &domain.AnalysisResult{})
	cache.Put("b", &domain.AnalysisResult{})

	cache.Clear()

	_, ok := cache.Get("a")
	assert.False(t, ok)
	_, ok = cache.Get("b")
	assert.False(t, ok)
}
