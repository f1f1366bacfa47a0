package intelligence

import (
	"context"
	"fmt"
	"io"

	"github.com/alexanderramin/worklens/internal/domain"
	"github.com/alexanderramin/worklens/internal/ingest"
	"github.com/alexanderramin/worklens/internal/llm"
)

// AnalysisService asks the language model to classify the timesheet's
// columns and summarize its activities.
type AnalysisService interface {
	// Analyze returns the structured analysis for the dataset. A transport
	// or API failure is returned as an error; an unparseable model response
	// is recovered locally into the empty result with a logged diagnostic.
	Analyze(ctx context.Context, ds *domain.Dataset) (*domain.AnalysisResult, error)
}

type analysisService struct {
	client llm.Client
	cache  *ResultCache
	diag   io.Writer // extraction diagnostics; never surfaced to the user
}

// NewAnalysisService creates an AnalysisService backed by an LLM client.
// Results are memoized in cache by dataset content hash. diag may be nil.
func NewAnalysisService(client llm.Client, cache *ResultCache, diag io.Writer) AnalysisService {
	if cache == nil {
		cache = NewResultCache()
	}
	if diag == nil {
		diag = io.Discard
	}
	return &analysisService{client: client, cache: cache, diag: diag}
}

func (s *analysisService) Analyze(ctx context.Context, ds *domain.Dataset) (*domain.AnalysisResult, error) {
	if cached, ok := s.cache.Get(ds.Hash); ok {
		return cached, nil
	}

	prompt := BuildAnalysisPrompt(ingest.Serialize(ds))

	text, err := s.client.Generate(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("summarizing timesheet: %w", err)
	}

	result, err := ExtractAnalysis(text)
	if err != nil {
		// Local recovery: an empty result renders as "no summary", not a crash.
		fmt.Fprintf(s.diag, "worklens: analysis extraction failed: %v\n", err)
	}

	s.cache.Put(ds.Hash, &result)
	return &result, nil
}
