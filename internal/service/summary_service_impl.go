package service

import (
	"context"

	"github.com/alexanderramin/worklens/internal/domain"
	"github.com/alexanderramin/worklens/internal/intelligence"
)

type summaryService struct {
	analysis intelligence.AnalysisService
	cache    *intelligence.ResultCache
}

// NewSummaryService creates a SummaryService over the analysis service and
// its result cache.
func NewSummaryService(analysis intelligence.AnalysisService, cache *intelligence.ResultCache) SummaryService {
	return &summaryService{analysis: analysis, cache: cache}
}

func (s *summaryService) Summarize(ctx context.Context, ds *domain.Dataset) (*domain.AnalysisResult, bool, error) {
	result, err := s.analysis.Analyze(ctx, ds)
	if err != nil {
		return nil, false, err
	}

	mismatch := intelligence.HeaderMismatch(result.Columns, ds.Header)
	return result, mismatch, nil
}

func (s *summaryService) Invalidate(hash string) {
	s.cache.Invalidate(hash)
}
