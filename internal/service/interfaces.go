package service

import (
	"context"

	"github.com/alexanderramin/worklens/internal/domain"
	"github.com/alexanderramin/worklens/internal/repository"
)

// TimeMetrics summarizes time spent over a filtered selection against the
// whole dataset.
type TimeMetrics struct {
	Filtered float64
	Total    float64
	Percent  int // Filtered/Total as a rounded integer percentage
}

// DatasetService manages the session's uploaded table.
type DatasetService interface {
	// Upload parses CSV bytes and replaces the stored dataset. On a parse
	// failure the previous dataset is cleared, so stale analysis state
	// cannot outlive a broken upload.
	Upload(ctx context.Context, name string, data []byte) (*domain.Dataset, error)

	// DistinctValues lists a column's distinct values for the filter picker.
	DistinctValues(ctx context.Context, column string) ([]string, error)

	// Rows returns the (optionally filtered) data rows.
	Rows(ctx context.Context, filter *repository.Filter) ([][]string, error)

	// Clear drops the stored dataset.
	Clear(ctx context.Context) error
}

// SummaryService produces the model-backed analysis for a dataset.
type SummaryService interface {
	// Summarize returns the analysis result and whether the reported
	// columns mismatch the dataset header badly enough to warrant a
	// reupload warning.
	Summarize(ctx context.Context, ds *domain.Dataset) (*domain.AnalysisResult, bool, error)

	// Invalidate drops any memoized result for the given content hash.
	Invalidate(hash string)
}

// MetricsService computes the dashboard's derived numbers and chart data.
type MetricsService interface {
	// TimeMetrics sums timeColumn over the filtered rows and the whole
	// dataset and derives the integer percentage.
	TimeMetrics(ctx context.Context, timeColumn string, filter *repository.Filter) (*TimeMetrics, error)

	// ChartSeries aggregates timeColumn per dateColumn value over the
	// filtered rows for the bar chart.
	ChartSeries(ctx context.Context, dateColumn, timeColumn string, filter *repository.Filter) ([]repository.DatePoint, error)
}
