package service

import (
	"context"
	"math"

	"github.com/alexanderramin/worklens/internal/repository"
)

type metricsService struct {
	repo repository.DatasetRepo
}

// NewMetricsService creates a MetricsService over the given repository.
func NewMetricsService(repo repository.DatasetRepo) MetricsService {
	return &metricsService{repo: repo}
}

func (s *metricsService) TimeMetrics(ctx context.Context, timeColumn string, filter *repository.Filter) (*TimeMetrics, error) {
	filtered, err := s.repo.SumColumn(ctx, timeColumn, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.repo.SumColumn(ctx, timeColumn, nil)
	if err != nil {
		return nil, err
	}

	return &TimeMetrics{
		Filtered: filtered,
		Total:    total,
		Percent:  percentage(filtered, total),
	}, nil
}

func (s *metricsService) ChartSeries(ctx context.Context, dateColumn, timeColumn string, filter *repository.Filter) ([]repository.DatePoint, error) {
	return s.repo.SeriesByDate(ctx, dateColumn, timeColumn, filter)
}

// percentage rounds half away from zero: 2.5 becomes 3. A zero total means
// a degenerate dataset and yields 0 rather than NaN.
func percentage(part, total float64) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(part / total * 100))
}
