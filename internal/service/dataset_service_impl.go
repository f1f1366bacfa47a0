package service

import (
	"context"
	"fmt"

	"github.com/alexanderramin/worklens/internal/domain"
	"github.com/alexanderramin/worklens/internal/ingest"
	"github.com/alexanderramin/worklens/internal/repository"
)

type datasetService struct {
	repo repository.DatasetRepo
}

// NewDatasetService creates a DatasetService over the given repository.
func NewDatasetService(repo repository.DatasetRepo) DatasetService {
	return &datasetService{repo: repo}
}

func (s *datasetService) Upload(ctx context.Context, name string, data []byte) (*domain.Dataset, error) {
	ds, err := ingest.Parse(name, data)
	if err != nil {
		// A broken upload must not leave the previous table queryable.
		s.repo.Clear(ctx)
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}

	if err := s.repo.Load(ctx, ds); err != nil {
		return nil, fmt.Errorf("loading %s: %w", name, err)
	}
	return ds, nil
}

func (s *datasetService) DistinctValues(ctx context.Context, column string) ([]string, error) {
	return s.repo.DistinctValues(ctx, column)
}

func (s *datasetService) Rows(ctx context.Context, filter *repository.Filter) ([][]string, error) {
	return s.repo.Rows(ctx, filter)
}

func (s *datasetService) Clear(ctx context.Context) error {
	return s.repo.Clear(ctx)
}
