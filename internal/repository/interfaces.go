package repository

import (
	"context"

	"github.com/alexanderramin/worklens/internal/domain"
)

// Filter selects rows whose column exactly equals value. A nil *Filter
// means the whole dataset.
type Filter struct {
	Column string
	Value  string
}

// DatePoint is one aggregated bar in the time-by-date chart.
type DatePoint struct {
	Date  string
	Total float64
}

// DatasetRepo holds the uploaded table for the current session and answers
// the dashboard's filtering and aggregation queries.
type DatasetRepo interface {
	// Load replaces the stored table with the dataset's rows.
	Load(ctx context.Context, ds *domain.Dataset) error

	// DistinctValues lists a column's distinct values in first-appearance order.
	DistinctValues(ctx context.Context, column string) ([]string, error)

	// Rows returns the (optionally filtered) data rows in upload order.
	Rows(ctx context.Context, filter *Filter) ([][]string, error)

	// SumColumn sums a column over the (optionally filtered) rows, reading
	// each cell as a number and treating non-numeric cells as zero.
	SumColumn(ctx context.Context, column string, filter *Filter) (float64, error)

	// SeriesByDate sums timeColumn per distinct dateColumn value over the
	// (optionally filtered) rows, ordered by date.
	SeriesByDate(ctx context.Context, dateColumn, timeColumn string, filter *Filter) ([]DatePoint, error)

	// Clear drops the stored table.
	Clear(ctx context.Context) error
}
