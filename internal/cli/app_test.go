package cli

import (
	"context"
	"testing"

	"github.com/alexanderramin/worklens/internal/db"
	"github.com/alexanderramin/worklens/internal/domain"
	"github.com/alexanderramin/worklens/internal/repository"
	"github.com/alexanderramin/worklens/internal/service"
	"github.com/stretchr/testify/require"
)

// testApp wires real services over an in-memory database. Summaries is
// left nil; tests that need one install a fakeSummaries.
func testApp(t *testing.T) *App {
	t.Helper()

	database, err := db.OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	repo := repository.NewSQLiteDatasetRepo(database)

	return &App{
		Datasets: service.NewDatasetService(repo),
		Metrics:  service.NewMetricsService(repo),
	}
}

// fakeSummaries returns a canned analysis without any model calls.
type fakeSummaries struct {
	result      *domain.AnalysisResult
	mismatch    bool
	err         error
	invalidated []string
}

func (f *fakeSummaries) Summarize(ctx context.Context, ds *domain.Dataset) (*domain.AnalysisResult, bool, error) {
	if f.err != nil {
		return nil, false, f.err
	}
	return f.result, f.mismatch, nil
}

func (f *fakeSummaries) Invalidate(hash string) {
	f.invalidated = append(f.invalidated, hash)
}

// uploadTestDataset stores a small Date/Task/Hours timesheet and
// returns it.
func uploadTestDataset(t *testing.T, app *App) *domain.Dataset {
	t.Helper()

	csv := "Date,Task,Hours\n" +
		"2025-03-01,coding,5\n" +
		"2025-03-01,review,2\n" +
		"2025-03-02,coding,3\n"

	ds, err := app.Datasets.Upload(context.Background(), "test.csv", []byte(csv))
	require.NoError(t, err)
	return ds
}

// testAnalysis is the canned result fakeSummaries usually returns.
func testAnalysis() *domain.AnalysisResult {
	return &domain.AnalysisResult{
		Columns:         []string{"Date", "Task", "Hours"},
		TimeColumn:      "Hours",
		DateColumn:      "Date",
		ActivitySummary: "**Dev**: 8h\n- coding",
	}
}
