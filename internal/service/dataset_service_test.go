package service

import (
	"context"
	"testing"

	"github.com/alexanderramin/worklens/internal/db"
	"github.com/alexanderramin/worklens/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDatasetService(t *testing.T) DatasetService {
	t.Helper()

	database, err := db.OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	return NewDatasetService(repository.NewSQLiteDatasetRepo(database))
}

func TestDatasetService_Upload(t *testing.T) {
	svc := newDatasetService(t)
	ctx := context.Background()

	ds, err := svc.Upload(ctx, "timesheet.csv", []byte("Date,Task,Hours\n2025-03-01,coding,5\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"Date", "Task", "Hours"}, ds.Header)

	rows, err := svc.Rows(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestDatasetService_Upload_FailureClearsPriorDataset(t *testing.T) {
	svc := newDatasetService(t)
	ctx := context.Background()

	_, err := svc.Upload(ctx, "good.csv", []byte("Task,Hours\ncoding,5\n"))
	require.NoError(t, err)

	_, err = svc.Upload(ctx, "bad.csv", []byte("a,b\n\"unterminated"))
	require.Error(t, err)

	_, err = svc.Rows(ctx, nil)
	assert.Error(t, err, "previous table must be gone after a failed upload")
}

func TestDatasetService_DistinctValues(t *testing.T) {
	svc := newDatasetService(t)
	ctx := context.Background()

	_, err := svc.Upload(ctx, "t.csv", []byte("Task,Hours\ncoding,5\nreview,2\ncoding,3\n"))
	require.NoError(t, err)

	values, err := svc.DistinctValues(ctx, "Task")
	require.NoError(t, err)
	assert.Equal(t, []string{"coding", "review"}, values)
}
