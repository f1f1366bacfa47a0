package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/alexanderramin/worklens/internal/domain"
)

// SQLiteDatasetRepo implements DatasetRepo over an in-memory SQLite table.
// CSV headers are arbitrary user text, so cells live in generated physical
// columns c0..cN and the header maps logical names to positions.
type SQLiteDatasetRepo struct {
	db     *sql.DB
	header []string
}

// NewSQLiteDatasetRepo creates a new SQLiteDatasetRepo.
func NewSQLiteDatasetRepo(db *sql.DB) *SQLiteDatasetRepo {
	return &SQLiteDatasetRepo{db: db}
}

func (r *SQLiteDatasetRepo) Load(ctx context.Context, ds *domain.Dataset) error {
	if len(ds.Header) == 0 {
		return fmt.Errorf("dataset has no header")
	}

	if err := r.Clear(ctx); err != nil {
		return err
	}

	cols := make([]string, len(ds.Header))
	for i := range ds.Header {
		cols[i] = fmt.Sprintf("c%d TEXT", i)
	}
	create := fmt.Sprintf("CREATE TABLE dataset (%s)", strings.Join(cols, ", "))
	if _, err := r.db.ExecContext(ctx, create); err != nil {
		return fmt.Errorf("creating dataset table: %w", err)
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(ds.Header)), ", ")
	insert := fmt.Sprintf("INSERT INTO dataset VALUES (%s)", placeholders)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning load transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, insert)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, row := range ds.Rows {
		args := make([]any, len(ds.Header))
		for i := range args {
			if i < len(row) {
				args[i] = row[i]
			} else {
				args[i] = "" // ragged row, pad with empties
			}
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return fmt.Errorf("inserting dataset row: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing dataset load: %w", err)
	}

	r.header = append([]string(nil), ds.Header...)
	return nil
}

func (r *SQLiteDatasetRepo) DistinctValues(ctx context.Context, column string) ([]string, error) {
	col, err := r.colRef(column)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf("SELECT %s FROM dataset GROUP BY %s ORDER BY MIN(rowid)", col, col)
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing distinct values of %q: %w", column, err)
	}
	defer rows.Close()

	var values []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("scanning distinct value: %w", err)
		}
		values = append(values, v)
	}
	return values, rows.Err()
}

func (r *SQLiteDatasetRepo) Rows(ctx context.Context, filter *Filter) ([][]string, error) {
	if len(r.header) == 0 {
		return nil, fmt.Errorf("no dataset loaded")
	}

	cols := make([]string, len(r.header))
	for i := range cols {
		cols[i] = fmt.Sprintf("c%d", i)
	}

	query := fmt.Sprintf("SELECT %s FROM dataset", strings.Join(cols, ", "))
	where, args, err := r.whereClause(filter)
	if err != nil {
		return nil, err
	}
	query += where + " ORDER BY rowid"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("selecting dataset rows: %w", err)
	}
	defer rows.Close()

	var out [][]string
	for rows.Next() {
		cells := make([]string, len(r.header))
		dest := make([]any, len(cells))
		for i := range cells {
			dest[i] = &cells[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scanning dataset row: %w", err)
		}
		out = append(out, cells)
	}
	return out, rows.Err()
}

func (r *SQLiteDatasetRepo) SumColumn(ctx context.Context, column string, filter *Filter) (float64, error) {
	col, err := r.colRef(column)
	if err != nil {
		return 0, err
	}

	// CAST reads a leading numeric prefix and yields 0 for anything else,
	// which keeps dirty cells from breaking the metric.
	query := fmt.Sprintf("SELECT COALESCE(SUM(CAST(%s AS REAL)), 0) FROM dataset", col)
	where, args, err := r.whereClause(filter)
	if err != nil {
		return 0, err
	}
	query += where

	var sum float64
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&sum); err != nil {
		return 0, fmt.Errorf("summing column %q: %w", column, err)
	}
	return sum, nil
}

func (r *SQLiteDatasetRepo) SeriesByDate(ctx context.Context, dateColumn, timeColumn string, filter *Filter) ([]DatePoint, error) {
	dateCol, err := r.colRef(dateColumn)
	if err != nil {
		return nil, err
	}
	timeCol, err := r.colRef(timeColumn)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(
		"SELECT %s, COALESCE(SUM(CAST(%s AS REAL)), 0) FROM dataset", dateCol, timeCol)
	where, args, err := r.whereClause(filter)
	if err != nil {
		return nil, err
	}
	query += where + fmt.Sprintf(" GROUP BY %s ORDER BY %s", dateCol, dateCol)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("aggregating %q by %q: %w", timeColumn, dateColumn, err)
	}
	defer rows.Close()

	var points []DatePoint
	for rows.Next() {
		var p DatePoint
		if err := rows.Scan(&p.Date, &p.Total); err != nil {
			return nil, fmt.Errorf("scanning date point: %w", err)
		}
		points = append(points, p)
	}
	return points, rows.Err()
}

func (r *SQLiteDatasetRepo) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, "DROP TABLE IF EXISTS dataset"); err != nil {
		return fmt.Errorf("dropping dataset table: %w", err)
	}
	r.header = nil
	return nil
}

// colRef maps a logical header name to its physical column. The first
// occurrence wins when the header repeats a name.
func (r *SQLiteDatasetRepo) colRef(name string) (string, error) {
	for i, h := range r.header {
		if h == name {
			return fmt.Sprintf("c%d", i), nil
		}
	}
	return "", fmt.Errorf("column %q not in dataset", name)
}

func (r *SQLiteDatasetRepo) whereClause(filter *Filter) (string, []any, error) {
	if filter == nil {
		return "", nil, nil
	}
	col, err := r.colRef(filter.Column)
	if err != nil {
		return "", nil, err
	}
	return fmt.Sprintf(" WHERE %s = ?", col), []any{filter.Value}, nil
}
