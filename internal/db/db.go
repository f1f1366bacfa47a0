package db

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// OpenMemory opens an in-memory SQLite database for the session's dataset.
// Nothing is persisted across sessions: the database dies with the process.
func OpenMemory() (*sql.DB, error) {
	database, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("opening in-memory database: %w", err)
	}

	// An in-memory SQLite database exists per connection; pin the pool to a
	// single connection so every query sees the same data.
	database.SetMaxOpenConns(1)

	return database, nil
}
