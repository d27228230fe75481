package store

import (
	"database/sql"
	"fmt"
)

const scansTableDDL = `
CREATE TABLE IF NOT EXISTS scans (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    root_path TEXT NOT NULL,
    recursive INTEGER NOT NULL,
    start_time INTEGER NOT NULL,
    end_time INTEGER NOT NULL,
    total_files INTEGER NOT NULL,
    analyzed_files INTEGER NOT NULL,
    error_count INTEGER NOT NULL,
    total_size INTEGER NOT NULL
);
`

const eventsTableDDL = `
CREATE TABLE IF NOT EXISTS events (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    scan_id INTEGER NOT NULL REFERENCES scans(id) ON DELETE CASCADE,
    timestamp INTEGER NOT NULL,
    event_type TEXT NOT NULL,
    filepath TEXT NOT NULL,
    size INTEGER NOT NULL,
    approximate INTEGER NOT NULL DEFAULT 0
);
`

const eventsScanIndexDDL = `CREATE INDEX IF NOT EXISTS idx_events_scan ON events(scan_id, timestamp, id);`

// initSchema creates all tables in the database.
func initSchema(db *sql.DB) error {
	ddls := []string{
		scansTableDDL,
		eventsTableDDL,
		eventsScanIndexDDL,
	}

	for _, ddl := range ddls {
		if _, err := db.Exec(ddl); err != nil {
			return fmt.Errorf("failed to execute DDL: %w", err)
		}
	}

	return nil
}

// applyPragmas configures SQLite for batched timeline writes.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA temp_store = MEMORY",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to apply pragma %q: %w", pragma, err)
		}
	}

	return nil
}
