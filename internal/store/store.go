// Package store persists scan results in a SQLite database so timelines
// can be re-examined without rescanning the evidence tree.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/ZohaibAyaz01/forensic-timeline-builder/pkg/models"
	"go.uber.org/zap"

	_ "modernc.org/sqlite"
)

const insertScanSQL = `INSERT INTO scans (root_path, recursive, start_time, end_time, total_files, analyzed_files, error_count, total_size) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
const insertEventSQL = `INSERT INTO events (scan_id, timestamp, event_type, filepath, size, approximate) VALUES (?, ?, ?, ?, ?, ?)`

// Store is a SQLite-backed archive of scan results.
type Store struct {
	db     *sql.DB
	logger *zap.Logger
}

// ScanSummary is one row of the saved-scan listing.
type ScanSummary struct {
	ID         int64
	RootPath   string
	Recursive  bool
	StartTime  time.Time
	EventCount int
	ErrorCount int
}

// Open opens (creating if needed) the timeline database at path.
func Open(path string, logger *zap.Logger) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open timeline store: %w", err)
	}

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, err
	}
	if err := initSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db, logger: logger}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveScan writes a scan result and all of its events in one transaction
// and returns the new scan id.
func (s *Store) SaveScan(ctx context.Context, result *models.ScanResult) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, insertScanSQL,
		result.RootPath,
		boolToInt(result.Recursive),
		result.StartTime.UnixNano(),
		result.EndTime.UnixNano(),
		result.Stats.TotalFiles,
		result.Stats.AnalyzedFiles,
		result.Stats.ErrorCount,
		result.Stats.TotalSize,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert scan: %w", err)
	}

	scanID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read scan id: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, insertEventSQL)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare event statement: %w", err)
	}
	defer stmt.Close()

	for _, event := range result.Events {
		_, err := stmt.ExecContext(ctx,
			scanID,
			event.Timestamp.UnixNano(),
			string(event.Type),
			event.Path,
			event.Size,
			boolToInt(event.Approximate),
		)
		if err != nil {
			return 0, fmt.Errorf("failed to insert event: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit scan: %w", err)
	}

	s.logger.Info("scan saved",
		zap.Int64("scan_id", scanID),
		zap.Int("events", len(result.Events)))

	return scanID, nil
}

// ListScans returns summaries of all saved scans, newest first.
func (s *Store) ListScans(ctx context.Context) ([]ScanSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT s.id, s.root_path, s.recursive, s.start_time, s.error_count,
		       (SELECT COUNT(*) FROM events e WHERE e.scan_id = s.id)
		FROM scans s
		ORDER BY s.start_time DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list scans: %w", err)
	}
	defer rows.Close()

	var summaries []ScanSummary
	for rows.Next() {
		var sum ScanSummary
		var recursive int
		var start int64
		if err := rows.Scan(&sum.ID, &sum.RootPath, &recursive, &start, &sum.ErrorCount, &sum.EventCount); err != nil {
			return nil, fmt.Errorf("failed to scan summary row: %w", err)
		}
		sum.Recursive = recursive != 0
		sum.StartTime = time.Unix(0, start)
		summaries = append(summaries, sum)
	}

	return summaries, rows.Err()
}

// LoadScan reads one saved scan back, events in timeline order.
func (s *Store) LoadScan(ctx context.Context, scanID int64) (*models.ScanResult, error) {
	result := &models.ScanResult{Stats: &models.ScanStatistics{}}

	var recursive int
	var start, end int64
	err := s.db.QueryRowContext(ctx, `
		SELECT root_path, recursive, start_time, end_time, total_files, analyzed_files, error_count, total_size
		FROM scans WHERE id = ?`, scanID).Scan(
		&result.RootPath, &recursive, &start, &end,
		&result.Stats.TotalFiles, &result.Stats.AnalyzedFiles,
		&result.Stats.ErrorCount, &result.Stats.TotalSize,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("scan not found: %d", scanID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load scan: %w", err)
	}

	result.Recursive = recursive != 0
	result.StartTime = time.Unix(0, start)
	result.EndTime = time.Unix(0, end)
	result.Duration = result.EndTime.Sub(result.StartTime)

	rows, err := s.db.QueryContext(ctx, `
		SELECT timestamp, event_type, filepath, size, approximate
		FROM events WHERE scan_id = ?
		ORDER BY timestamp, id`, scanID)
	if err != nil {
		return nil, fmt.Errorf("failed to load events: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var event models.FileEvent
		var ts int64
		var eventType string
		var approx int
		if err := rows.Scan(&ts, &eventType, &event.Path, &event.Size, &approx); err != nil {
			return nil, fmt.Errorf("failed to scan event row: %w", err)
		}
		event.Timestamp = time.Unix(0, ts)
		event.Type = models.EventType(eventType)
		event.Approximate = approx != 0
		result.Events = append(result.Events, event)
	}

	return result, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
