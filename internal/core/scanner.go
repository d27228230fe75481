// Package core drives the scan: directory traversal, per-file metadata
// extraction and event derivation, producing one sorted timeline per run.
package core

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ZohaibAyaz01/forensic-timeline-builder/internal/config"
	"github.com/ZohaibAyaz01/forensic-timeline-builder/internal/filesystem"
	"github.com/ZohaibAyaz01/forensic-timeline-builder/internal/timeline"
	"github.com/ZohaibAyaz01/forensic-timeline-builder/pkg/models"
	"go.uber.org/zap"
)

// ErrDirectoryNotFound means the scan root does not resolve to an existing
// directory. The scan never starts.
var ErrDirectoryNotFound = errors.New("directory not found")

// Sample at most this many failed paths into the statistics.
const maxErrorFilesSampled = 100

// ProgressFunc is called periodically during a scan. It is purely
// observational and must not affect results.
type ProgressFunc func(processed int, path string)

// Scanner walks a directory tree and assembles its file activity timeline.
// A scanner may be reused; each Scan call owns its own statistics, so
// separate instances can run concurrently.
type Scanner struct {
	config   *config.Config
	logger   *zap.Logger
	progress ProgressFunc

	readMeta func(path string) (*models.FileMetadata, error)
}

// NewScanner creates a new scanner instance
func NewScanner(cfg *config.Config, logger *zap.Logger) *Scanner {
	return &Scanner{
		config:   cfg,
		logger:   logger,
		readMeta: filesystem.ReadMetadata,
	}
}

// SetProgressFunc sets the progress callback function
func (s *Scanner) SetProgressFunc(fn ProgressFunc) {
	s.progress = fn
}

// Scan traverses root and returns the chronologically sorted timeline plus
// the run's statistics. Individual file failures are counted and skipped;
// only a missing root aborts the scan.
func (s *Scanner) Scan(root string, recursive bool) (*models.ScanResult, error) {
	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrDirectoryNotFound, root)
	}

	s.logger.Info("starting scan",
		zap.String("path", root),
		zap.Bool("recursive", recursive))

	result := &models.ScanResult{
		StartTime: time.Now(),
		RootPath:  root,
		Recursive: recursive,
		Stats:     &models.ScanStatistics{},
	}

	every := s.config.ProgressEvery
	if every <= 0 {
		every = 50
	}

	var events []models.FileEvent
	walker := filesystem.NewWalker(s.config.Exclude, s.logger)

	walkErr := walker.Walk(root, recursive, func(path string, err error) error {
		if err != nil {
			s.recordError(result.Stats, path, err)
			return nil
		}

		if !s.config.ShouldAnalyze(filesystem.GetExtension(path)) {
			return nil
		}

		result.Stats.TotalFiles++

		meta, err := s.readMeta(path)
		if err != nil {
			s.recordError(result.Stats, path, err)
			return nil
		}

		events = append(events, timeline.Derive(meta)...)
		result.Stats.AnalyzedFiles++
		result.Stats.TotalSize += meta.Size

		if s.progress != nil && result.Stats.TotalFiles%every == 0 {
			s.progress(result.Stats.TotalFiles, path)
		}

		return nil
	})
	if walkErr != nil {
		return nil, fmt.Errorf("scan failed: %w", walkErr)
	}

	result.Events = timeline.Assemble(events)
	result.EndTime = time.Now()
	result.Duration = result.EndTime.Sub(result.StartTime)

	s.logger.Info("scan completed",
		zap.Duration("duration", result.Duration),
		zap.Int("events", len(result.Events)),
		zap.Int("files_analyzed", result.Stats.AnalyzedFiles),
		zap.Int("errors", result.Stats.ErrorCount))

	return result, nil
}

// recordError counts a per-file failure without aborting the scan.
func (s *Scanner) recordError(stats *models.ScanStatistics, path string, err error) {
	stats.ErrorCount++
	if len(stats.ErrorFiles) < maxErrorFilesSampled {
		stats.ErrorFiles = append(stats.ErrorFiles, path)
	}
	s.logger.Warn("error accessing file", zap.String("path", path), zap.Error(err))
}
