package models

import "time"

// ScanStatistics contains per-run counters describing coverage and error
// rate of one directory walk. A statistics value is owned by exactly one
// scan and is read-only once the scan returns.
type ScanStatistics struct {
	TotalFiles    int   `json:"total_files"`
	AnalyzedFiles int   `json:"analyzed_files"`
	ErrorCount    int   `json:"error_count"`
	TotalSize     int64 `json:"total_size"`

	// ErrorFiles is a sample of paths that failed, for the report.
	ErrorFiles []string `json:"error_files,omitempty"`
}

// ScanResult is the complete outcome of one directory scan: the sorted
// timeline plus its statistics.
type ScanResult struct {
	StartTime time.Time     `json:"start_time"`
	EndTime   time.Time     `json:"end_time"`
	Duration  time.Duration `json:"duration"`
	RootPath  string        `json:"root_path"`
	Recursive bool          `json:"recursive"`

	// Events is the timeline: every derived event, sorted ascending by
	// timestamp. Equal timestamps keep derivation order.
	Events []FileEvent `json:"events"`

	Stats *ScanStatistics `json:"statistics"`
}

// TimelineStats holds aggregate figures computed over an event sequence.
type TimelineStats struct {
	TotalEvents int                   `json:"total_events"`
	Counts      map[EventType]int     `json:"counts"`
	Percentages map[EventType]float64 `json:"percentages"`

	// TotalSize sums event.Size over every event, so a file contributes
	// once per event it generated. Inherited from the reference tool and
	// kept for report compatibility; do not change to per-file sums.
	TotalSize int64 `json:"total_size"`

	Start time.Time     `json:"start,omitempty"`
	End   time.Time     `json:"end,omitempty"`
	Span  time.Duration `json:"span"`
}
