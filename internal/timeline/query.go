package timeline

import (
	"time"

	"github.com/ZohaibAyaz01/forensic-timeline-builder/pkg/models"
)

// Filter selects events from a timeline. Zero-valued fields impose no
// constraint: an empty Type matches every event type, zero Start/End leave
// that bound open.
type Filter struct {
	Type  models.EventType
	Start time.Time
	End   time.Time
}

// Apply returns the events matching every supplied predicate, in their
// original order. The input is never modified.
func (f Filter) Apply(events []models.FileEvent) []models.FileEvent {
	filtered := make([]models.FileEvent, 0, len(events))

	for _, event := range events {
		if f.Type != "" && event.Type != f.Type {
			continue
		}
		if !f.Start.IsZero() && event.Timestamp.Before(f.Start) {
			continue
		}
		if !f.End.IsZero() && event.Timestamp.After(f.End) {
			continue
		}
		filtered = append(filtered, event)
	}

	return filtered
}

// Aggregate computes summary statistics over an event sequence: per-type
// counts and percentages, total size and time span. The span is taken over
// the sequence as given and is only meaningful for chronologically ordered
// input.
//
// TotalSize sums Size over every event, so a file contributes once per
// event it generated. This matches the reference tool's reports and is kept
// for compatibility even though it over-counts multi-event files.
func Aggregate(events []models.FileEvent) *models.TimelineStats {
	stats := &models.TimelineStats{
		TotalEvents: len(events),
		Counts:      make(map[models.EventType]int),
		Percentages: make(map[models.EventType]float64),
	}

	if len(events) == 0 {
		return stats
	}

	for _, event := range events {
		stats.Counts[event.Type]++
		stats.TotalSize += event.Size
	}

	for eventType, count := range stats.Counts {
		stats.Percentages[eventType] = float64(count) / float64(len(events)) * 100
	}

	stats.Start = events[0].Timestamp
	stats.End = events[len(events)-1].Timestamp
	stats.Span = stats.End.Sub(stats.Start)

	return stats
}
