package timeline

import (
	"testing"
	"time"

	"github.com/ZohaibAyaz01/forensic-timeline-builder/pkg/models"
)

func mixedTimeline() []models.FileEvent {
	return []models.FileEvent{
		{Timestamp: baseTime, Type: models.EventCreate, Path: "a", Size: 100},
		{Timestamp: baseTime.Add(1 * time.Minute), Type: models.EventModify, Path: "a", Size: 100},
		{Timestamp: baseTime.Add(2 * time.Minute), Type: models.EventCreate, Path: "b", Size: 200},
		{Timestamp: baseTime.Add(3 * time.Minute), Type: models.EventAccess, Path: "a", Size: 100},
		{Timestamp: baseTime.Add(4 * time.Minute), Type: models.EventModify, Path: "b", Size: 200},
	}
}

func TestFilter_ByType(t *testing.T) {
	events := mixedTimeline()

	filtered := Filter{Type: models.EventModify}.Apply(events)

	if len(filtered) != 2 {
		t.Fatalf("got %d MODIFY events, want 2", len(filtered))
	}
	for _, event := range filtered {
		if event.Type != models.EventModify {
			t.Errorf("unexpected event type %v", event.Type)
		}
	}
	// Original relative order preserved.
	if filtered[0].Path != "a" || filtered[1].Path != "b" {
		t.Errorf("order not preserved: %v %v", filtered[0].Path, filtered[1].Path)
	}

	// Count must match the aggregate bucket on the unfiltered timeline.
	stats := Aggregate(events)
	if stats.Counts[models.EventModify] != len(filtered) {
		t.Errorf("filter count %d != aggregate bucket %d",
			len(filtered), stats.Counts[models.EventModify])
	}
}

func TestFilter_TimeRange(t *testing.T) {
	events := mixedTimeline()

	tests := []struct {
		name   string
		filter Filter
		want   int
	}{
		{"no constraints", Filter{}, 5},
		{"start only", Filter{Start: baseTime.Add(2 * time.Minute)}, 3},
		{"end only", Filter{End: baseTime.Add(2 * time.Minute)}, 3},
		{"start and end", Filter{Start: baseTime.Add(1 * time.Minute), End: baseTime.Add(3 * time.Minute)}, 3},
		{"bounds are inclusive", Filter{Start: baseTime, End: baseTime}, 1},
		{"type and range", Filter{Type: models.EventCreate, End: baseTime.Add(1 * time.Minute)}, 1},
		{"empty window", Filter{Start: baseTime.Add(time.Hour)}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.filter.Apply(events); len(got) != tt.want {
				t.Errorf("Apply() returned %d events, want %d", len(got), tt.want)
			}
		})
	}
}

func TestAggregate(t *testing.T) {
	events := mixedTimeline()
	stats := Aggregate(events)

	if stats.TotalEvents != 5 {
		t.Errorf("TotalEvents = %d, want 5", stats.TotalEvents)
	}
	if stats.Counts[models.EventCreate] != 2 ||
		stats.Counts[models.EventModify] != 2 ||
		stats.Counts[models.EventAccess] != 1 {
		t.Errorf("unexpected counts: %v", stats.Counts)
	}
	if got := stats.Percentages[models.EventAccess]; got != 20 {
		t.Errorf("ACCESS percentage = %v, want 20", got)
	}

	// Size is summed once per event, so file "a" (three events, 100 bytes)
	// contributes 300 and file "b" (two events, 200 bytes) contributes 400.
	if stats.TotalSize != 700 {
		t.Errorf("TotalSize = %d, want 700", stats.TotalSize)
	}

	if stats.Span != 4*time.Minute {
		t.Errorf("Span = %v, want 4m", stats.Span)
	}
	if !stats.Start.Equal(baseTime) || !stats.End.Equal(baseTime.Add(4*time.Minute)) {
		t.Errorf("range = %v..%v", stats.Start, stats.End)
	}
}

func TestAggregate_Empty(t *testing.T) {
	stats := Aggregate(nil)

	if stats.TotalEvents != 0 {
		t.Errorf("TotalEvents = %d, want 0", stats.TotalEvents)
	}
	if len(stats.Counts) != 0 || len(stats.Percentages) != 0 {
		t.Errorf("counts/percentages not empty: %v %v", stats.Counts, stats.Percentages)
	}
	if stats.TotalSize != 0 || stats.Span != 0 {
		t.Errorf("TotalSize = %d, Span = %v, want zeros", stats.TotalSize, stats.Span)
	}
}
