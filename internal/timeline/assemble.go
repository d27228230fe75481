package timeline

import (
	"sort"

	"github.com/ZohaibAyaz01/forensic-timeline-builder/pkg/models"
)

// Assemble merges derived events into one chronologically sorted timeline.
// The input is not modified. The sort is stable: events with equal
// timestamps keep their derivation order (file discovery order, then
// CREATE, MODIFY, ACCESS for the same file).
func Assemble(events []models.FileEvent) []models.FileEvent {
	sorted := make([]models.FileEvent, len(events))
	copy(sorted, events)

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.Before(sorted[j].Timestamp)
	})

	return sorted
}
