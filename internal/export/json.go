package export

import (
	"encoding/json"
	"os"
	"time"

	"github.com/ZohaibAyaz01/forensic-timeline-builder/pkg/models"
)

// Document is the document-format export envelope.
type Document struct {
	ExportTimestamp time.Time          `json:"export_timestamp"`
	TotalEvents     int                `json:"total_events"`
	Events          []models.FileEvent `json:"events"`
}

// ExportJSON writes the full event sequence as a single JSON document,
// preserving input order.
func (e *Exporter) ExportJSON(events []models.FileEvent, filename string) error {
	if events == nil {
		events = []models.FileEvent{}
	}

	doc := &Document{
		ExportTimestamp: time.Now(),
		TotalEvents:     len(events),
		Events:          events,
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(filename, data, 0644)
}
