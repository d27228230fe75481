package export

import (
	"bytes"
	"encoding/csv"
	"os"
	"strconv"
	"time"

	"github.com/ZohaibAyaz01/forensic-timeline-builder/pkg/models"
)

// csvHeader is the fixed row-format header.
var csvHeader = []string{"Timestamp", "Event Type", "File Path", "File Size"}

// ExportCSV writes one header row plus one row per event, in input order.
// Timestamps are RFC 3339 so rows sort lexicographically.
func (e *Exporter) ExportCSV(events []models.FileEvent, filename string) error {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(csvHeader); err != nil {
		return err
	}

	for _, event := range events {
		row := []string{
			event.Timestamp.Format(time.RFC3339Nano),
			string(event.Type),
			event.Path,
			strconv.FormatInt(event.Size, 10),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}

	return os.WriteFile(filename, buf.Bytes(), 0644)
}
