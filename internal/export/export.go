// Package export serializes timelines to row-oriented (CSV) and
// document-oriented (JSON) files.
package export

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/ZohaibAyaz01/forensic-timeline-builder/pkg/models"
	"go.uber.org/zap"
)

// Exporter writes event sequences to structured files. Each call is
// all-or-nothing: the payload is assembled in memory and written in one
// shot, so a failure never leaves the in-memory timeline or a previously
// exported file in a mixed state.
type Exporter struct {
	logger *zap.Logger
}

// NewExporter creates a new exporter
func NewExporter(logger *zap.Logger) *Exporter {
	return &Exporter{logger: logger}
}

// Export dispatches on format ("csv" or "json"). An empty outputFile gets a
// timestamped default name. Returns the absolute path written.
func (e *Exporter) Export(events []models.FileEvent, format, outputFile string) (string, error) {
	if outputFile == "" {
		stamp := time.Now().Format("20060102_150405")
		switch format {
		case "csv":
			outputFile = fmt.Sprintf("timeline_%s.csv", stamp)
		case "json":
			outputFile = fmt.Sprintf("timeline_%s.json", stamp)
		default:
			return "", fmt.Errorf("unknown export format: %s", format)
		}
	}

	e.logger.Info("exporting timeline",
		zap.String("format", format),
		zap.String("output", outputFile),
		zap.Int("events", len(events)))

	var err error
	switch format {
	case "csv":
		err = e.ExportCSV(events, outputFile)
	case "json":
		err = e.ExportJSON(events, outputFile)
	default:
		return "", fmt.Errorf("unknown export format: %s", format)
	}
	if err != nil {
		return "", fmt.Errorf("failed to export %s timeline: %w", format, err)
	}

	absPath, _ := filepath.Abs(outputFile)
	return absPath, nil
}
