// Package display renders timelines and statistics for the terminal.
package display

import (
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/ZohaibAyaz01/forensic-timeline-builder/pkg/models"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	createStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	modifyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	accessStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	approxMark  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Render("~")
)

// Renderer writes human-readable timeline views.
type Renderer struct {
	out io.Writer
}

// NewRenderer creates a renderer writing to out.
func NewRenderer(out io.Writer) *Renderer {
	return &Renderer{out: out}
}

// Timeline prints up to limit events, one line each, followed by a note
// when more remain. A limit <= 0 prints everything.
func (r *Renderer) Timeline(events []models.FileEvent, limit int) {
	if len(events) == 0 {
		fmt.Fprintln(r.out, warnStyle.Render("No events match the specified criteria."))
		return
	}

	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, headerStyle.Render(fmt.Sprintf("FORENSIC TIMELINE - %d Events Found", len(events))))
	fmt.Fprintln(r.out)

	shown := events
	if limit > 0 && len(events) > limit {
		shown = events[:limit]
	}

	for _, event := range shown {
		mark := " "
		if event.Approximate {
			mark = approxMark
		}
		fmt.Fprintf(r.out, "[%s]%s %s %-30s %s\n",
			event.Timestamp.Format("2006-01-02 15:04:05"),
			mark,
			eventStyle(event.Type).Render(fmt.Sprintf("%-7s", event.Type)),
			filepath.Base(event.Path),
			dimStyle.Render("("+humanize.Bytes(uint64(event.Size))+")"))
	}

	if len(events) > len(shown) {
		fmt.Fprintln(r.out)
		fmt.Fprintln(r.out, dimStyle.Render(fmt.Sprintf("... and %d more events", len(events)-len(shown))))
	}
}

// Stats prints the aggregate block: time range, duration, total data size
// and the per-type distribution.
func (r *Renderer) Stats(stats *models.TimelineStats) {
	if stats.TotalEvents == 0 {
		return
	}

	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, headerStyle.Render("TIMELINE STATISTICS"))
	fmt.Fprintf(r.out, "Time Range: %s to %s\n",
		stats.Start.Format("2006-01-02 15:04"),
		stats.End.Format("2006-01-02 15:04"))
	fmt.Fprintf(r.out, "Duration: %s\n", FormatDuration(stats.Span))
	fmt.Fprintf(r.out, "Total Data Size: %s\n", humanize.Bytes(uint64(stats.TotalSize)))

	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, "Event Distribution:")
	for _, eventType := range []models.EventType{models.EventCreate, models.EventModify, models.EventAccess} {
		count, ok := stats.Counts[eventType]
		if !ok {
			continue
		}
		fmt.Fprintf(r.out, "  %s: %4d events (%.1f%%)\n",
			eventStyle(eventType).Render(fmt.Sprintf("%-7s", eventType)),
			count,
			stats.Percentages[eventType])
	}
}

// Summary prints the post-scan recap.
func (r *Renderer) Summary(result *models.ScanResult) {
	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, headerStyle.Render("SCAN COMPLETE"))
	fmt.Fprintln(r.out)
	fmt.Fprintf(r.out, "  %s %s\n", dimStyle.Render("Path:    "), result.RootPath)
	fmt.Fprintf(r.out, "  %s %d analyzed / %d total\n", dimStyle.Render("Files:   "), result.Stats.AnalyzedFiles, result.Stats.TotalFiles)
	fmt.Fprintf(r.out, "  %s %d\n", dimStyle.Render("Events:  "), len(result.Events))
	fmt.Fprintf(r.out, "  %s %s\n", dimStyle.Render("Duration:"), FormatDuration(result.Duration))
	if result.Stats.ErrorCount > 0 {
		fmt.Fprintf(r.out, "  %s %s\n", dimStyle.Render("Errors:  "),
			warnStyle.Render(fmt.Sprintf("%d", result.Stats.ErrorCount)))
	}
}

func eventStyle(t models.EventType) lipgloss.Style {
	switch t {
	case models.EventCreate:
		return createStyle
	case models.EventModify:
		return modifyStyle
	case models.EventAccess:
		return accessStyle
	default:
		return dimStyle
	}
}

// FormatDuration formats duration to a human-readable string with max 2 decimal places
func FormatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%.2fms", float64(d.Nanoseconds())/1e6)
	} else if d < time.Minute {
		return fmt.Sprintf("%.2fs", d.Seconds())
	} else if d < time.Hour {
		mins := int(d.Minutes())
		secs := d.Seconds() - float64(mins*60)
		return fmt.Sprintf("%dm%.2fs", mins, secs)
	}
	hours := int(d.Hours())
	mins := int(d.Minutes()) - hours*60
	secs := d.Seconds() - float64(hours*3600) - float64(mins*60)
	return fmt.Sprintf("%dh%dm%.2fs", hours, mins, secs)
}
