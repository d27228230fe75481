package models

import "time"

// EventType classifies a timeline entry by the file timestamp it derives from.
type EventType string

const (
	EventCreate EventType = "CREATE"
	EventModify EventType = "MODIFY"
	EventAccess EventType = "ACCESS"
)

// IsValid reports whether t is one of the three known event types.
func (t EventType) IsValid() bool {
	switch t {
	case EventCreate, EventModify, EventAccess:
		return true
	}
	return false
}

// FileEvent is a single timeline entry. It is a frozen snapshot taken at
// scan time; the underlying file may since have changed or been deleted.
type FileEvent struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"event_type"`
	Path      string    `json:"filepath"`
	Size      int64     `json:"size"`

	// Approximate is set on CREATE events when the platform exposes no true
	// birth time and the inode change time was substituted instead.
	Approximate bool `json:"approximate,omitempty"`
}

// FileMetadata holds the raw timestamps and size read for a single file,
// before event derivation.
type FileMetadata struct {
	Path       string
	Size       int64
	CreateTime time.Time
	ModTime    time.Time
	AccessTime time.Time

	// CreationApprox marks CreateTime as a change-time substitute on
	// platforms without a true creation timestamp.
	CreationApprox bool
}
