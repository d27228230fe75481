// Package timeline derives, orders and queries file activity events.
package timeline

import (
	"time"

	"github.com/ZohaibAyaz01/forensic-timeline-builder/pkg/models"
)

// Tolerance windows below which two timestamps count as the same moment.
const (
	// ModifyTolerance suppresses the MODIFY event on files whose
	// modification time is indistinguishable from creation, common for
	// freshly copied files.
	ModifyTolerance = time.Second

	// AccessTolerance suppresses ACCESS events that are an artifact of the
	// scan (or anything else) touching the file moments after it was
	// created or modified.
	AccessTolerance = time.Minute
)

// Derive converts one file's raw metadata into its timeline events:
//
//  1. a CREATE event at the creation time, always;
//  2. a MODIFY event, only if the modification time differs from creation
//     by more than ModifyTolerance;
//  3. an ACCESS event, only if the access time differs from the latest of
//     creation/modification by more than AccessTolerance.
//
// The result holds one to three events in CREATE, MODIFY, ACCESS order.
func Derive(meta *models.FileMetadata) []models.FileEvent {
	events := make([]models.FileEvent, 0, 3)

	events = append(events, models.FileEvent{
		Timestamp:   meta.CreateTime,
		Type:        models.EventCreate,
		Path:        meta.Path,
		Size:        meta.Size,
		Approximate: meta.CreationApprox,
	})

	if absDuration(meta.ModTime.Sub(meta.CreateTime)) > ModifyTolerance {
		events = append(events, models.FileEvent{
			Timestamp: meta.ModTime,
			Type:      models.EventModify,
			Path:      meta.Path,
			Size:      meta.Size,
		})
	}

	latest := meta.CreateTime
	if meta.ModTime.After(latest) {
		latest = meta.ModTime
	}
	if absDuration(meta.AccessTime.Sub(latest)) > AccessTolerance {
		events = append(events, models.FileEvent{
			Timestamp: meta.AccessTime,
			Type:      models.EventAccess,
			Path:      meta.Path,
			Size:      meta.Size,
		})
	}

	return events
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}
