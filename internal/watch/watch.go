// Package watch turns OS file notifications under a root directory into
// the same timeline events a scan produces, for observing a tree live
// after the initial triage.
package watch

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/ZohaibAyaz01/forensic-timeline-builder/pkg/models"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Monitor watches a directory tree and emits FileEvents for file creations
// and modifications. Removals and renames carry no timestamp of their own
// and are only logged.
type Monitor struct {
	fsw       *fsnotify.Watcher
	logger    *zap.Logger
	root      string
	recursive bool
	exclude   []string

	// Events receives one FileEvent per observed creation/modification.
	// Closed when Start returns.
	Events chan models.FileEvent
}

// NewMonitor creates a Monitor for root. With recursive set, every existing
// subdirectory is watched too, and directories created later are added on
// the fly.
func NewMonitor(root string, recursive bool, exclude []string, logger *zap.Logger) (*Monitor, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	m := &Monitor{
		fsw:       fsw,
		logger:    logger,
		root:      root,
		recursive: recursive,
		exclude:   exclude,
		Events:    make(chan models.FileEvent, 256),
	}

	if err := fsw.Add(root); err != nil {
		fsw.Close()
		return nil, err
	}

	if recursive {
		err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				logger.Warn("cannot watch path", zap.String("path", p), zap.Error(err))
				return nil
			}
			if !d.IsDir() || p == root {
				return nil
			}
			if m.shouldExclude(p) {
				return filepath.SkipDir
			}
			if err := fsw.Add(p); err != nil {
				logger.Warn("cannot watch directory", zap.String("path", p), zap.Error(err))
			}
			return nil
		})
		if err != nil {
			fsw.Close()
			return nil, err
		}
	}

	return m, nil
}

// Start listens for file notifications. It blocks until the context is
// cancelled, then closes Events.
func (m *Monitor) Start(ctx context.Context) {
	defer m.fsw.Close()
	defer close(m.Events)

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-m.fsw.Events:
			if !ok {
				return
			}
			m.handle(ev)
		case err, ok := <-m.fsw.Errors:
			if !ok {
				return
			}
			m.logger.Warn("watch error", zap.Error(err))
		}
	}
}

func (m *Monitor) handle(ev fsnotify.Event) {
	if m.shouldExclude(ev.Name) {
		return
	}

	switch {
	case ev.Op&fsnotify.Create != 0:
		info, err := os.Lstat(ev.Name)
		if err != nil {
			return
		}
		if info.IsDir() {
			if m.recursive {
				if err := m.fsw.Add(ev.Name); err != nil {
					m.logger.Warn("cannot watch new directory", zap.String("path", ev.Name), zap.Error(err))
				}
			}
			return
		}
		if !info.Mode().IsRegular() {
			return
		}
		m.emit(models.EventCreate, ev.Name, info.Size())

	case ev.Op&fsnotify.Write != 0:
		info, err := os.Lstat(ev.Name)
		if err != nil || !info.Mode().IsRegular() {
			return
		}
		m.emit(models.EventModify, ev.Name, info.Size())

	case ev.Op&(fsnotify.Remove|fsnotify.Rename) != 0:
		m.logger.Debug("file removed or renamed", zap.String("path", ev.Name))
	}
}

func (m *Monitor) emit(eventType models.EventType, path string, size int64) {
	event := models.FileEvent{
		Timestamp: time.Now(),
		Type:      eventType,
		Path:      path,
		Size:      size,
	}

	select {
	case m.Events <- event:
	default:
		m.logger.Warn("event buffer full, dropping event", zap.String("path", path))
	}
}

func (m *Monitor) shouldExclude(p string) bool {
	rel, err := filepath.Rel(m.root, p)
	if err != nil {
		rel = p
	}
	rel = filepath.ToSlash(rel)
	base := filepath.Base(p)

	for _, pattern := range m.exclude {
		if ok, err := doublestar.Match(pattern, rel); err == nil && ok {
			return true
		}
		if ok, err := doublestar.Match(pattern, base); err == nil && ok {
			return true
		}
	}
	return false
}
