package core

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ZohaibAyaz01/forensic-timeline-builder/internal/config"
	"github.com/ZohaibAyaz01/forensic-timeline-builder/pkg/models"
	"go.uber.org/zap"
)

func testConfig() *config.Config {
	return &config.Config{
		Recursive:     true,
		ProgressEvery: 50,
	}
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}
	return path
}

func TestScanner_MissingRoot(t *testing.T) {
	scanner := NewScanner(testConfig(), zap.NewNop())

	_, err := scanner.Scan(filepath.Join(t.TempDir(), "missing"), true)
	if !errors.Is(err, ErrDirectoryNotFound) {
		t.Errorf("Scan() error = %v, want ErrDirectoryNotFound", err)
	}
}

func TestScanner_RootIsFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "file.txt", "data")

	scanner := NewScanner(testConfig(), zap.NewNop())
	if _, err := scanner.Scan(path, true); !errors.Is(err, ErrDirectoryNotFound) {
		t.Errorf("Scan() error = %v, want ErrDirectoryNotFound", err)
	}
}

func TestScanner_EmptyDirectory(t *testing.T) {
	scanner := NewScanner(testConfig(), zap.NewNop())

	result, err := scanner.Scan(t.TempDir(), true)
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}

	if len(result.Events) != 0 {
		t.Errorf("Events = %d, want 0", len(result.Events))
	}
	if result.Stats.TotalFiles != 0 || result.Stats.ErrorCount != 0 {
		t.Errorf("stats = %+v, want zeros", result.Stats)
	}
}

func TestScanner_TimelineIsSorted(t *testing.T) {
	dir := t.TempDir()
	now := time.Now()
	for i, name := range []string{"one.txt", "two.txt", "three.txt"} {
		path := writeFile(t, dir, name, strings.Repeat("x", 10*(i+1)))
		// Spread modification times so MODIFY events are emitted and
		// interleave with the CREATE events.
		mtime := now.Add(-time.Duration(i+1) * time.Hour)
		if err := os.Chtimes(path, now, mtime); err != nil {
			t.Fatalf("Failed to set times: %v", err)
		}
	}

	scanner := NewScanner(testConfig(), zap.NewNop())
	result, err := scanner.Scan(dir, true)
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}

	if result.Stats.TotalFiles != 3 || result.Stats.AnalyzedFiles != 3 {
		t.Errorf("TotalFiles = %d, AnalyzedFiles = %d, want 3, 3",
			result.Stats.TotalFiles, result.Stats.AnalyzedFiles)
	}
	if result.Stats.TotalSize != 10+20+30 {
		t.Errorf("TotalSize = %d, want 60", result.Stats.TotalSize)
	}
	if len(result.Events) < 3 {
		t.Fatalf("Events = %d, want at least one per file", len(result.Events))
	}
	for i := 0; i < len(result.Events)-1; i++ {
		if result.Events[i].Timestamp.After(result.Events[i+1].Timestamp) {
			t.Errorf("timeline out of order at %d: %v > %v",
				i, result.Events[i].Timestamp, result.Events[i+1].Timestamp)
		}
	}
}

func TestScanner_ErrorIsolation(t *testing.T) {
	dir := t.TempDir()
	for i := 0; i < 10; i++ {
		writeFile(t, dir, "file"+string(rune('0'+i))+".txt", "data")
	}

	scanner := NewScanner(testConfig(), zap.NewNop())
	realRead := scanner.readMeta
	scanner.readMeta = func(path string) (*models.FileMetadata, error) {
		if strings.HasSuffix(path, "file3.txt") {
			return nil, errors.New("permission denied")
		}
		return realRead(path)
	}

	result, err := scanner.Scan(dir, true)
	if err != nil {
		t.Fatalf("Scan() error = %v; a single file failure must not abort the scan", err)
	}

	if result.Stats.TotalFiles != 10 {
		t.Errorf("TotalFiles = %d, want 10", result.Stats.TotalFiles)
	}
	if result.Stats.AnalyzedFiles != 9 {
		t.Errorf("AnalyzedFiles = %d, want 9", result.Stats.AnalyzedFiles)
	}
	if result.Stats.ErrorCount != 1 {
		t.Errorf("ErrorCount = %d, want 1", result.Stats.ErrorCount)
	}
	for _, event := range result.Events {
		if strings.HasSuffix(event.Path, "file3.txt") {
			t.Errorf("failed file leaked into the timeline: %v", event)
		}
	}
}

func TestScanner_NonRecursive(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "top.txt", "data")

	sub := filepath.Join(dir, "sub")
	if err := os.Mkdir(sub, 0755); err != nil {
		t.Fatalf("Failed to create subdirectory: %v", err)
	}
	writeFile(t, sub, "nested.txt", "data")

	scanner := NewScanner(testConfig(), zap.NewNop())

	result, err := scanner.Scan(dir, false)
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if result.Stats.TotalFiles != 1 {
		t.Errorf("non-recursive TotalFiles = %d, want 1", result.Stats.TotalFiles)
	}

	result, err = scanner.Scan(dir, true)
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if result.Stats.TotalFiles != 2 {
		t.Errorf("recursive TotalFiles = %d, want 2", result.Stats.TotalFiles)
	}
}

func TestScanner_ExtensionFilter(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "keep.log", "data")
	writeFile(t, dir, "skip.tmp", "data")

	cfg := testConfig()
	cfg.Extensions = []string{"log"}
	scanner := NewScanner(cfg, zap.NewNop())

	result, err := scanner.Scan(dir, true)
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if result.Stats.TotalFiles != 1 {
		t.Errorf("TotalFiles = %d, want 1", result.Stats.TotalFiles)
	}
	for _, event := range result.Events {
		if !strings.HasSuffix(event.Path, "keep.log") {
			t.Errorf("filtered file leaked into the timeline: %v", event.Path)
		}
	}
}

func TestScanner_ExcludePatterns(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "visible.txt", "data")

	hidden := filepath.Join(dir, ".git")
	if err := os.Mkdir(hidden, 0755); err != nil {
		t.Fatalf("Failed to create directory: %v", err)
	}
	writeFile(t, hidden, "config", "data")

	cfg := testConfig()
	cfg.Exclude = []string{".git"}
	scanner := NewScanner(cfg, zap.NewNop())

	result, err := scanner.Scan(dir, true)
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if result.Stats.TotalFiles != 1 {
		t.Errorf("TotalFiles = %d, want 1", result.Stats.TotalFiles)
	}
}

func TestScanner_ProgressCallback(t *testing.T) {
	dir := t.TempDir()
	for i := 0; i < 5; i++ {
		writeFile(t, dir, "f"+string(rune('0'+i))+".txt", "data")
	}

	cfg := testConfig()
	cfg.ProgressEvery = 2
	scanner := NewScanner(cfg, zap.NewNop())

	var calls []int
	scanner.SetProgressFunc(func(processed int, _ string) {
		calls = append(calls, processed)
	})

	if _, err := scanner.Scan(dir, true); err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if len(calls) != 2 {
		t.Errorf("progress calls = %v, want calls at 2 and 4", calls)
	}
}
