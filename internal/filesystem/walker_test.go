package filesystem

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"go.uber.org/zap"
)

func buildTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()

	files := []string{
		"top.txt",
		"sub/nested.txt",
		"sub/deeper/leaf.log",
		"node_modules/pkg/index.js",
	}
	for _, f := range files {
		path := filepath.Join(root, f)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("Failed to create directory: %v", err)
		}
		if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
			t.Fatalf("Failed to create file: %v", err)
		}
	}
	return root
}

func collect(t *testing.T, w *Walker, root string, recursive bool) []string {
	t.Helper()
	var visited []string
	err := w.Walk(root, recursive, func(path string, err error) error {
		if err != nil {
			t.Errorf("unexpected visit error for %s: %v", path, err)
			return nil
		}
		rel, _ := filepath.Rel(root, path)
		visited = append(visited, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		t.Fatalf("Walk() error = %v", err)
	}
	sort.Strings(visited)
	return visited
}

func TestWalker_Recursive(t *testing.T) {
	root := buildTree(t)
	w := NewWalker(nil, zap.NewNop())

	got := collect(t, w, root, true)
	want := []string{
		"node_modules/pkg/index.js",
		"sub/deeper/leaf.log",
		"sub/nested.txt",
		"top.txt",
	}
	if len(got) != len(want) {
		t.Fatalf("visited %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("visited[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestWalker_SingleLevel(t *testing.T) {
	root := buildTree(t)
	w := NewWalker(nil, zap.NewNop())

	got := collect(t, w, root, false)
	if len(got) != 1 || got[0] != "top.txt" {
		t.Errorf("visited %v, want [top.txt]", got)
	}
}

func TestWalker_Exclude(t *testing.T) {
	root := buildTree(t)

	tests := []struct {
		name    string
		exclude []string
		want    int
	}{
		{"directory name", []string{"node_modules"}, 3},
		{"glob on path", []string{"sub/**"}, 2},
		{"file glob", []string{"*.log"}, 3},
		{"nothing", nil, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := NewWalker(tt.exclude, zap.NewNop())
			got := collect(t, w, root, true)
			if len(got) != tt.want {
				t.Errorf("visited %v, want %d files", got, tt.want)
			}
		})
	}
}

func TestWalker_SkipsSymlinks(t *testing.T) {
	root := t.TempDir()
	target := filepath.Join(root, "real.txt")
	if err := os.WriteFile(target, []byte("x"), 0644); err != nil {
		t.Fatalf("Failed to create file: %v", err)
	}
	if err := os.Symlink(target, filepath.Join(root, "link.txt")); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	w := NewWalker(nil, zap.NewNop())
	got := collect(t, w, root, true)
	if len(got) != 1 || got[0] != "real.txt" {
		t.Errorf("visited %v, want [real.txt]", got)
	}
}

func TestWalker_MissingRoot(t *testing.T) {
	w := NewWalker(nil, zap.NewNop())
	err := w.Walk(filepath.Join(t.TempDir(), "missing"), false, func(string, error) error {
		t.Error("callback should not run for a missing root")
		return nil
	})
	if err == nil {
		t.Error("Walk() expected error for missing root")
	}
}
