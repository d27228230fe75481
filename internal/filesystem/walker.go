package filesystem

import (
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"go.uber.org/zap"
)

// VisitFunc is called once per regular file found during a walk. For paths
// that could not be entered (unreadable subdirectory, vanished entry), it is
// called with the error instead so the caller can count it.
type VisitFunc func(filePath string, err error) error

// Walker enumerates regular files under a root directory. Directories,
// symbolic links and other irregular entries never reach the callback.
type Walker struct {
	logger  *zap.Logger
	exclude []string
}

// NewWalker creates a walker. Exclude entries are doublestar globs matched
// against both the root-relative path and the base name.
func NewWalker(exclude []string, logger *zap.Logger) *Walker {
	return &Walker{
		logger:  logger,
		exclude: exclude,
	}
}

// Walk visits files under root, recursively or one level only. Per-entry
// errors below the root are reported through the callback and the walk
// continues; only a failure on the root itself aborts.
func (w *Walker) Walk(root string, recursive bool, visit VisitFunc) error {
	if recursive {
		return w.walkTree(root, visit)
	}
	return w.walkLevel(root, visit)
}

func (w *Walker) walkTree(root string, visit VisitFunc) error {
	return filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if p == root {
				return err
			}
			w.logger.Warn("error accessing path", zap.String("path", p), zap.Error(err))
			if visitErr := visit(p, err); visitErr != nil {
				return visitErr
			}
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		rel, relErr := filepath.Rel(root, p)
		if relErr != nil {
			rel = p
		}

		if d.IsDir() {
			if p != root && w.shouldExclude(rel) {
				w.logger.Debug("skipping excluded directory", zap.String("path", rel))
				return filepath.SkipDir
			}
			return nil
		}

		if !d.Type().IsRegular() || w.shouldExclude(rel) {
			return nil
		}

		return visit(p, nil)
	})
}

func (w *Walker) walkLevel(root string, visit VisitFunc) error {
	entries, err := os.ReadDir(root)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		if !entry.Type().IsRegular() || w.shouldExclude(entry.Name()) {
			continue
		}
		if err := visit(filepath.Join(root, entry.Name()), nil); err != nil {
			return err
		}
	}

	return nil
}

// shouldExclude matches a root-relative path against the exclude globs.
func (w *Walker) shouldExclude(rel string) bool {
	rel = filepath.ToSlash(rel)
	base := path.Base(rel)

	for _, pattern := range w.exclude {
		if ok, err := doublestar.Match(pattern, rel); err == nil && ok {
			return true
		}
		if ok, err := doublestar.Match(pattern, base); err == nil && ok {
			return true
		}
	}

	return false
}
