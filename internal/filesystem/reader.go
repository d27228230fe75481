package filesystem

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ZohaibAyaz01/forensic-timeline-builder/pkg/models"
)

// ReadMetadata stats a single file and returns its raw timestamp and size
// metadata. It never reads file content.
//
// Creation time is platform-dependent: where the OS exposes a true birth
// time (darwin, windows) it is used as-is; otherwise the inode change time
// is substituted and CreationApprox is set.
func ReadMetadata(path string) (*models.FileMetadata, error) {
	info, err := os.Lstat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	create, access, approx := rawTimes(info)

	return &models.FileMetadata{
		Path:           path,
		Size:           info.Size(),
		CreateTime:     create,
		ModTime:        info.ModTime(),
		AccessTime:     access,
		CreationApprox: approx,
	}, nil
}

// GetExtension returns the file extension without dot
func GetExtension(path string) string {
	ext := filepath.Ext(path)
	if len(ext) > 0 && ext[0] == '.' {
		return ext[1:]
	}
	return ext
}
