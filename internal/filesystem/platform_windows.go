//go:build windows

package filesystem

import (
	"os"
	"syscall"
	"time"
)

// rawTimes extracts creation and access times from FileInfo (Windows).
func rawTimes(info os.FileInfo) (create, access time.Time, approx bool) {
	stat := info.Sys().(*syscall.Win32FileAttributeData)
	create = time.Unix(0, stat.CreationTime.Nanoseconds())
	access = time.Unix(0, stat.LastAccessTime.Nanoseconds())
	return create, access, false
}
