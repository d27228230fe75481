//go:build darwin

package filesystem

import (
	"os"
	"syscall"
	"time"
)

// rawTimes extracts creation and access times from FileInfo (macOS).
// HFS+/APFS keep a true birth time.
func rawTimes(info os.FileInfo) (create, access time.Time, approx bool) {
	stat := info.Sys().(*syscall.Stat_t)
	create = time.Unix(stat.Birthtimespec.Sec, stat.Birthtimespec.Nsec)
	access = time.Unix(stat.Atimespec.Sec, stat.Atimespec.Nsec)
	return create, access, false
}
