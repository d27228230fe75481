//go:build linux

package filesystem

import (
	"os"
	"syscall"
	"time"
)

// rawTimes extracts creation and access times from FileInfo (Linux).
// Linux exposes no birth time through stat, so the inode change time is the
// closest available substitute for creation.
func rawTimes(info os.FileInfo) (create, access time.Time, approx bool) {
	stat := info.Sys().(*syscall.Stat_t)
	create = time.Unix(stat.Ctim.Sec, stat.Ctim.Nsec)
	access = time.Unix(stat.Atim.Sec, stat.Atim.Nsec)
	return create, access, true
}
