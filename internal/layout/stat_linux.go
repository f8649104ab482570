//go:build linux

package layout

import (
	"os"
	"syscall"
)

// createdTime returns the inode change time, the closest analog to a
// creation timestamp available through stat on Linux.
func createdTime(info os.FileInfo) int64 {
	if st, ok := info.Sys().(*syscall.Stat_t); ok {
		return st.Ctim.Sec
	}
	return info.ModTime().Unix()
}
