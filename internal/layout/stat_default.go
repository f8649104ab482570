//go:build !linux

package layout

import "os"

func createdTime(info os.FileInfo) int64 {
	return info.ModTime().Unix()
}
