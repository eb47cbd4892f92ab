//go:build !linux

package scanner

import (
	"os"
	"time"
)

// creationTime falls back to the modification time where birth time is not
// exposed through x/sys.
func creationTime(path string) time.Time {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}
	}
	return info.ModTime()
}
