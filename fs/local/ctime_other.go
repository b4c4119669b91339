//go:build !linux

package local

import (
	"os"
	"time"
)

// changeTime falls back to the modification time where the stat result does
// not carry a change time portably.
func changeTime(fi os.FileInfo) time.Time {
	return fi.ModTime()
}
