package fs

import (
	"fmt"
	"strings"
)

// CleanupFilename strips characters that are not allowed in file names:
// path separators, shell and Windows specials, tabs and newlines. Spaces
// are kept. Intended for config file names and the like, not for page
// names in a store.
func CleanupFilename(name string) string {
	for _, char := range []string{
		"/", ":", "*", "?", `"`, "<", ">", "|", `\`, "\t", "\n",
	} {
		name = strings.ReplaceAll(name, char, "")
	}
	return name
}

// FormatFileSize returns a human readable label for a byte count, e.g.
// 1230 becomes "1.23kb".
func FormatFileSize(bytes int64) string {
	for _, unit := range []struct {
		size  int64
		label string
	}{
		{1_000_000_000, "Gb"},
		{1_000_000, "Mb"},
		{1_000, "kb"},
	} {
		if bytes >= unit.size {
			size := float64(bytes) / float64(unit.size)
			switch {
			case size < 10:
				return fmt.Sprintf("%.2f%s", size, unit.label)
			case size < 100:
				return fmt.Sprintf("%.1f%s", size, unit.label)
			default:
				return fmt.Sprintf("%.0f%s", size, unit.label)
			}
		}
	}
	return fmt.Sprintf("%db", bytes)
}
