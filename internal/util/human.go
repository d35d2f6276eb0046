package util

import (
	"os"
	"strconv"
)

var sizeUnits = []string{"B", "KB", "MB", "GB"}

// ByteSize formats n for log lines with one decimal above a kilobyte,
// e.g. "512 B" or "12.3 KB".
func ByteSize(n int64) string {
	if n < 1024 {
		return strconv.FormatInt(n, 10) + " B"
	}

	f := float64(n)
	unit := 0
	for f >= 1024 && unit < len(sizeUnits)-1 {
		f /= 1024
		unit++
	}

	return strconv.FormatFloat(f, 'f', 1, 64) + " " + sizeUnits[unit]
}

// FileSize returns the formatted size of path, or false when it cannot be
// read yet.
func FileSize(path string) (string, bool) {
	st, err := os.Stat(path)
	if err != nil || st.IsDir() {
		return "", false
	}
	return ByteSize(st.Size()), true
}
