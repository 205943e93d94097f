package fsutils

import "strconv"

var binaryUnits = []string{"KiB", "MiB", "GiB", "TiB", "PiB"}

// GetSizeShortText returns a human readable size with a binary prefix,
// rounded to the nearest integer, e.g. "10 B" or "4 KiB".
func GetSizeShortText(size int64) string {
	const unit = 1024
	if size < unit {
		return strconv.FormatInt(size, 10) + " B"
	}
	last := len(binaryUnits) - 1
	div, exp := int64(unit), 0
	for n := size / unit; n >= unit && exp < last; n /= unit {
		div *= unit
		exp++
	}
	// Rounding to nearest
	val := (size + div/2) / div
	// If rounding up pushes it to the next unit
	if val >= unit && exp < last {
		val /= unit
		exp++
	}
	return strconv.FormatInt(val, 10) + " " + binaryUnits[exp]
}
