package file

import "os"

// IsNonEmpty reports whether path exists as a regular file with at least
// one byte of content. Verification checkpoints between pipeline stages
// gate on this.
func IsNonEmpty(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular() && info.Size() > 0
}
