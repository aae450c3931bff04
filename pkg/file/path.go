package file

import (
	"path/filepath"
	"regexp"
	"strings"
)

// trackNamePattern matches the download naming template
// "<title> [<id>].<ext>" and captures the bare title.
var trackNamePattern = regexp.MustCompile(`^(.*?)\s*\[.*?\]\..*$`)

// ReplaceExt swaps the extension of path for ext, adding a leading dot to
// ext when missing. A path without an extension gets ext appended.
func ReplaceExt(path, ext string) string {
	if path == "" {
		return path
	}

	dir := filepath.Dir(path)
	filename := filepath.Base(path)

	lastDot := strings.LastIndex(filename, ".")

	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}

	if lastDot <= 0 {
		return filepath.Join(dir, filename+ext)
	}

	return filepath.Join(dir, filename[:lastDot]+ext)
}

// BaseTitle extracts the title part of a track filename shaped like
// "<title> [<id>].<ext>". Filenames that do not match the template are
// returned unchanged.
func BaseTitle(filename string) string {
	base := filepath.Base(filename)
	if m := trackNamePattern.FindStringSubmatch(base); m != nil {
		return strings.TrimSpace(m[1])
	}
	return base
}
