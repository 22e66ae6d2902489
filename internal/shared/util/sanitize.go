package util

import (
	"path"
	"strings"
)

// SanitizeFileName strips directory components and any character outside
// the storage-safe set. If the result exceeds 255 characters the stem is
// truncated to 250 and the original extension reattached.
func SanitizeFileName(name string) string {
	// Basename only, against path traversal. Windows-style separators too.
	name = strings.ReplaceAll(name, "\\", "/")
	name = path.Base(name)
	if name == "." || name == "/" {
		name = ""
	}

	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z',
			r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9',
			r == '_', r == '.', r == '-', r == ' ':
			b.WriteRune(r)
		}
	}
	name = b.String()

	if len(name) > 255 {
		ext := path.Ext(name)
		stem := strings.TrimSuffix(name, ext)
		if len(stem) > 250 {
			stem = stem[:250]
		}
		name = stem + ext
	}
	return name
}
