// Package location normalizes user supplied source locations into afs URLs.
package location

import (
	"path/filepath"
	"strings"
)

// URL returns location unchanged when it already carries a scheme; plain
// paths (relative or absolute, "~" expanded by the caller) become absolute
// file paths so they resolve against the working directory.
func URL(location string) string {
	location = strings.TrimSpace(location)
	if location == "" || strings.Contains(location, "://") {
		return location
	}
	if abs, err := filepath.Abs(location); err == nil {
		return abs
	}
	return location
}
