package core

import (
	"path/filepath"
	"strings"
)

// maxPath is the legacy Win32 MAX_PATH limit.
const maxPath = 260

// LongPath adds the \\?\ prefix for paths exceeding MAX_PATH.
func LongPath(path string) string {
	if len(path) >= maxPath && !strings.HasPrefix(path, `\\?\`) {
		return `\\?\` + filepath.Clean(path)
	}
	return path
}
