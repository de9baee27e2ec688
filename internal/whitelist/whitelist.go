// Package whitelist holds wildcard patterns of files the cleaner must never
// count or delete.
package whitelist

import (
	"path/filepath"
	"runtime"
	"strings"

	"github.com/IGLOU-EU/go-wildcard"
)

// Whitelist matches paths against wildcard patterns. A pattern matches when
// it matches either the full path or the file name. A nil *Whitelist
// matches nothing.
type Whitelist struct {
	patterns []string
}

// New returns a whitelist for the given patterns; blank patterns are dropped.
func New(patterns []string) *Whitelist {
	wl := &Whitelist{}
	for _, p := range patterns {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		wl.patterns = append(wl.patterns, fold(filepath.Clean(p)))
	}
	return wl
}

// Len returns the number of patterns.
func (w *Whitelist) Len() int {
	if w == nil {
		return 0
	}
	return len(w.patterns)
}

// IsWhitelisted reports whether path is protected by any pattern.
func (w *Whitelist) IsWhitelisted(path string) bool {
	if w == nil || len(w.patterns) == 0 {
		return false
	}
	full := fold(filepath.Clean(path))
	base := filepath.Base(full)
	for _, p := range w.patterns {
		if wildcard.Match(p, full) || wildcard.Match(p, base) {
			return true
		}
	}
	return false
}

func fold(s string) string {
	if runtime.GOOS == "windows" {
		return strings.ToLower(s)
	}
	return s
}
