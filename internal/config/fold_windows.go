package config

import "strings"

// foldCase normalizes a path for comparison on a case-insensitive filesystem.
func foldCase(p string) string {
	return strings.ToLower(p)
}
