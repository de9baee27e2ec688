//go:build !windows

package core

// LongPath is the identity outside Windows.
func LongPath(path string) string {
	return path
}
