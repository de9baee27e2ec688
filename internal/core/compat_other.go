//go:build !windows

package core

import "runtime"

// WindowsVersionString reports the running OS when not on Windows.
func WindowsVersionString() string {
	return runtime.GOOS + " (unsupported target)"
}
