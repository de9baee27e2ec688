package core

import (
	"fmt"

	"golang.org/x/sys/windows"
)

// WindowsVersionString returns a label such as "Windows 11 (Build 22621)".
// RtlGetNtVersionNumbers is used because it ignores manifest compatibility
// shims, unlike GetVersionEx.
func WindowsVersionString() string {
	major, minor, build := windows.RtlGetNtVersionNumbers()
	build &= 0xFFFF // high bits carry the checked/free build flag

	name := fmt.Sprintf("Windows %d.%d", major, minor)
	switch {
	case major == 10 && build >= 22000:
		name = "Windows 11"
	case major == 10:
		name = "Windows 10"
	case major == 6 && minor == 3:
		name = "Windows 8.1"
	}
	return fmt.Sprintf("%s (Build %d)", name, build)
}
