//go:build !windows

package config

import "os"

// DetectLocations maps the per-user directories onto their XDG equivalents.
// OS-level locations stay empty: the system categories and the OS folder
// rules only apply on Windows.
func DetectLocations() Locations {
	locs := Locations{
		Temp:        os.TempDir(),
		SystemDrive: "/",
	}
	if dir, err := os.UserCacheDir(); err == nil {
		locs.LocalAppData = dir
	}
	if dir, err := os.UserConfigDir(); err == nil {
		locs.RoamingAppData = dir
	}
	return locs
}
