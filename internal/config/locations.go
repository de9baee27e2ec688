package config

import "path/filepath"

// Locations is the path provider every component resolves well-known
// directories through. DetectLocations fills it from the running system;
// tests build literals pointing into temporary directories.
type Locations struct {
	// LocalAppData is %LOCALAPPDATA% (e.g. C:\Users\me\AppData\Local).
	LocalAppData string

	// RoamingAppData is %APPDATA% (e.g. C:\Users\me\AppData\Roaming).
	RoamingAppData string

	// Temp is the user temporary directory.
	Temp string

	// WindowsDir is the OS installation directory (e.g. C:\Windows).
	WindowsDir string

	// SystemDrive is the root of the volume the OS lives on (e.g. C:\).
	SystemDrive string

	// ProgramDirs lists program installation directories on the system
	// volume (Program Files, Program Files (x86), ProgramData).
	ProgramDirs []string
}

// UpdateCacheDir is the Windows Update download cache.
func (l Locations) UpdateCacheDir() string {
	return l.underWindows("SoftwareDistribution", "Download")
}

// LogsDir is the OS log directory.
func (l Locations) LogsDir() string {
	return l.underWindows("Logs")
}

// PrefetchDir is the prefetch trace directory.
func (l Locations) PrefetchDir() string {
	return l.underWindows("Prefetch")
}

// DriveRoot returns the root of the OS volume, derived from WindowsDir when
// SystemDrive is unset.
func (l Locations) DriveRoot() string {
	if l.SystemDrive != "" {
		return l.SystemDrive
	}
	if l.WindowsDir == "" {
		return ""
	}
	return filepath.Dir(filepath.Clean(l.WindowsDir))
}

// ProtectedDirs returns the program installation directories to guard:
// the configured ones plus the default names on the OS volume.
func (l Locations) ProtectedDirs() []string {
	seen := make(map[string]bool)
	var dirs []string
	add := func(p string) {
		if p == "" {
			return
		}
		p = filepath.Clean(p)
		if !seen[foldCase(p)] {
			seen[foldCase(p)] = true
			dirs = append(dirs, p)
		}
	}
	for _, d := range l.ProgramDirs {
		add(d)
	}
	if l.WindowsDir != "" {
		disk := filepath.Dir(filepath.Clean(l.WindowsDir))
		for _, name := range programFolderNames {
			add(filepath.Join(disk, name))
		}
	}
	return dirs
}

// NeverDeletePaths returns drive-level folders that may never be selected
// themselves. Unlike ProtectedDirs, their subfolders stay selectable.
func (l Locations) NeverDeletePaths() []string {
	root := l.DriveRoot()
	if root == "" || l.WindowsDir == "" {
		return nil
	}
	return []string{
		filepath.Join(root, "Boot"),
		filepath.Join(root, "EFI"),
		filepath.Join(root, "Recovery"),
		filepath.Join(root, "Users"),
	}
}

func (l Locations) underWindows(elem ...string) string {
	if l.WindowsDir == "" {
		return ""
	}
	return filepath.Join(append([]string{l.WindowsDir}, elem...)...)
}

// programFolderNames are the program installation folders found at the root
// of the OS volume.
var programFolderNames = []string{
	"Program Files",
	"Program Files (x86)",
	"ProgramData",
}

// SystemFolderNames are the protected subfolders of the OS directory.
var SystemFolderNames = []string{
	"System32",
	"SysWOW64",
	"WinSxS",
	"assembly",
	"Microsoft.NET",
	"boot",
	"SystemResources",
}
