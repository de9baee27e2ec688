package config

import (
	"os"
	"path/filepath"

	"golang.org/x/sys/windows"
	"golang.org/x/sys/windows/registry"
)

const currentVersionKey = `SOFTWARE\Microsoft\Windows\CurrentVersion`

// DetectLocations resolves the well-known directories of the current user
// and the OS volume. Known-folder and registry lookups come first;
// environment variables and the stock C:\ layout are fallbacks.
func DetectLocations() Locations {
	winDir := windowsDir()
	drive := systemDrive(winDir)

	locs := Locations{
		LocalAppData:   knownFolder(windows.FOLDERID_LocalAppData, "LOCALAPPDATA"),
		RoamingAppData: knownFolder(windows.FOLDERID_RoamingAppData, "APPDATA"),
		Temp:           os.TempDir(),
		WindowsDir:     winDir,
		SystemDrive:    drive,
	}

	pf := readRegistryPath(currentVersionKey, "ProgramFilesDir")
	if pf == "" {
		pf = envOr("PROGRAMFILES", filepath.Join(drive, "Program Files"))
	}
	pf86 := readRegistryPath(currentVersionKey, "ProgramFilesDir (x86)")
	if pf86 == "" {
		pf86 = envOr("PROGRAMFILES(X86)", filepath.Join(drive, "Program Files (x86)"))
	}
	pd := envOr("PROGRAMDATA", filepath.Join(drive, "ProgramData"))

	locs.ProgramDirs = []string{pf, pf86, pd}
	return locs
}

func windowsDir() string {
	if dir, err := windows.GetWindowsDirectory(); err == nil && dir != "" {
		return dir
	}
	return envOr("WINDIR", `C:\Windows`)
}

func systemDrive(winDir string) string {
	if d := os.Getenv("SYSTEMDRIVE"); d != "" {
		return d + `\`
	}
	if vol := filepath.VolumeName(winDir); vol != "" {
		return vol + `\`
	}
	return `C:\`
}

func knownFolder(id *windows.KNOWNFOLDERID, env string) string {
	if p, err := windows.KnownFolderPath(id, windows.KF_FLAG_DEFAULT); err == nil && p != "" {
		return p
	}
	return os.Getenv(env)
}

// readRegistryPath reads a string value from HKLM, expanding REG_EXPAND_SZ
// values. Returns an empty string on any error.
func readRegistryPath(path, name string) string {
	key, err := registry.OpenKey(registry.LOCAL_MACHINE, path, registry.QUERY_VALUE|registry.WOW64_64KEY)
	if err != nil {
		return ""
	}
	defer key.Close()

	val, valType, err := key.GetStringValue(name)
	if err != nil {
		return ""
	}
	if valType == registry.EXPAND_SZ {
		if expanded, expErr := registry.ExpandString(val); expErr == nil {
			val = expanded
		}
	}
	return val
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
