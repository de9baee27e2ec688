package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// AppName names the per-user data directory.
const AppName = "SysCleaner"

// Settings holds the tunables read from the environment.
type Settings struct {
	// Debug enables debug-level logging and the console log sink.
	Debug bool

	// Workers bounds how many category tasks run at once.
	Workers int

	// DataDir holds the custom-path store and the log directory.
	DataDir string

	// LogMaxSizeMB and LogMaxAgeDays control log rotation.
	LogMaxSizeMB  int
	LogMaxAgeDays int

	// Whitelist holds wildcard patterns of files the cleaner never touches.
	Whitelist []string
}

// LoadSettings reads settings from an optional .env file and SYSCLEANER_*
// environment variables. Invalid numeric values keep their defaults.
func LoadSettings(locs Locations) Settings {
	_ = godotenv.Load()

	s := Settings{
		Workers:       runtime.NumCPU(),
		DataDir:       filepath.Join(locs.RoamingAppData, AppName),
		LogMaxSizeMB:  10,
		LogMaxAgeDays: 7,
	}

	if v := os.Getenv("SYSCLEANER_DEBUG"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			s.Debug = b
		}
	}
	if v := os.Getenv("SYSCLEANER_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			s.Workers = n
		}
	}
	if v := os.Getenv("SYSCLEANER_DATA_DIR"); v != "" {
		s.DataDir = v
	}
	if v := os.Getenv("SYSCLEANER_LOG_MAX_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			s.LogMaxSizeMB = n
		}
	}
	if v := os.Getenv("SYSCLEANER_LOG_MAX_AGE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			s.LogMaxAgeDays = n
		}
	}
	if v := os.Getenv("SYSCLEANER_WHITELIST"); v != "" {
		for _, p := range strings.Split(v, ",") {
			if p = strings.TrimSpace(p); p != "" {
				s.Whitelist = append(s.Whitelist, p)
			}
		}
	}

	if s.Workers < 1 {
		s.Workers = 1
	}
	return s
}

// CustomPathsFile is the custom-path store location.
func (s Settings) CustomPathsFile() string {
	return filepath.Join(s.DataDir, "custom_paths.bin")
}

// LogFile is the rotating log file location.
func (s Settings) LogFile() string {
	return filepath.Join(s.DataDir, "logs", "syscleaner.log")
}
