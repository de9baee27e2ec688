// Package guard decides whether a filesystem path is safe to ever register as
// a user-deletable target.
package guard

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/lakshaymaurya-felt/syscleaner/internal/config"
)

// MaxPathLength is the longest path accepted, matching Win32 MAX_PATH.
const MaxPathLength = 260

// Reason is the human-readable explanation of a rejection.
type Reason string

const (
	ReasonNotFound     Reason = "Path not found"
	ReasonTooLong      Reason = "Path is too long"
	ReasonDriveRoot    Reason = "Cannot select drive root"
	ReasonSystemFolder Reason = "Windows system folder"
	ReasonProgramFiles Reason = "Program Files folder"
	ReasonAttributes   Reason = "File/Folder has protected system attributes"
)

// Rejection is returned by Validate when a path fails a rule.
type Rejection struct {
	Path   string
	Reason Reason
}

func (r *Rejection) Error() string {
	return string(r.Reason)
}

// Attributes is the subset of file attribute flags the guard inspects.
type Attributes uint32

const (
	AttrHidden Attributes = 1 << iota
	AttrSystem
)

// AttributeReader returns the attribute flags of a path.
type AttributeReader func(path string) (Attributes, error)

// Guard validates candidate paths against the protected locations of one
// OS installation. It holds no mutable state and is safe for concurrent use.
type Guard struct {
	windowsDir  string
	systemDirs  []string
	programDirs []string
	neverDelete []string
	readAttrs   AttributeReader
}

// Option customizes a Guard.
type Option func(*Guard)

// WithAttributeReader replaces the OS attribute query.
func WithAttributeReader(r AttributeReader) Option {
	return func(g *Guard) { g.readAttrs = r }
}

// New builds a guard for the OS layout described by locs.
func New(locs config.Locations, opts ...Option) *Guard {
	g := &Guard{
		windowsDir:  locs.WindowsDir,
		programDirs: locs.ProtectedDirs(),
		neverDelete: locs.NeverDeletePaths(),
		readAttrs:   readAttributes,
	}
	if locs.WindowsDir != "" {
		for _, name := range config.SystemFolderNames {
			g.systemDirs = append(g.systemDirs, filepath.Join(locs.WindowsDir, name))
		}
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Validate checks path against every rule in order and returns a *Rejection
// for the first one it fails, or nil when the path may be registered.
func (g *Guard) Validate(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return &Rejection{Path: path, Reason: ReasonNotFound}
	}
	if len(path) > MaxPathLength {
		return &Rejection{Path: path, Reason: ReasonTooLong}
	}

	canon := Canonical(path)
	if isRoot(absClean(path)) || isRoot(canon) {
		return &Rejection{Path: path, Reason: ReasonDriveRoot}
	}

	if g.isSystemFolder(canon, info) {
		return &Rejection{Path: path, Reason: ReasonSystemFolder}
	}

	if g.isProgramFolder(canon) {
		return &Rejection{Path: path, Reason: ReasonProgramFiles}
	}

	// An unreadable attribute set counts as protected.
	attrs, err := g.readAttrs(path)
	if err != nil || attrs&(AttrHidden|AttrSystem) == AttrHidden|AttrSystem {
		return &Rejection{Path: path, Reason: ReasonAttributes}
	}

	return nil
}

// Allowed is the boolean form of Validate.
func (g *Guard) Allowed(path string) bool {
	return g.Validate(path) == nil
}

func (g *Guard) isSystemFolder(canon string, info os.FileInfo) bool {
	if g.windowsDir == "" {
		return false
	}
	if Within(Canonical(g.windowsDir), canon) {
		return true
	}

	// Junctions and hard links can reach a protected folder from outside
	// the Windows tree; compare by identity as well.
	for _, dir := range g.systemDirs {
		if sameFile(dir, info) {
			return true
		}
	}
	for _, dir := range g.neverDelete {
		if sameFile(dir, info) {
			return true
		}
	}
	return false
}

func (g *Guard) isProgramFolder(canon string) bool {
	for _, dir := range g.programDirs {
		if Within(Canonical(dir), canon) {
			return true
		}
	}
	return false
}

// Canonical returns the absolute, symlink-resolved form of path. When
// resolution fails the absolute form is returned.
func Canonical(path string) string {
	p := absClean(path)
	if resolved, err := filepath.EvalSymlinks(p); err == nil {
		p = resolved
	}
	return filepath.Clean(p)
}

// Within reports whether target equals base or is nested inside it. Both
// arguments should already be canonical. A failed relative-path computation
// counts as not nested.
func Within(base, target string) bool {
	rel, err := filepath.Rel(fold(base), fold(target))
	if err != nil {
		return false
	}
	if rel == "." {
		return true
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) || filepath.IsAbs(rel) {
		return false
	}
	return true
}

func sameFile(path string, info os.FileInfo) bool {
	other, err := os.Stat(path)
	if err != nil {
		return false
	}
	return os.SameFile(other, info)
}

func absClean(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}
	return abs
}

func isRoot(p string) bool {
	if p == "" {
		return false
	}
	return filepath.Dir(p) == p
}

func fold(p string) string {
	if runtime.GOOS == "windows" {
		return strings.ToLower(p)
	}
	return p
}
