package clean

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/lakshaymaurya-felt/syscleaner/internal/core"
	"github.com/lakshaymaurya-felt/syscleaner/internal/logger"
	"github.com/lakshaymaurya-felt/syscleaner/internal/whitelist"
)

// Tally is the result of measuring one target. Files and Bytes cover only
// counted files; Failed and Skipped record entries that were absorbed.
type Tally struct {
	Files   uint64
	Bytes   uint64
	Failed  uint64
	Skipped uint64
}

// Add folds o into t.
func (t *Tally) Add(o Tally) {
	t.Files += o.Files
	t.Bytes += o.Bytes
	t.Failed += o.Failed
	t.Skipped += o.Skipped
}

// outcome is what happened to a single walked entry.
type outcome int

const (
	outcomeCounted outcome = iota
	outcomeSkipped
	outcomeStatFailed
	outcomeDeleteFailed
	outcomeEnumFailed
)

func (t *Tally) record(o outcome, size int64) {
	switch o {
	case outcomeCounted:
		t.Files++
		t.Bytes += uint64(size)
	case outcomeSkipped:
		t.Skipped++
	default:
		t.Failed++
	}
}

// Measurer walks a file or directory tree, counting and optionally deleting
// every regular file. It never returns an error: failures are folded into
// the tally.
type Measurer struct {
	remove    func(string) error
	whitelist *whitelist.Whitelist
	log       *zap.Logger
}

// NewMeasurer returns a measurer that skips whitelisted files. A nil remove
// func means os.Remove.
func NewMeasurer(wl *whitelist.Whitelist, remove func(string) error, log *zap.Logger) *Measurer {
	if remove == nil {
		remove = os.Remove
	}
	return &Measurer{remove: remove, whitelist: wl, log: logger.OrNop(log)}
}

// Measure tallies path. With del set each regular file is removed and only
// successfully removed files are counted. onCounted, when non-nil, is called
// for every counted file.
func (m *Measurer) Measure(path string, del bool, onCounted func(size int64)) Tally {
	var t Tally
	note := func(o outcome, size int64) {
		t.record(o, size)
		if o == outcomeCounted && onCounted != nil {
			onCounted(size)
		}
	}

	info, err := os.Stat(core.LongPath(path))
	if err != nil {
		note(outcomeEnumFailed, 0)
		m.log.Debug("target unavailable", zap.String("path", path), zap.Error(err))
		return t
	}

	switch {
	case info.Mode().IsRegular():
		note(m.file(path, del), info.Size())
	case info.IsDir():
		// The root may itself be a link; links below it are not followed.
		root := path
		if resolved, err := filepath.EvalSymlinks(path); err == nil {
			root = resolved
		}
		m.walk(root, del, note)
	default:
		note(outcomeSkipped, 0)
	}
	return t
}

func (m *Measurer) walk(root string, del bool, note func(outcome, int64)) {
	// Nested symlinks and junctions are reported as non-directories by
	// WalkDir and are never followed.
	_ = filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrPermission) {
				note(outcomeSkipped, 0)
			} else {
				note(outcomeEnumFailed, 0)
			}
			if d != nil && d.IsDir() && p != root {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if !d.Type().IsRegular() {
			note(outcomeSkipped, 0)
			return nil
		}

		info, err := d.Info()
		if err != nil {
			note(outcomeStatFailed, 0)
			return nil
		}
		note(m.file(p, del), info.Size())
		return nil
	})
}

func (m *Measurer) file(path string, del bool) outcome {
	if m.whitelist.IsWhitelisted(path) {
		return outcomeSkipped
	}
	if !del {
		return outcomeCounted
	}
	if err := m.remove(core.LongPath(path)); err != nil {
		return outcomeDeleteFailed
	}
	return outcomeCounted
}
