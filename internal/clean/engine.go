package clean

import (
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lakshaymaurya-felt/syscleaner/internal/config"
	"github.com/lakshaymaurya-felt/syscleaner/internal/guard"
	"github.com/lakshaymaurya-felt/syscleaner/internal/logger"
	"github.com/lakshaymaurya-felt/syscleaner/internal/whitelist"
)

// ErrBusy is returned when a run is requested while another is in flight.
var ErrBusy = errors.New("a run is already in progress")

// ReasonDuplicate rejects a custom path already registered under another
// spelling.
const ReasonDuplicate guard.Reason = "Duplicated path"

// progressTick is how often the coordinator refreshes progress between
// task notifications.
const progressTick = 50 * time.Millisecond

// Engine orchestrates analysis and cleaning runs. Each run fans out one task
// per category to the runner; a coordinator goroutine waits for the batch,
// publishes progress and moves the lifecycle state.
//
// State and Progress are lock-free and may be read from any goroutine.
// Discover, AddCustomPath and RemoveCustomPath mutate the path index and
// must not race with a run.
type Engine struct {
	runner   Runner
	locs     config.Locations
	guard    *guard.Guard
	bin      RecycleBin
	store    *Store
	log      *zap.Logger
	wl       *whitelist.Whitelist
	remove   func(string) error
	measurer *Measurer

	index        *PathIndex
	customLoaded bool

	state    atomic.Int32
	progress atomic.Uint64 // math.Float64bits
	cleaned  atomic.Uint64

	mu      sync.Mutex
	summary Summary

	runMu sync.Mutex
	done  chan struct{}
}

// EngineOption customizes an Engine.
type EngineOption func(*Engine)

// WithRecycleBin replaces the system recycle bin.
func WithRecycleBin(b RecycleBin) EngineOption {
	return func(e *Engine) { e.bin = b }
}

// WithStore sets the custom path store. Without one custom paths are not
// persisted.
func WithStore(s *Store) EngineOption {
	return func(e *Engine) { e.store = s }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) EngineOption {
	return func(e *Engine) { e.log = l }
}

// WithWhitelist protects matching files from being counted or deleted.
func WithWhitelist(wl *whitelist.Whitelist) EngineOption {
	return func(e *Engine) { e.wl = wl }
}

// WithGuard replaces the guard built from the engine's locations.
func WithGuard(g *guard.Guard) EngineOption {
	return func(e *Engine) { e.guard = g }
}

// WithRemover replaces os.Remove for file deletion.
func WithRemover(fn func(string) error) EngineOption {
	return func(e *Engine) { e.remove = fn }
}

// NewEngine builds an engine submitting work to runner and resolving
// well-known directories through locs.
func NewEngine(runner Runner, locs config.Locations, opts ...EngineOption) *Engine {
	e := &Engine{
		runner: runner,
		locs:   locs,
		index:  NewPathIndex(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.log = logger.OrNop(e.log).Named("engine")
	if e.guard == nil {
		e.guard = guard.New(locs)
	}
	if e.bin == nil {
		e.bin = SystemRecycleBin()
	}
	e.measurer = NewMeasurer(e.wl, e.remove, e.log)
	return e
}

// State returns the current lifecycle state.
func (e *Engine) State() State {
	return State(e.state.Load())
}

// Progress returns an approximate completion fraction of the current run in
// [0, 1]. It is an estimate and may move backwards between phases.
func (e *Engine) Progress() float64 {
	return math.Float64frombits(e.progress.Load())
}

func (e *Engine) setProgress(p float64) {
	if p < 0 || math.IsNaN(p) {
		p = 0
	}
	if p > 1 {
		p = 1
	}
	e.progress.Store(math.Float64bits(p))
}

// ConsumeSummary returns a copy of the latest summary. When the run has
// finished the state returns to IDLE; repeated calls return the same data.
func (e *Engine) ConsumeSummary() Summary {
	e.mu.Lock()
	defer e.mu.Unlock()
	if s := e.State(); s.Done() {
		e.state.CompareAndSwap(int32(s), int32(StateIdle))
	}
	return e.summary.clone()
}

// Analyze measures every enabled option of catalog without touching the
// filesystem. It returns immediately; observe State and Progress, or Wait.
func (e *Engine) Analyze(catalog *Catalog) error {
	items := catalog.snapshot()
	return e.start(func(done chan struct{}) {
		start := time.Now()
		e.reset()
		e.state.Store(int32(StateAnalyzing))
		e.log.Info("analysis started", zap.Int("categories", len(items)))

		analysis := e.submit(items, false)
		go func() {
			defer close(done)
			analysis.wait(func() { e.setProgress(analysis.fraction()) })
			e.finish(SummaryAnalysis, start, StateAnalysisDone)
		}()
	})
}

// Clean deletes every enabled option of catalog. An analysis pass runs first
// to learn the baseline file count; when it is zero nothing is deleted.
func (e *Engine) Clean(catalog *Catalog) error {
	items := catalog.snapshot()
	return e.start(func(done chan struct{}) {
		start := time.Now()
		e.reset()
		e.state.Store(int32(StateAnalyzing))
		e.log.Info("clean started", zap.Int("categories", len(items)))

		analysis := e.submit(items, false)
		go func() {
			defer close(done)
			analysis.wait(func() { e.setProgress(analysis.fraction()) })

			baseline := e.totals()
			if baseline > 0 {
				e.reset()
				e.state.Store(int32(StateCleaning))
				cleaning := e.submit(items, true)
				cleaning.wait(func() {
					e.setProgress(float64(e.cleaned.Load()) / float64(baseline))
				})
			}
			e.finish(SummaryCleaning, start, StateCleaningDone)
		}()
	})
}

// Wait blocks until the current run, if any, reaches a terminal state.
func (e *Engine) Wait(ctx context.Context) error {
	e.runMu.Lock()
	done := e.done
	e.runMu.Unlock()
	if done == nil {
		return nil
	}
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (e *Engine) start(launch func(done chan struct{})) error {
	e.runMu.Lock()
	defer e.runMu.Unlock()
	if e.State().Running() {
		return ErrBusy
	}
	e.done = make(chan struct{})
	launch(e.done)
	return nil
}

func (e *Engine) reset() {
	e.mu.Lock()
	e.summary = Summary{}
	e.mu.Unlock()
	e.cleaned.Store(0)
	e.setProgress(0)
}

func (e *Engine) totals() uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.summary.TotalFiles
}

func (e *Engine) finish(kind SummaryKind, start time.Time, next State) {
	elapsed := time.Since(start)
	e.mu.Lock()
	e.summary.Kind = kind
	e.summary.Elapsed = elapsed
	files, bytes := e.summary.TotalFiles, e.summary.TotalBytes
	e.mu.Unlock()

	e.setProgress(1)
	e.state.Store(int32(next))
	e.log.Info("run finished",
		zap.Stringer("kind", kind),
		zap.Uint64("files", files),
		zap.Uint64("bytes", bytes),
		zap.Duration("elapsed", elapsed))
}

// submit issues one task per category.
func (e *Engine) submit(items []CleaningItem, del bool) *batch {
	b := newBatch()
	for _, item := range items {
		b.add(e.runner, func() { e.processItem(item, del) })
	}
	return b
}

func (e *Engine) processItem(item CleaningItem, del bool) {
	for _, opt := range item.Options {
		if !opt.Enabled {
			continue
		}
		target, err := e.index.Resolve(opt.ID)
		if err != nil {
			e.log.Warn("unresolved option", zap.String("option", opt.Name), zap.Error(err))
			continue
		}

		var t Tally
		if target.RecycleBin {
			t = e.recycle(del)
		} else {
			var onCounted func(int64)
			if del {
				onCounted = func(int64) { e.cleaned.Add(1) }
			}
			t = e.measurer.Measure(target.Path, del, onCounted)
		}

		e.accumulate(item, opt, t)
		e.log.Debug("option done",
			zap.String("category", item.Name),
			zap.String("option", opt.Name),
			zap.Bool("delete", del),
			zap.Uint64("files", t.Files),
			zap.Uint64("bytes", t.Bytes),
			zap.Uint64("failed", t.Failed),
			zap.Uint64("skipped", t.Skipped))
	}
}

// recycle measures the recycle bin and, when del is set and it holds items,
// empties it. Any API failure yields a zero tally.
func (e *Engine) recycle(del bool) Tally {
	t, err := e.bin.Query()
	if err != nil {
		e.log.Debug("recycle bin query failed", zap.Error(err))
		return Tally{}
	}
	if !del || t.Files == 0 {
		return t
	}
	if err := e.bin.Empty(); err != nil {
		e.log.Debug("recycle bin empty failed", zap.Error(err))
		return Tally{}
	}
	e.cleaned.Add(t.Files)
	return t
}

// accumulate adds t to the totals and appends its result as one step.
func (e *Engine) accumulate(item CleaningItem, opt CleanOption, t Tally) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.summary.TotalFiles += t.Files
	e.summary.TotalBytes += t.Bytes
	e.summary.Results = append(e.summary.Results, CleanResult{
		Category: item.Name,
		Option:   opt.Name,
		Files:    t.Files,
		Bytes:    t.Bytes,
		Icon:     item.Icon,
	})
}

// AddCustomPath validates path and registers it as a custom target. The
// returned error is a *guard.Rejection.
func (e *Engine) AddCustomPath(path string) (CleanOption, error) {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	if err := e.guard.Validate(path); err != nil {
		e.log.Info("custom path rejected", zap.String("path", path), zap.Error(err))
		return CleanOption{}, err
	}
	if e.duplicate(path) {
		e.log.Info("custom path rejected", zap.String("path", path), zap.String("reason", string(ReasonDuplicate)))
		return CleanOption{}, &guard.Rejection{Path: path, Reason: ReasonDuplicate}
	}

	opt := newOption(filepath.Base(path))
	e.index.Custom.Put(opt.ID, Target{Path: path})
	e.log.Info("custom path added", zap.String("path", path))
	return opt, nil
}

// RemoveCustomPath forgets the custom target id. The filesystem is not
// touched.
func (e *Engine) RemoveCustomPath(id uuid.UUID) {
	if e.index.Custom.Delete(id) {
		e.log.Info("custom path removed", zap.Stringer("id", id))
	}
}

// DisplayPath returns the full path of a custom option.
func (e *Engine) DisplayPath(id uuid.UUID) (string, bool) {
	t, ok := e.index.Custom.Get(id)
	if !ok {
		return "", false
	}
	return t.Path, true
}

// CustomPaths returns the registered custom paths in insertion order.
func (e *Engine) CustomPaths() []string {
	var paths []string
	e.index.Custom.Each(func(_ uuid.UUID, t Target) {
		paths = append(paths, t.Path)
	})
	return paths
}

// Close persists the custom paths.
func (e *Engine) Close() error {
	if e.store == nil {
		return nil
	}
	return e.store.Save(e.CustomPaths())
}

// duplicate reports whether path names the same file as a registered
// custom path.
func (e *Engine) duplicate(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	dup := false
	e.index.Custom.Each(func(_ uuid.UUID, t Target) {
		if dup {
			return
		}
		if other, err := os.Stat(t.Path); err == nil && os.SameFile(info, other) {
			dup = true
		}
	})
	return dup
}

// batch tracks one fan-out of tasks and signals each completion.
type batch struct {
	wg       sync.WaitGroup
	total    int
	finished atomic.Int64
	notify   chan struct{}
}

func newBatch() *batch {
	return &batch{notify: make(chan struct{}, 1)}
}

func (b *batch) add(r Runner, task func()) {
	b.total++
	b.wg.Add(1)
	r.Submit(func() {
		defer func() {
			b.finished.Add(1)
			b.wg.Done()
			select {
			case b.notify <- struct{}{}:
			default:
			}
		}()
		task()
	})
}

func (b *batch) fraction() float64 {
	if b.total == 0 {
		return 1
	}
	return float64(b.finished.Load()) / float64(b.total)
}

// wait blocks until every task finished, calling update on each completion
// notification and on every tick.
func (b *batch) wait(update func()) {
	done := make(chan struct{})
	go func() {
		b.wg.Wait()
		close(done)
	}()

	ticker := time.NewTicker(progressTick)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			update()
			return
		case <-b.notify:
			update()
		case <-ticker.C:
			update()
		}
	}
}
