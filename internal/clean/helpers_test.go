package clean

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/lakshaymaurya-felt/syscleaner/internal/config"
)

// fakeBin is an in-memory recycle bin.
type fakeBin struct {
	mu       sync.Mutex
	tally    Tally
	queryErr error
	emptyErr error
	emptied  int
}

func (b *fakeBin) Query() (Tally, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.tally, b.queryErr
}

func (b *fakeBin) Empty() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.emptyErr != nil {
		return b.emptyErr
	}
	b.emptied++
	b.tally = Tally{}
	return nil
}

func (b *fakeBin) emptyCalls() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.emptied
}

// fixture is a fake system volume rooted in a temp dir.
type fixture struct {
	root  string
	locs  config.Locations
	bin   *fakeBin
	store *Store
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	root := t.TempDir()
	f := &fixture{
		root: root,
		locs: config.Locations{
			LocalAppData:   filepath.Join(root, "Users", "me", "AppData", "Local"),
			RoamingAppData: filepath.Join(root, "Users", "me", "AppData", "Roaming"),
			Temp:           filepath.Join(root, "Users", "me", "AppData", "Local", "Temp"),
			WindowsDir:     filepath.Join(root, "Windows"),
			SystemDrive:    root,
		},
		bin: &fakeBin{},
	}
	f.store = NewStore(filepath.Join(f.locs.RoamingAppData, config.AppName, "custom_paths.bin"))
	for _, dir := range []string{f.locs.LocalAppData, f.locs.RoamingAppData, f.locs.Temp, f.locs.LogsDir()} {
		require.NoError(t, os.MkdirAll(dir, 0o755))
	}
	return f
}

func (f *fixture) engine(runner Runner, opts ...EngineOption) *Engine {
	base := []EngineOption{WithRecycleBin(f.bin), WithStore(f.store)}
	return NewEngine(runner, f.locs, append(base, opts...)...)
}

// mkdir creates a directory below the fixture root.
func (f *fixture) mkdir(t *testing.T, elem ...string) string {
	t.Helper()
	dir := filepath.Join(append([]string{f.root}, elem...)...)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	return dir
}

// writeFiles creates one file per size in dir, named f0, f1, ...
func writeFiles(t *testing.T, dir string, sizes ...int) []string {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o755))
	var paths []string
	for i, size := range sizes {
		p := filepath.Join(dir, fmt.Sprintf("f%d", i))
		require.NoError(t, os.WriteFile(p, make([]byte, size), 0o644))
		paths = append(paths, p)
	}
	return paths
}

// countFiles returns the regular files below dir and their total size.
func countFiles(t *testing.T, dir string) (int, int64) {
	t.Helper()
	var n int
	var size int64
	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.Type().IsRegular() {
			info, err := d.Info()
			if err != nil {
				return err
			}
			n++
			size += info.Size()
		}
		return nil
	})
	require.NoError(t, err)
	return n, size
}

func waitRun(t *testing.T, e *Engine) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	require.NoError(t, e.Wait(ctx))
}

// item returns the catalog item with name.
func item(t *testing.T, c *Catalog, name string) *CleaningItem {
	t.Helper()
	for i := range c.Items {
		if c.Items[i].Name == name {
			return &c.Items[i]
		}
	}
	t.Fatalf("no item %q", name)
	return nil
}

// option returns the option with name inside it.
func option(t *testing.T, it *CleaningItem, name string) CleanOption {
	t.Helper()
	for _, opt := range it.Options {
		if opt.Name == name {
			return opt
		}
	}
	t.Fatalf("no option %q in %q", name, it.Name)
	return CleanOption{}
}

// gateRunner holds every task until release is closed.
type gateRunner struct {
	release chan struct{}
	pool    *Pool
}

func newGateRunner() *gateRunner {
	return &gateRunner{release: make(chan struct{}), pool: NewPool(2)}
}

func (g *gateRunner) Submit(task func()) {
	g.pool.Submit(func() {
		<-g.release
		task()
	})
}

// stepRunner holds every task until step hands it a token, one task per
// token.
type stepRunner struct {
	tokens chan struct{}
}

func newStepRunner() *stepRunner {
	return &stepRunner{tokens: make(chan struct{})}
}

func (s *stepRunner) Submit(task func()) {
	go func() {
		<-s.tokens
		task()
	}()
}

// step releases one held task.
func (s *stepRunner) step() {
	s.tokens <- struct{}{}
}

// sumResults adds up the per-option rows of s.
func sumResults(s Summary) (files, bytes uint64) {
	for _, r := range s.Results {
		files += r.Files
		bytes += r.Bytes
	}
	return files, bytes
}
