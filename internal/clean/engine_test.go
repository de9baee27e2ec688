package clean

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lakshaymaurya-felt/syscleaner/internal/guard"
	"github.com/lakshaymaurya-felt/syscleaner/internal/whitelist"
)

// tempOnly narrows the catalog to Temp files and Logs.
func tempOnly(t *testing.T, c *Catalog) {
	t.Helper()
	c.Select(KindTemp)
	temp := item(t, c, TempName)
	require.True(t, c.SetEnabled(option(t, temp, "Update cache").ID, false))
}

func TestEngineAnalyzeThenClean(t *testing.T) {
	f := newFixture(t)
	writeFiles(t, f.locs.Temp, 100, 100, 100)

	e := f.engine(NewPool(4))
	catalog := e.Discover()
	tempOnly(t, catalog)
	assert.Equal(t, StateIdle, e.State())

	require.NoError(t, e.Analyze(catalog))
	waitRun(t, e)
	assert.Equal(t, StateAnalysisDone, e.State())
	assert.Equal(t, 1.0, e.Progress())

	s := e.ConsumeSummary()
	assert.Equal(t, StateIdle, e.State())
	assert.Equal(t, SummaryAnalysis, s.Kind)
	assert.EqualValues(t, 3, s.TotalFiles)
	assert.EqualValues(t, 300, s.TotalBytes)
	assert.ElementsMatch(t, []CleanResult{
		{Category: TempName, Option: "Temp files", Files: 3, Bytes: 300, Icon: "temp"},
		{Category: TempName, Option: "Logs", Files: 0, Bytes: 0, Icon: "temp"},
	}, s.Results)

	n, size := countFiles(t, f.locs.Temp)
	assert.Equal(t, 3, n)
	assert.EqualValues(t, 300, size)

	require.NoError(t, e.Clean(catalog))
	waitRun(t, e)
	assert.Equal(t, StateCleaningDone, e.State())

	s = e.ConsumeSummary()
	assert.Equal(t, SummaryCleaning, s.Kind)
	assert.EqualValues(t, 3, s.TotalFiles)
	assert.EqualValues(t, 300, s.TotalBytes)
	assert.Len(t, s.Results, 2)

	n, _ = countFiles(t, f.locs.Temp)
	assert.Zero(t, n)
}

func TestConsumeSummaryTwice(t *testing.T) {
	f := newFixture(t)
	writeFiles(t, f.locs.Temp, 10, 20)

	e := f.engine(Inline{})
	catalog := e.Discover()
	tempOnly(t, catalog)

	require.NoError(t, e.Analyze(catalog))
	waitRun(t, e)

	first := e.ConsumeSummary()
	assert.Equal(t, StateIdle, e.State())
	second := e.ConsumeSummary()
	assert.Equal(t, StateIdle, e.State())
	assert.Equal(t, first, second)
}

func TestCleanKeepsUndeletableFiles(t *testing.T) {
	f := newFixture(t)
	writeFiles(t, f.locs.Temp, 10, 20, 30)
	locked := filepath.Join(f.locs.Temp, "locked")
	require.NoError(t, os.WriteFile(locked, make([]byte, 40), 0o644))

	remover := func(p string) error {
		if strings.HasSuffix(p, "locked") {
			return errors.New("sharing violation")
		}
		return os.Remove(p)
	}
	e := f.engine(Inline{}, WithRemover(remover))
	catalog := e.Discover()
	tempOnly(t, catalog)

	require.NoError(t, e.Clean(catalog))
	waitRun(t, e)

	s := e.ConsumeSummary()
	assert.EqualValues(t, 3, s.TotalFiles)
	assert.EqualValues(t, 60, s.TotalBytes)
	assert.FileExists(t, locked)
	n, _ := countFiles(t, f.locs.Temp)
	assert.Equal(t, 1, n)
}

func TestCleanWithNothingToDelete(t *testing.T) {
	f := newFixture(t)

	e := f.engine(Inline{})
	catalog := e.Discover()
	tempOnly(t, catalog)

	require.NoError(t, e.Clean(catalog))
	waitRun(t, e)

	s := e.ConsumeSummary()
	assert.Equal(t, SummaryCleaning, s.Kind)
	assert.Zero(t, s.TotalFiles)
	assert.Len(t, s.Results, 2)
}

func TestWhitelistedFilesSurvive(t *testing.T) {
	f := newFixture(t)
	writeFiles(t, f.locs.Temp, 5, 5)
	keep := filepath.Join(f.locs.Temp, "keep.lock")
	require.NoError(t, os.WriteFile(keep, []byte("x"), 0o644))

	e := f.engine(Inline{}, WithWhitelist(whitelist.New([]string{"*.lock"})))
	catalog := e.Discover()
	tempOnly(t, catalog)

	require.NoError(t, e.Clean(catalog))
	waitRun(t, e)

	s := e.ConsumeSummary()
	assert.EqualValues(t, 2, s.TotalFiles)
	assert.FileExists(t, keep)
}

func systemOnly(t *testing.T, c *Catalog) {
	t.Helper()
	c.Select(KindSystem)
	sys := item(t, c, SystemName)
	require.True(t, c.SetEnabled(option(t, sys, "Prefetch").ID, false))
}

func TestRecycleBin(t *testing.T) {
	t.Run("analyze reports without emptying", func(t *testing.T) {
		f := newFixture(t)
		f.bin.tally = Tally{Files: 4, Bytes: 4096}
		e := f.engine(Inline{})
		catalog := e.Discover()
		systemOnly(t, catalog)

		require.NoError(t, e.Analyze(catalog))
		waitRun(t, e)

		s := e.ConsumeSummary()
		assert.EqualValues(t, 4, s.TotalFiles)
		assert.EqualValues(t, 4096, s.TotalBytes)
		require.Len(t, s.Results, 1)
		assert.Equal(t, RecycleBinName, s.Results[0].Option)
		assert.Equal(t, SystemName, s.Results[0].Category)
		assert.Zero(t, f.bin.emptyCalls())
	})

	t.Run("clean empties once", func(t *testing.T) {
		f := newFixture(t)
		f.bin.tally = Tally{Files: 4, Bytes: 4096}
		e := f.engine(Inline{})
		catalog := e.Discover()
		systemOnly(t, catalog)

		require.NoError(t, e.Clean(catalog))
		waitRun(t, e)

		s := e.ConsumeSummary()
		assert.EqualValues(t, 4, s.TotalFiles)
		assert.Equal(t, 1, f.bin.emptyCalls())
	})

	t.Run("empty bin is not emptied", func(t *testing.T) {
		f := newFixture(t)
		e := f.engine(Inline{})
		catalog := e.Discover()
		systemOnly(t, catalog)

		require.NoError(t, e.Clean(catalog))
		waitRun(t, e)

		assert.Zero(t, e.ConsumeSummary().TotalFiles)
		assert.Zero(t, f.bin.emptyCalls())
	})

	t.Run("api failure contributes zero", func(t *testing.T) {
		f := newFixture(t)
		f.bin.tally = Tally{Files: 4, Bytes: 4096}
		f.bin.queryErr = errors.New("HRESULT 0x80004005")
		e := f.engine(Inline{})
		catalog := e.Discover()
		systemOnly(t, catalog)

		require.NoError(t, e.Analyze(catalog))
		waitRun(t, e)

		s := e.ConsumeSummary()
		assert.Zero(t, s.TotalFiles)
		require.Len(t, s.Results, 1)
		assert.Zero(t, s.Results[0].Files)
	})
}

func TestRunWhileBusy(t *testing.T) {
	f := newFixture(t)
	writeFiles(t, f.locs.Temp, 1)
	runner := newGateRunner()
	e := f.engine(runner)
	catalog := e.Discover()
	tempOnly(t, catalog)

	require.NoError(t, e.Analyze(catalog))
	assert.Equal(t, StateAnalyzing, e.State())
	assert.ErrorIs(t, e.Analyze(catalog), ErrBusy)
	assert.ErrorIs(t, e.Clean(catalog), ErrBusy)

	close(runner.release)
	waitRun(t, e)
	assert.Equal(t, StateAnalysisDone, e.State())

	// A finished but unconsumed run does not block the next one.
	require.NoError(t, e.Analyze(catalog))
	waitRun(t, e)
	assert.Equal(t, StateAnalysisDone, e.State())
}

func TestAddCustomPath(t *testing.T) {
	f := newFixture(t)
	dir := f.mkdir(t, "data", "Downloads")
	e := f.engine(Inline{})
	catalog := e.Discover()

	opt, err := e.AddCustomPath(dir)
	require.NoError(t, err)
	assert.Equal(t, "Downloads", opt.Name)
	assert.True(t, opt.Enabled)
	catalog.AddCustom(opt)

	got, ok := e.DisplayPath(opt.ID)
	require.True(t, ok)
	assert.Equal(t, dir, got)

	_, err = e.AddCustomPath(dir)
	var rej *guard.Rejection
	require.True(t, errors.As(err, &rej))
	assert.Equal(t, ReasonDuplicate, rej.Reason)

	link := filepath.Join(f.root, "data", "dl-link")
	if os.Symlink(dir, link) == nil {
		_, err = e.AddCustomPath(link)
		require.True(t, errors.As(err, &rej))
		assert.Equal(t, ReasonDuplicate, rej.Reason)
	}

	_, err = e.AddCustomPath(f.mkdir(t, "Windows", "Temp"))
	require.True(t, errors.As(err, &rej))
	assert.Equal(t, guard.ReasonSystemFolder, rej.Reason)

	e.RemoveCustomPath(opt.ID)
	require.True(t, catalog.RemoveOption(opt.ID))
	_, ok = e.DisplayPath(opt.ID)
	assert.False(t, ok)
	assert.DirExists(t, dir)
}

func TestCleanCustomPath(t *testing.T) {
	f := newFixture(t)
	dir := f.mkdir(t, "data", "junk")
	writeFiles(t, filepath.Join(dir, "nested"), 7, 8)
	single := writeFiles(t, f.mkdir(t, "data", "other"), 9)[0]

	e := f.engine(NewPool(2))
	catalog := e.Discover()
	for _, p := range []string{dir, single} {
		opt, err := e.AddCustomPath(p)
		require.NoError(t, err)
		catalog.AddCustom(opt)
	}
	catalog.Select(KindCustomPath)

	require.NoError(t, e.Clean(catalog))
	waitRun(t, e)

	s := e.ConsumeSummary()
	assert.EqualValues(t, 3, s.TotalFiles)
	assert.EqualValues(t, 24, s.TotalBytes)
	assert.NoFileExists(t, single)
	assert.DirExists(t, dir)
}

func TestCustomPathsPersist(t *testing.T) {
	f := newFixture(t)
	a := f.mkdir(t, "data", "a")
	b := f.mkdir(t, "data", "b")

	e := f.engine(Inline{})
	e.Discover()
	for _, p := range []string{a, b} {
		_, err := e.AddCustomPath(p)
		require.NoError(t, err)
	}
	require.NoError(t, e.Close())
	assert.FileExists(t, f.store.Path())

	// A path that vanished between sessions is dropped on load.
	require.NoError(t, os.Remove(b))

	e2 := f.engine(Inline{})
	custom := e2.Discover().Custom()
	require.NotNil(t, custom)
	require.Len(t, custom.Options, 1)
	assert.Equal(t, "a", custom.Options[0].Name)
	assert.Equal(t, []string{a}, e2.CustomPaths())

	e2.RemoveCustomPath(custom.Options[0].ID)
	require.NoError(t, e2.Close())
	assert.NoFileExists(t, f.store.Path())
}

func TestDiscover(t *testing.T) {
	f := newFixture(t)
	chrome := filepath.Join(f.locs.LocalAppData, "Google", "Chrome", "User Data", "Default")
	require.NoError(t, os.MkdirAll(filepath.Join(chrome, "Cache"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(chrome, "History"), nil, 0o644))

	profile := filepath.Join("Mozilla", "Firefox", "Profiles", "x1.default")
	require.NoError(t, os.MkdirAll(filepath.Join(f.locs.RoamingAppData, profile), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(f.locs.RoamingAppData, profile, "cookies.sqlite"), nil, 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(f.locs.LocalAppData, profile, "cache2"), 0o755))

	// Installed but without any data: no category.
	require.NoError(t, os.MkdirAll(filepath.Join(f.locs.LocalAppData, "Microsoft", "Edge"), 0o755))

	e := f.engine(Inline{})
	catalog := e.Discover()

	var names []string
	for _, it := range catalog.Items {
		names = append(names, it.Name)
	}
	assert.Equal(t, []string{"Google Chrome", "Mozilla Firefox", TempName, SystemName, CustomName}, names)

	chromeItem := item(t, catalog, "Google Chrome")
	assert.Equal(t, KindBrowser, chromeItem.Kind)
	assert.Len(t, chromeItem.Options, 2)
	option(t, chromeItem, "Cache")
	option(t, chromeItem, "History")

	ff := item(t, catalog, "Mozilla Firefox")
	cache, err := e.index.Resolve(option(t, ff, "Cache").ID)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(f.locs.LocalAppData, profile, "cache2"), cache.Path)
	option(t, ff, "Cookies")

	sys := item(t, catalog, SystemName)
	bin, err := e.index.Resolve(option(t, sys, RecycleBinName).ID)
	require.NoError(t, err)
	assert.True(t, bin.RecycleBin)

	assert.Equal(t, KindCustomPath, catalog.Items[len(catalog.Items)-1].Kind)
	for _, it := range catalog.Items {
		for _, opt := range it.Options {
			_, err := e.index.Resolve(opt.ID)
			assert.NoError(t, err, "%s/%s", it.Name, opt.Name)
		}
	}
}

func TestCleanLinkedCustomPath(t *testing.T) {
	f := newFixture(t)
	dir := f.mkdir(t, "data", "real")
	writeFiles(t, dir, 10, 20, 30)
	link := filepath.Join(f.root, "data", "link")
	if err := os.Symlink(dir, link); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	e := f.engine(NewPool(2))
	catalog := e.Discover()
	opt, err := e.AddCustomPath(link)
	require.NoError(t, err)
	assert.Equal(t, "link", opt.Name)
	catalog.AddCustom(opt)
	catalog.Select(KindCustomPath)

	require.NoError(t, e.Analyze(catalog))
	waitRun(t, e)
	s := e.ConsumeSummary()
	assert.EqualValues(t, 3, s.TotalFiles)
	assert.EqualValues(t, 60, s.TotalBytes)

	require.NoError(t, e.Clean(catalog))
	waitRun(t, e)
	s = e.ConsumeSummary()
	assert.EqualValues(t, 3, s.TotalFiles)
	assert.EqualValues(t, 60, s.TotalBytes)

	n, _ := countFiles(t, dir)
	assert.Zero(t, n)
	_, err = os.Lstat(link)
	assert.NoError(t, err)
}

func TestConcurrentCategoriesKeepTotals(t *testing.T) {
	f := newFixture(t)
	writeFiles(t, filepath.Join(f.locs.LocalAppData, "Google", "Chrome", "User Data", "Default", "Cache"), 100, 100)
	writeFiles(t, f.locs.Temp, 1, 2, 3)
	writeFiles(t, f.locs.LogsDir(), 10, 10)
	writeFiles(t, f.locs.PrefetchDir(), 5, 5)
	f.bin.tally = Tally{Files: 4, Bytes: 4096}

	e := f.engine(NewPool(4))
	catalog := e.Discover()
	for _, name := range []string{"a", "b", "c"} {
		dir := f.mkdir(t, "data", name)
		writeFiles(t, dir, 7, 7)
		opt, err := e.AddCustomPath(dir)
		require.NoError(t, err)
		catalog.AddCustom(opt)
	}

	enabled := 0
	for _, it := range catalog.Items {
		enabled += len(it.Options)
	}
	require.Equal(t, 9, enabled)

	check := func(s Summary) {
		t.Helper()
		files, bytes := sumResults(s)
		assert.Equal(t, s.TotalFiles, files)
		assert.Equal(t, s.TotalBytes, bytes)
		assert.EqualValues(t, 19, s.TotalFiles)
		assert.EqualValues(t, 4374, s.TotalBytes)

		seen := map[string]int{}
		for _, r := range s.Results {
			seen[r.Category+"/"+r.Option]++
		}
		assert.Len(t, seen, enabled)
		for key, n := range seen {
			assert.Equal(t, 1, n, key)
		}
	}

	for i := 0; i < 10; i++ {
		require.NoError(t, e.Analyze(catalog))
		waitRun(t, e)
		check(e.ConsumeSummary())
	}

	require.NoError(t, e.Clean(catalog))
	waitRun(t, e)
	check(e.ConsumeSummary())
	assert.Equal(t, 1, f.bin.emptyCalls())
	n, _ := countFiles(t, filepath.Join(f.root, "data"))
	assert.Zero(t, n)
}

func TestProgressDuringRun(t *testing.T) {
	f := newFixture(t)
	writeFiles(t, f.locs.Temp, 1, 1, 1)
	f.bin.tally = Tally{Files: 4, Bytes: 40}
	runner := newStepRunner()

	e := f.engine(runner)
	catalog := e.Discover()
	dir := f.mkdir(t, "data", "junk")
	writeFiles(t, dir, 2, 2, 2)
	opt, err := e.AddCustomPath(dir)
	require.NoError(t, err)
	catalog.AddCustom(opt)

	catalog.Select(KindTemp, KindSystem, KindCustomPath)
	require.True(t, catalog.SetEnabled(option(t, item(t, catalog, TempName), "Update cache").ID, false))
	require.True(t, catalog.SetEnabled(option(t, item(t, catalog, SystemName), "Prefetch").ID, false))

	require.NoError(t, e.Clean(catalog))
	assert.Equal(t, StateAnalyzing, e.State())
	assert.Zero(t, e.Progress())

	// Analysis advances by finished categories.
	runner.step()
	assert.Eventually(t, func() bool { return e.Progress() > 0.3 }, 5*time.Second, time.Millisecond)
	assert.InDelta(t, 1.0/3, e.Progress(), 1e-9)
	runner.step()
	runner.step()
	require.Eventually(t, func() bool { return e.State() == StateCleaning }, 5*time.Second, time.Millisecond)
	assert.Zero(t, e.Progress())

	// Cleaning advances by deleted files over the analysed baseline.
	prev := 0.0
	for i := 0; i < 3; i++ {
		runner.step()
		assert.Eventually(t, func() bool { return e.Progress() > prev }, 5*time.Second, time.Millisecond)
		prev = e.Progress()
		assert.LessOrEqual(t, prev, 1.0)
	}

	waitRun(t, e)
	assert.Equal(t, StateCleaningDone, e.State())
	assert.Equal(t, 1.0, e.Progress())
	s := e.ConsumeSummary()
	assert.EqualValues(t, 10, s.TotalFiles)
}
