package clean

import (
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lakshaymaurya-felt/syscleaner/internal/config"
)

// Discover probes well-known locations and returns a fresh catalog: one
// item per installed browser, then Temp, System and Custom paths. Nothing
// is read beyond existence checks. The fixed index is rebuilt; persisted
// custom paths are loaded on the first call only.
//
// Discover must not be called while a run is in flight.
func (e *Engine) Discover() *Catalog {
	e.index.Fixed.Reset()

	var items []CleaningItem
	for _, b := range config.Browsers {
		items = append(items, e.discoverBrowser(b)...)
	}

	items = append(items, e.fixedItem(TempName, KindTemp, "temp", []fixedTarget{
		{"Temp files", Target{Path: e.locs.Temp}},
		{"Update cache", Target{Path: e.locs.UpdateCacheDir()}},
		{"Logs", Target{Path: e.locs.LogsDir()}},
	}))
	items = append(items, e.fixedItem(SystemName, KindSystem, "system", []fixedTarget{
		{"Prefetch", Target{Path: e.locs.PrefetchDir()}},
		{RecycleBinName, Target{RecycleBin: true}},
	}))

	if !e.customLoaded {
		e.loadCustomPaths()
		e.customLoaded = true
	}
	items = append(items, customItem(e.customOptions()))

	e.log.Info("discovered targets",
		zap.Int("categories", len(items)),
		zap.Int("fixed", e.index.Fixed.Len()),
		zap.Int("custom", e.index.Custom.Len()))
	return &Catalog{Items: items}
}

type fixedTarget struct {
	name   string
	target Target
}

// fixedItem registers every target with a path (or the recycle bin) and
// returns the category. Existence is not checked here.
func (e *Engine) fixedItem(name string, kind ItemKind, icon string, targets []fixedTarget) CleaningItem {
	item := CleaningItem{Name: name, Kind: kind, Icon: icon}
	for _, ft := range targets {
		if ft.target.Path == "" && !ft.target.RecycleBin {
			continue
		}
		opt := newOption(ft.name)
		e.index.Fixed.Put(opt.ID, ft.target)
		item.Options = append(item.Options, opt)
	}
	return item
}

func (e *Engine) discoverBrowser(b config.Browser) []CleaningItem {
	if !exists(filepath.Join(e.locs.LocalAppData, b.Folder)) &&
		!exists(filepath.Join(e.locs.RoamingAppData, b.Folder)) {
		return nil
	}

	base := e.locs.LocalAppData
	if b.Roaming {
		base = e.locs.RoamingAppData
	}
	root := filepath.Join(base, b.Folder)

	if !b.MultiProfile {
		if item, ok := e.browserItem(b, filepath.Join(root, b.Profile), ""); ok {
			return []CleaningItem{item}
		}
		return nil
	}

	entries, err := os.ReadDir(filepath.Join(root, b.Profile))
	if err != nil {
		return nil
	}
	var items []CleaningItem
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		rel := filepath.Join(b.Profile, entry.Name())
		cache := ""
		if b.LocalCache {
			cache = filepath.Join(e.locs.LocalAppData, b.Folder, rel, b.Cache)
		}
		if item, ok := e.browserItem(b, filepath.Join(root, rel), cache); ok {
			items = append(items, item)
		}
	}
	return items
}

// browserItem builds the category for one browser profile. Options are only
// added for data that exists; a profile with none yields no item.
func (e *Engine) browserItem(b config.Browser, profile, cache string) (CleaningItem, bool) {
	if cache == "" {
		cache = filepath.Join(profile, b.Cache)
	}
	item := CleaningItem{Name: b.Name, Kind: KindBrowser, Icon: b.Icon}
	for _, ft := range []fixedTarget{
		{"Cache", Target{Path: cache}},
		{"Cookies", Target{Path: filepath.Join(profile, b.Cookies)}},
		{"History", Target{Path: filepath.Join(profile, b.History)}},
	} {
		if !exists(ft.target.Path) {
			continue
		}
		opt := newOption(ft.name)
		e.index.Fixed.Put(opt.ID, ft.target)
		item.Options = append(item.Options, opt)
	}
	return item, len(item.Options) > 0
}

// loadCustomPaths registers persisted custom paths that still pass the
// guard. Rejected or duplicate entries are dropped.
func (e *Engine) loadCustomPaths() {
	if e.store == nil {
		return
	}
	paths, err := e.store.Load()
	if err != nil {
		e.log.Warn("custom paths not loaded", zap.Error(err))
		return
	}
	for _, p := range paths {
		if !e.guard.Allowed(p) || e.duplicate(p) {
			e.log.Info("dropped stored custom path", zap.String("path", p))
			continue
		}
		e.index.Custom.Put(uuid.New(), Target{Path: p})
	}
}

func (e *Engine) customOptions() []CleanOption {
	var opts []CleanOption
	e.index.Custom.Each(func(id uuid.UUID, t Target) {
		opts = append(opts, CleanOption{ID: id, Name: filepath.Base(t.Path), Enabled: true})
	})
	return opts
}

func exists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}
