package cmd

import (
	"context"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/lakshaymaurya-felt/syscleaner/internal/clean"
	"github.com/lakshaymaurya-felt/syscleaner/internal/config"
	"github.com/lakshaymaurya-felt/syscleaner/internal/logger"
	"github.com/lakshaymaurya-felt/syscleaner/internal/whitelist"
)

// app holds what every command needs: settings, the logger and the engine.
type app struct {
	settings config.Settings
	locs     config.Locations
	log      *zap.Logger
	engine   *clean.Engine
}

func newApp() (*app, error) {
	locs := config.DetectLocations()
	settings := config.LoadSettings(locs)
	if debug {
		settings.Debug = true
	}
	if workers > 0 {
		settings.Workers = workers
	}

	log, err := logger.New(logger.Options{
		File:       settings.LogFile(),
		MaxSizeMB:  settings.LogMaxSizeMB,
		MaxAgeDays: settings.LogMaxAgeDays,
		Debug:      settings.Debug,
	})
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	log.Debug("starting",
		zap.String("version", appVersion),
		zap.Int("workers", settings.Workers),
		zap.String("data_dir", settings.DataDir),
		zap.Int("whitelist", len(settings.Whitelist)))

	engine := clean.NewEngine(clean.NewPool(settings.Workers), locs,
		clean.WithLogger(log),
		clean.WithStore(clean.NewStore(settings.CustomPathsFile())),
		clean.WithWhitelist(whitelist.New(settings.Whitelist)),
	)

	return &app{settings: settings, locs: locs, log: log, engine: engine}, nil
}

// close persists custom paths and flushes the log.
func (a *app) close() {
	if err := a.engine.Close(); err != nil {
		a.log.Warn("custom paths not saved", zap.Error(err))
	}
	_ = a.log.Sync()
}

// runAndWait starts a run and blocks until it finishes, drawing a progress
// line on w when live is set.
func (a *app) runAndWait(ctx context.Context, w io.Writer, live bool, start func(*clean.Catalog) error, catalog *clean.Catalog) (clean.Summary, error) {
	if err := start(catalog); err != nil {
		return clean.Summary{}, err
	}

	done := make(chan error, 1)
	go func() { done <- a.engine.Wait(ctx) }()

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case err := <-done:
			if live {
				fmt.Fprint(w, "\r\033[K")
			}
			if err != nil {
				return clean.Summary{}, err
			}
			return a.engine.ConsumeSummary(), nil
		case <-ticker.C:
			if live {
				label := "Analyzing"
				if a.engine.State() == clean.StateCleaning {
					label = "Cleaning"
				}
				fmt.Fprintf(w, "\r\033[K  %s… %3.0f%%", label, a.engine.Progress()*100)
			}
		}
	}
}
