package main

import (
	"context"
	"errors"
	"fmt"

	"phototag/internal/database"
	"phototag/internal/filesystem"
	"phototag/internal/library"
	"phototag/internal/logging"
	"phototag/internal/media"
	"phototag/internal/metrics"
	"phototag/internal/settings"
	"phototag/internal/startup"
	"phototag/internal/thumbcache"
)

// app holds what a command opened. Everything is opened on demand and
// released by close.
type app struct {
	libraryFlag string

	cfg         *startup.Config
	lock        *library.FileLock
	store       *library.Store
	thumbs      *thumbcache.Cache
	db          *database.Database
	unsubscribe func()
	vipsStarted bool
}

// open loads configuration, takes the library lock and loads the index.
// A corrupt index is moved aside with a warning and the library starts empty.
func (a *app) open() error {
	if a.store != nil {
		return nil
	}

	cfg, err := startup.LoadConfig(a.libraryFlag)
	if err != nil {
		return err
	}
	a.cfg = cfg

	metrics.InitializeMetrics()
	filesystem.SetObserver(metrics.NewFilesystemObserver())

	lock, err := library.Lock(cfg.LockPath)
	if err != nil {
		return err
	}
	a.lock = lock

	store := library.New(cfg.IndexPath)
	// Load has already logged a corrupt index; continue with an empty library.
	if err := store.Load(); err != nil && !errors.Is(err, library.ErrCorruptIndex) {
		return err
	}
	a.store = store
	a.thumbs = thumbcache.New(cfg.ThumbnailDir)

	a.unsubscribe = store.AddListener(func() {
		logging.Debug("Library changed: %d photos", store.Len())
	})

	logging.Debug("Library loaded: %d photos from %s", store.Len(), cfg.IndexPath)
	return nil
}

// settingsDB opens the preferences database on first use.
func (a *app) settingsDB(ctx context.Context) (*database.Database, error) {
	if a.db != nil {
		return a.db, nil
	}
	db, err := database.New(ctx, a.cfg.SettingsPath)
	if err != nil {
		return nil, fmt.Errorf("open settings: %w", err)
	}
	a.db = db
	return db, nil
}

func (a *app) loadSettings(ctx context.Context) (settings.Settings, error) {
	db, err := a.settingsDB(ctx)
	if err != nil {
		return settings.Defaults(), err
	}
	return settings.Load(ctx, db)
}

// renderer returns the thumbnail renderer, starting libvips when enabled.
func (a *app) renderer() *media.Renderer {
	useVips := false
	if a.cfg.VipsEnabled {
		if err := media.InitVips(); err != nil {
			logging.Warn("libvips unavailable, using pure-Go renderer: %v", err)
		} else {
			a.vipsStarted = true
			useVips = true
		}
	}
	return media.NewRenderer(media.RendererOptions{UseVips: useVips})
}

// close releases everything that was opened and writes the metrics textfile when
// configured.
func (a *app) close() error {
	var errs []error

	if a.store != nil {
		if a.unsubscribe != nil {
			a.unsubscribe()
		}
		metrics.Collect(a.store)
	}
	if a.cfg != nil && a.cfg.MetricsTextfile != "" {
		if err := metrics.WriteTextfile(a.cfg.MetricsTextfile); err != nil {
			logging.Warn("Failed to write metrics textfile %s: %v", a.cfg.MetricsTextfile, err)
		}
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close settings: %w", err))
		}
		a.db = nil
	}
	if a.vipsStarted {
		media.ShutdownVips()
		a.vipsStarted = false
	}
	if a.lock != nil {
		if err := a.lock.Release(); err != nil {
			errs = append(errs, err)
		}
		a.lock = nil
	}
	a.store = nil
	return errors.Join(errs...)
}
