package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/five82/pwarps/internal/catalog"
	"github.com/five82/pwarps/internal/config"
	"github.com/five82/pwarps/internal/logging"
	"github.com/five82/pwarps/internal/nav"
	"github.com/five82/pwarps/internal/prefs"
	"github.com/five82/pwarps/internal/state"
	"github.com/five82/pwarps/internal/ui"
	"github.com/five82/pwarps/internal/warps"
)

// Options configure the pwarps application.
type Options struct {
	ConfigPath string
	StartPath  string // initial navigable path; empty is the catalog root
	Debug      bool
}

// Run boots the pwarps TUI until the user quits or the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	closeLog := logging.Configure(cfg.LogFile, opts.Debug)
	defer closeLog()

	uiOpts, cleanup, err := prepare(ctx, cfg, opts.StartPath)
	if err != nil {
		return err
	}
	defer cleanup()

	slog.Info("starting pwarps", "site", cfg.SiteURL, "start", uiOpts.History.CurrentPath(), "prefs_backend", cfg.PrefsBackend)
	return ui.Run(uiOpts)
}

// prepare wires the catalog client, preferences, view state and navigation
// for one session.
func prepare(ctx context.Context, cfg config.Config, startPath string) (ui.Options, func(), error) {
	client, err := warps.NewClient(cfg.SiteURL, cfg.RequestTimeout)
	if err != nil {
		return ui.Options{}, nil, fmt.Errorf("init catalog client: %w", err)
	}

	// Preferences are soft state; a broken store only costs persistence.
	kv, err := prefs.Open(cfg.PrefsBackend, cfg.PrefsPath, client.Origin())
	if err != nil {
		slog.Warn("preferences unavailable", "backend", cfg.PrefsBackend, "path", cfg.PrefsPath, "error", err)
		kv = nil
	}
	userPrefs := prefs.NewStore(kv)

	initial := state.DefaultViewState()
	if mode, ok := userPrefs.DisplayMode(); ok {
		initial.DisplayMode = mode
	}
	store := state.NewStore(initial, userPrefs, catalog.DefaultRand)

	history := nav.NewHistory(nav.NormalizePath(startPath))
	sync := nav.NewSynchronizer(history)

	cleanup := func() {
		sync.Close()
		if kv != nil {
			if err := kv.Close(); err != nil {
				slog.Warn("close preferences", "error", err)
			}
		}
	}

	return ui.Options{
		Context: ctx,
		Source:  client,
		Store:   store,
		History: history,
		Sync:    sync,
		Prefs:   userPrefs,
	}, cleanup, nil
}
