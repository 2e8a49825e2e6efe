package app

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/five82/tango/internal/cache"
	"github.com/five82/tango/internal/config"
	"github.com/five82/tango/internal/logging"
	"github.com/five82/tango/internal/prefs"
	"github.com/five82/tango/internal/presets"
	"github.com/five82/tango/internal/remote"
	"github.com/five82/tango/internal/ui"
)

// Options configure the tango client.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/tango/prefs.toml
	PollEvery  int    // seconds; zero uses default
}

// Run boots the tango TUI until the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// The terminal belongs to the UI, so logs always go to a file.
	logger, err := logging.New(logging.Options{Level: "info", Format: "json", Output: cfg.LogFile})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	client, err := remote.NewClient(cfg.APIURL, cfg.Token)
	if err != nil {
		return fmt.Errorf("init api client: %w", err)
	}

	levels, err := presets.Load()
	if err != nil {
		return fmt.Errorf("load preset levels: %w", err)
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}
	userPrefs, err := prefs.Load(prefsPath)
	if err != nil {
		logger.Warn("prefs unreadable, using defaults", zap.String("path", prefsPath), zap.Error(err))
	}

	lib := cache.NewLibrary(client)

	interval := defaultPollInterval
	if opts.PollEvery > 0 {
		interval = time.Duration(opts.PollEvery) * time.Second
	}

	pollCtx, stopPoller := context.WithCancel(ctx)
	defer stopPoller()
	StartPoller(pollCtx, lib, interval, logger)

	logger.Info("tango started",
		zap.String("api_url", cfg.APIURL),
		zap.Bool("signed_in", cfg.Token != ""),
		zap.Duration("poll", interval))

	return ui.Run(ui.Options{
		Context:   ctx,
		API:       client,
		Library:   lib,
		Levels:    levels,
		Logger:    logger,
		Prefs:     userPrefs,
		PrefsPath: prefsPath,
	})
}
