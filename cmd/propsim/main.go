// Package main is the entry point for the prop simulator.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/leonelquinteros/gotext"
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-props/internal/assets"
	"github.com/Faultbox/midgard-props/internal/config"
	"github.com/Faultbox/midgard-props/internal/engine/audio"
	"github.com/Faultbox/midgard-props/internal/engine/terminal"
	"github.com/Faultbox/midgard-props/internal/game"
	ebitenview "github.com/Faultbox/midgard-props/internal/game/renderer/ebiten"
	"github.com/Faultbox/midgard-props/internal/game/renderer/tui"
	"github.com/Faultbox/midgard-props/internal/game/save"
	"github.com/Faultbox/midgard-props/internal/logger"
	"github.com/Faultbox/midgard-props/internal/prop"
)

// appName names the per-user data directory for saved scenes.
const appName = "midgard-props"

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	if config.PickRequested() {
		path, ok := pickConfig()
		if !ok {
			return
		}
		config.SetConfigPath(path)
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if config.SaveRequested() {
		if err := cfg.Save(); err != nil {
			fmt.Fprintf(os.Stderr, "Save error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("config written to", filepath.Join(config.ConfigDir(), "propsim.yaml"))
		return
	}

	if err := initLogger(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}

	err = run(cfg)
	logger.Sync()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// initLogger keeps the console free while the TUI owns the terminal.
func initLogger(cfg *config.Config) error {
	if cfg.Frontend.Kind == config.FrontendTUI {
		return logger.InitFileOnly(cfg.Logging.Level, cfg.Logging.LogFile)
	}
	return logger.Init(cfg.Logging.Level, cfg.Logging.LogFile)
}

func run(cfg *config.Config) error {
	logger.Info("=== Midgard Props ===", zap.String("frontend", cfg.Frontend.Kind))
	logger.Sugar.Debugf("Config: %+v", cfg)

	gotext.Configure(cfg.Game.LocaleDir, cfg.Game.Language, "default")

	sink, closeAudio := openAudio(cfg)
	defer closeAudio()

	store, err := save.Open(appName, cfg.Game.SaveSlot)
	if err != nil {
		logger.Warn("scene will not be saved", zap.Error(err))
	}

	switch cfg.Frontend.Kind {
	case config.FrontendSDL:
		g, err := game.New(cfg, sink)
		if err != nil {
			return fmt.Errorf("failed to create game: %w", err)
		}
		defer g.Close()
		defer persist(store, g.Session())
		resume(cfg, store, g.Session())
		return g.Run()

	case config.FrontendEbiten:
		e, err := ebitenview.New(cfg, sink)
		if err != nil {
			return fmt.Errorf("failed to create window: %w", err)
		}
		defer persist(store, e.Session())
		resume(cfg, store, e.Session())
		return e.Run()

	default:
		kb, err := terminal.Open()
		if err != nil {
			return fmt.Errorf("failed to open terminal: %w", err)
		}
		defer kb.Close()

		session, err := game.NewSession(cfg, kb, sink)
		if err != nil {
			return fmt.Errorf("failed to build scene: %w", err)
		}
		defer persist(store, session)
		resume(cfg, store, session)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return tui.New(session, kb, os.Stdout, cfg.Simulation.TPS).Run(ctx)
	}
}

// resume restores the saved scene when asked to.
func resume(cfg *config.Config, store *save.Store, session *game.Session) {
	if !cfg.Game.Resume {
		return
	}
	snap, ok, err := store.Load()
	if err != nil {
		logger.Warn("saved scene unreadable", zap.Error(err))
		return
	}
	if !ok {
		logger.Info("no saved scene to resume")
		return
	}
	n := snap.Apply(session.World, session.Player)
	logger.Info("scene resumed", zap.Int("props", n))
}

// persist saves the scene on the way out.
func persist(store *save.Store, session *game.Session) {
	if err := store.Save(save.Capture(session.World, session.Player)); err != nil {
		logger.Warn("failed to save scene", zap.Error(err))
	}
}

// openAudio starts the speaker and loads the configured clips. Any failure
// leaves the props silent rather than stopping the simulator.
func openAudio(cfg *config.Config) (prop.AudioSink, func()) {
	if !cfg.Audio.Enabled {
		logger.Info("audio disabled")
		return nil, func() {}
	}

	mgr := audio.New()
	mgr.SetMasterVolume(cfg.Audio.MasterVolume)
	mgr.SetSFXVolume(cfg.Audio.SFXVolume)
	if err := mgr.Init(); err != nil {
		logger.Warn("audio unavailable", zap.Error(err))
		return nil, func() {}
	}
	if err := mgr.LoadClips(clipSource(), cfg.Audio.Clips); err != nil {
		logger.Warn("some clips failed to load", zap.Error(err))
	}
	logger.Info("audio ready", zap.Strings("clips", mgr.Clips()))

	return mgr, mgr.Close
}

// clipSource prefers the working directory over the user config dir.
func clipSource() *assets.Manager {
	src := assets.NewManager()
	for _, dir := range []string{config.ConfigDir(), "."} {
		if err := src.AddDir(dir); err != nil {
			logger.Debug("asset dir skipped", zap.Error(err))
		}
	}
	return src
}
