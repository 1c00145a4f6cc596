// Package main is the entry point for the Wolfcast SDL2/OpenGL client.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"go.uber.org/zap"

	"github.com/Faultbox/wolfcast/internal/config"
	"github.com/Faultbox/wolfcast/internal/engine/audio"
	"github.com/Faultbox/wolfcast/internal/engine/input"
	"github.com/Faultbox/wolfcast/internal/engine/renderer"
	"github.com/Faultbox/wolfcast/internal/engine/window"
	"github.com/Faultbox/wolfcast/internal/game"
	"github.com/Faultbox/wolfcast/internal/game/sfx"
	"github.com/Faultbox/wolfcast/internal/logger"
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logOpts := logger.Options{Level: cfg.Logging.Level, Console: true}
	if cfg.Logging.LogFile != "" {
		logOpts.File = logger.DefaultFileConfig(cfg.Logging.LogFile)
	}
	if err := logger.Init(logOpts); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}

	logger.Info("=== Wolfcast ===")
	logger.Debug("config loaded", zap.Any("config", cfg))

	if err := run(cfg); err != nil {
		logger.Error("game error", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}

	logger.Info("game closed normally")
	logger.Sync()
}

func run(cfg *config.Config) error {
	res, err := game.LoadResources(cfg)
	if err != nil {
		return err
	}
	defer res.Close()

	// Window first: the GL context must exist before the renderer.
	win, err := window.New(window.Config{
		Title:      "Wolfcast - " + res.Level.Name,
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
		GrabMouse:  true,
	})
	if err != nil {
		return fmt.Errorf("failed to create window: %w", err)
	}
	defer win.Close()

	rend, err := renderer.New(win)
	if err != nil {
		return fmt.Errorf("failed to create renderer: %w", err)
	}
	defer rend.Close()

	sounds := newAudio(cfg, res)
	defer sounds.Close()

	opts := res.Options(cfg)
	opts.Input = input.New()
	opts.Presenter = rend
	opts.Sounds = sounds

	g, err := game.New(opts)
	if err != nil {
		return fmt.Errorf("failed to create game: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return g.Run(ctx)
}

// newAudio starts the speaker and loads every effect. A failed init
// leaves the manager silent.
func newAudio(cfg *config.Config, res *game.Resources) *audio.Manager {
	m := audio.New()
	if err := m.Init(); err != nil {
		logger.Warn("audio disabled", zap.Error(err))
	}
	m.SetMasterVolume(float64(cfg.Audio.MasterVolume))
	m.SetSFXVolume(float64(cfg.Audio.SFXVolume))
	m.SetMuted(cfg.Audio.Muted)
	m.LoadSounds(res.Data, sfx.All)
	return m
}
