// Package main is the entry point for the Wolfcast terminal client. Frames
// are drawn with half-block characters, two pixels per cell.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"go.uber.org/zap"

	"github.com/Faultbox/wolfcast/internal/config"
	"github.com/Faultbox/wolfcast/internal/engine/audio"
	"github.com/Faultbox/wolfcast/internal/engine/termview"
	"github.com/Faultbox/wolfcast/internal/game"
	"github.com/Faultbox/wolfcast/internal/game/sfx"
	"github.com/Faultbox/wolfcast/internal/logger"
)

const defaultLogFile = "wolfterm.log"

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	// The terminal owns stdout, so logs only go to a file.
	logFile := cfg.Logging.LogFile
	if logFile == "" {
		logFile = defaultLogFile
	}
	if err := logger.Init(logger.Options{Level: cfg.Logging.Level, File: logger.DefaultFileConfig(logFile)}); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}

	if err := run(cfg); err != nil {
		logger.Error("game error", zap.Error(err))
		logger.Sync()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	logger.Sync()
}

func run(cfg *config.Config) error {
	res, err := game.LoadResources(cfg)
	if err != nil {
		return err
	}
	defer res.Close()

	term, err := termview.New()
	if err != nil {
		return err
	}
	defer term.Close()

	sounds := audio.New()
	if err := sounds.Init(); err != nil {
		logger.Warn("audio disabled", zap.Error(err))
	}
	defer sounds.Close()
	sounds.SetMasterVolume(float64(cfg.Audio.MasterVolume))
	sounds.SetSFXVolume(float64(cfg.Audio.SFXVolume))
	sounds.SetMuted(cfg.Audio.Muted)
	sounds.LoadSounds(res.Data, sfx.All)

	// Render at the terminal's pixel size with one ray per column; the
	// presenter rescales if the terminal is resized later.
	opts := res.Options(cfg)
	opts.View.Width, opts.View.Height = term.FrameSize()
	opts.View.ColumnWidth = 1
	in := termview.NewInput(term.Screen())
	defer in.Close()
	opts.Input = in
	opts.Presenter = term
	opts.Sounds = sounds

	g, err := game.New(opts)
	if err != nil {
		return fmt.Errorf("failed to create game: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return g.Run(ctx)
}
