package game

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/wolfcast/internal/assets"
	"github.com/Faultbox/wolfcast/internal/config"
	"github.com/Faultbox/wolfcast/internal/engine/texture"
	"github.com/Faultbox/wolfcast/internal/game/world"
	"github.com/Faultbox/wolfcast/internal/logger"
)

// Resources are the assets a client loads before the loop starts.
type Resources struct {
	Data     *assets.Manager
	Level    *world.Level
	Textures *texture.Provider
}

// LoadResources opens the configured data directories over the embedded
// defaults, loads the configured level and preloads its textures. Missing
// data directories are skipped with a warning.
func LoadResources(cfg *config.Config) (*Resources, error) {
	data := assets.NewManager()
	for _, dir := range cfg.Data.Paths {
		if err := data.AddDir(dir); err != nil {
			logger.Warn("skipping data dir", zap.Error(err))
		}
	}

	level, err := world.NewManager(data, cfg.DoorConfig()).LoadLevel(cfg.Game.Map)
	if err != nil {
		data.Close()
		return nil, fmt.Errorf("loading level: %w", err)
	}

	textures := texture.NewProvider(data, cfg.Render.TextureSize)
	codes := make([]world.Cell, 0, world.CellDoor)
	for c := world.Cell(1); c <= world.CellDoor; c++ {
		codes = append(codes, c)
	}
	names := make([]string, 0, len(level.Things))
	for _, th := range level.Things {
		names = append(names, th.Name)
	}
	textures.Preload(codes, names)

	return &Resources{Data: data, Level: level, Textures: textures}, nil
}

// Options returns game options built from cfg and the loaded resources.
// Input, presenter and sounds are left to the client.
func (r *Resources) Options(cfg *config.Config) Options {
	return Options{
		View:          cfg.View(),
		Level:         r.Level,
		Textures:      r.Textures,
		Player:        cfg.PlayerTuning(),
		ShowFPS:       cfg.Game.ShowFPS,
		ShowMinimap:   cfg.Game.ShowMinimap,
		FPSLimit:      cfg.Graphics.FPSLimit,
		ScreenshotDir: "screenshots",
	}
}

// Close releases the asset sources.
func (r *Resources) Close() {
	r.Data.Close()
}
