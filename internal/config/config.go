// Package config handles game configuration loading and management.
package config

import (
	"math"

	"github.com/Faultbox/wolfcast/internal/engine/view"
	"github.com/Faultbox/wolfcast/internal/game/entity"
	"github.com/Faultbox/wolfcast/internal/game/world"
)

// Config holds all game settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Render   RenderConfig   `yaml:"render"`
	Player   PlayerConfig   `yaml:"player"`
	Doors    DoorsConfig    `yaml:"doors"`
	Audio    AudioConfig    `yaml:"audio"`
	Game     GameConfig     `yaml:"game"`
	Data     DataConfig     `yaml:"data"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds display settings.
type GraphicsConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
	FPSLimit   int  `yaml:"fps_limit"`
}

// RenderConfig holds raycasting and projection settings.
type RenderConfig struct {
	FOV         float64 `yaml:"fov"`          // degrees
	ColumnWidth int     `yaml:"column_width"` // pixels per ray
	MaxDepth    float64 `yaml:"max_depth"`
	MaxSteps    int     `yaml:"max_steps"`
	TextureSize int     `yaml:"texture_size"`
}

// PlayerConfig holds movement settings. Speeds are per second.
type PlayerConfig struct {
	MoveSpeed        float64 `yaml:"move_speed"`
	TurnSpeed        float64 `yaml:"turn_speed"`
	MouseSensitivity float64 `yaml:"mouse_sensitivity"` // radians per pixel
	CollisionMargin  float64 `yaml:"collision_margin"`
}

// DoorsConfig holds door timing in seconds.
type DoorsConfig struct {
	OpenTime          float64 `yaml:"open_time"`
	CloseTime         float64 `yaml:"close_time"`
	AutoCloseDelay    float64 `yaml:"auto_close_delay"`
	PassableThreshold float64 `yaml:"passable_threshold"`
}

// AudioConfig holds audio settings.
type AudioConfig struct {
	MasterVolume float32 `yaml:"master_volume"`
	SFXVolume    float32 `yaml:"sfx_volume"`
	Muted        bool    `yaml:"muted"`
}

// GameConfig holds gameplay settings.
type GameConfig struct {
	Map         string `yaml:"map"`
	TickRate    int    `yaml:"tick_rate"`
	ShowFPS     bool   `yaml:"show_fps"`
	ShowMinimap bool   `yaml:"show_minimap"`
}

// DataConfig holds game data locations.
type DataConfig struct {
	Paths []string `yaml:"paths"` // directories searched before the embedded defaults
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
			FPSLimit:   60,
		},
		Render: RenderConfig{
			FOV:         60,
			ColumnWidth: 2,
			MaxDepth:    20,
			MaxSteps:    20,
			TextureSize: 64,
		},
		Player: PlayerConfig{
			MoveSpeed:        3.0,
			TurnSpeed:        1.8,
			MouseSensitivity: 0.001,
			CollisionMargin:  0.2,
		},
		Doors: DoorsConfig{
			OpenTime:          2.8,
			CloseTime:         2.2,
			AutoCloseDelay:    5,
			PassableThreshold: 0.7,
		},
		Audio: AudioConfig{
			MasterVolume: 0.8,
			SFXVolume:    0.8,
			Muted:        false,
		},
		Game: GameConfig{
			Map:         "e1m1",
			TickRate:    60,
			ShowFPS:     true,
			ShowMinimap: true,
		},
		Data: DataConfig{
			Paths: []string{"data"},
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// View derives the immutable projection setup. Fields left at zero fall
// back to the engine defaults.
func (c *Config) View() view.Config {
	v := view.Default()
	v.Width = c.Graphics.Width
	v.Height = c.Graphics.Height
	if c.Render.FOV > 0 {
		v.FOV = c.Render.FOV * math.Pi / 180
	}
	if c.Render.ColumnWidth > 0 {
		v.ColumnWidth = c.Render.ColumnWidth
	}
	if c.Render.MaxDepth > 0 {
		v.MaxDepth = c.Render.MaxDepth
	}
	if c.Render.MaxSteps > 0 {
		v.MaxSteps = c.Render.MaxSteps
	}
	return v
}

// DoorConfig converts door timings into rates.
func (c *Config) DoorConfig() world.DoorConfig {
	d := world.DefaultDoorConfig()
	if c.Doors.OpenTime > 0 {
		d.OpenRate = 1 / c.Doors.OpenTime
	}
	if c.Doors.CloseTime > 0 {
		d.CloseRate = 1 / c.Doors.CloseTime
	}
	if c.Doors.AutoCloseDelay > 0 {
		d.AutoCloseDelay = c.Doors.AutoCloseDelay
	}
	if c.Doors.PassableThreshold > 0 {
		d.PassableThreshold = c.Doors.PassableThreshold
	}
	return d
}

// PlayerTuning converts the player section into movement tuning.
func (c *Config) PlayerTuning() entity.PlayerConfig {
	p := entity.DefaultPlayerConfig()
	if c.Player.MoveSpeed > 0 {
		p.MoveSpeed = c.Player.MoveSpeed
	}
	if c.Player.TurnSpeed > 0 {
		p.TurnSpeed = c.Player.TurnSpeed
	}
	if c.Player.MouseSensitivity > 0 {
		p.MouseSensitivity = c.Player.MouseSensitivity
	}
	if c.Player.CollisionMargin > 0 {
		p.CollisionMargin = c.Player.CollisionMargin
	}
	return p
}
