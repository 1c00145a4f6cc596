package view

import (
	"errors"
	"math"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.Columns() != 640 {
		t.Errorf("expected 640 columns, got %d", cfg.Columns())
	}
	if math.Abs(cfg.DeltaAngle()*640-cfg.FOV) > 1e-12 {
		t.Errorf("delta angle %v does not span fov", cfg.DeltaAngle())
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"zero width", func(c *Config) { c.Width = 0 }},
		{"fov too wide", func(c *Config) { c.FOV = math.Pi }},
		{"column wider than screen", func(c *Config) { c.ColumnWidth = c.Width + 1 }},
		{"no steps", func(c *Config) { c.MaxSteps = 0 }},
		{"coarse line of sight", func(c *Config) { c.LOSStep = 2 }},
		{"no sprite scale", func(c *Config) { c.MaxSpriteScale = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(&cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestColumnAt(t *testing.T) {
	cfg := Default()
	cfg.Width = 10
	cfg.ColumnWidth = 3 // 3 full columns, x=9 is a remainder pixel

	tests := []struct {
		x    int
		col  int
		want bool
	}{
		{0, 0, true},
		{2, 0, true},
		{3, 1, true},
		{8, 2, true},
		{9, 3, false},
		{-1, 0, false},
		{10, 0, false},
	}

	for _, tt := range tests {
		col, ok := cfg.ColumnAt(tt.x)
		if ok != tt.want || (ok && col != tt.col) {
			t.Errorf("ColumnAt(%d) = (%d, %v), want (%d, %v)", tt.x, col, ok, tt.col, tt.want)
		}
	}
}
