// Package view defines the immutable projection parameters and the viewer
// pose shared by the ray caster, the sprite projector and the compositor.
package view

import (
	"errors"
	"fmt"
	"math"

	wmath "github.com/Faultbox/wolfcast/pkg/math"
)

// Config is the projection setup for one viewport. It is built once and
// passed by value; nothing in the engine mutates it.
type Config struct {
	Width  int     // viewport width in pixels
	Height int     // viewport height in pixels
	FOV    float64 // horizontal aperture in radians

	// ColumnWidth is the pixel width of one ray column. Wall strips and the
	// sprite depth test both derive their column index from it.
	ColumnWidth int

	// MaxDepth caps reported wall distances and is the distance of the
	// synthetic hit when traversal gives up. Sprites beyond the cap are
	// depth-tested against it, so nothing past MaxDepth is drawn over a wall.
	MaxDepth float64
	MaxSteps int     // DDA step bound per ray
	LOSStep  float64 // sample spacing for line-of-sight checks

	SpriteMargin      float64 // extra bearing beyond FOV/2 before a sprite is culled
	MinSpriteDistance float64 // perpendicular distance below which sprites are culled
	MaxSpriteScale    float64 // sprite size cap as a multiple of Height
}

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("invalid view config")

// Default returns the 1280x720, 60 degree setup with 2-pixel columns.
func Default() Config {
	return Config{
		Width:             1280,
		Height:            720,
		FOV:               math.Pi / 3,
		ColumnWidth:       2,
		MaxDepth:          20,
		MaxSteps:          20,
		LOSStep:           0.5,
		SpriteMargin:      0.5,
		MinSpriteDistance: 0.2,
		MaxSpriteScale:    5,
	}
}

// Validate reports the first unusable field.
func (c Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("%w: viewport %dx%d", ErrInvalidConfig, c.Width, c.Height)
	case c.FOV <= 0 || c.FOV >= math.Pi:
		return fmt.Errorf("%w: fov %.3f rad", ErrInvalidConfig, c.FOV)
	case c.ColumnWidth <= 0 || c.ColumnWidth > c.Width:
		return fmt.Errorf("%w: column width %d", ErrInvalidConfig, c.ColumnWidth)
	case c.MaxSteps <= 0 || c.MaxDepth <= 0:
		return fmt.Errorf("%w: max steps %d, max depth %.2f", ErrInvalidConfig, c.MaxSteps, c.MaxDepth)
	case c.LOSStep <= 0 || c.LOSStep > 1:
		return fmt.Errorf("%w: line of sight step %.2f", ErrInvalidConfig, c.LOSStep)
	case c.MaxSpriteScale <= 0:
		return fmt.Errorf("%w: max sprite scale %.2f", ErrInvalidConfig, c.MaxSpriteScale)
	}
	return nil
}

// Columns is the number of rays per frame.
func (c Config) Columns() int {
	return c.Width / c.ColumnWidth
}

// HalfFOV returns FOV/2.
func (c Config) HalfFOV() float64 {
	return c.FOV / 2
}

// DeltaAngle is the angular step between adjacent columns.
func (c Config) DeltaAngle() float64 {
	return c.FOV / float64(c.Columns())
}

// ColumnAt maps a screen x coordinate to its ray column. ok is false when x
// is off screen or beyond the last full column.
func (c Config) ColumnAt(x int) (col int, ok bool) {
	if x < 0 || x >= c.Width {
		return 0, false
	}
	col = x / c.ColumnWidth
	return col, col < c.Columns()
}

// Pose is the viewer position and heading. Heading 0 faces +X (east);
// positive angles turn towards +Y (south).
type Pose struct {
	Pos   wmath.Vec2
	Angle float64
}

// Forward returns the unit heading vector.
func (p Pose) Forward() wmath.Vec2 {
	return wmath.FromAngle(p.Angle)
}
