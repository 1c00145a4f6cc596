// Package raycast turns a viewer pose into one wall hit per screen column
// by DDA traversal of the level grid.
package raycast

import (
	"math"

	"github.com/Faultbox/wolfcast/internal/engine/view"
	"github.com/Faultbox/wolfcast/internal/game/world"
	wmath "github.com/Faultbox/wolfcast/pkg/math"
)

// epsilon replaces a direction component that is exactly zero.
const epsilon = 1e-6

// Side is the kind of grid line a ray crossed last.
type Side uint8

// Sides.
const (
	Vertical   Side = iota // crossed an x = const line (east/west face)
	Horizontal             // crossed a y = const line (north/south face)
)

// String returns the side name.
func (s Side) String() string {
	if s == Horizontal {
		return "horizontal"
	}
	return "vertical"
}

// Hit is the result of one ray.
type Hit struct {
	Distance   float64    // perpendicular to the view plane, in [0, MaxDepth]
	Code       world.Cell // material of the surface hit
	Side       Side
	TextureU   float64 // horizontal texture coordinate in [0, 1)
	Angle      float64 // world angle of the ray
	CellX      int
	CellY      int
	DoorOffset float64 // slide of the door leaf when Code is a door
	Exhausted  bool    // step bound reached before any surface
}

// Caster casts rays against a grid and its doors.
type Caster struct {
	cfg   view.Config
	grid  *world.GridMap
	doors *world.DoorSet

	buf []Hit
}

// New creates a caster. doors may be nil, in which case every door cell is solid.
func New(cfg view.Config, gm *world.GridMap, doors *world.DoorSet) *Caster {
	return &Caster{
		cfg:   cfg,
		grid:  gm,
		doors: doors,
		buf:   make([]Hit, 0, cfg.Columns()),
	}
}

// Config returns the projection the caster was built with.
func (c *Caster) Config() view.Config { return c.cfg }

// Cast returns one hit per column, left to right. The returned slice is
// reused by the next call.
func (c *Caster) Cast(pose view.Pose) []Hit {
	c.buf = c.CastInto(c.buf[:0], pose)
	return c.buf
}

// CastInto appends one hit per column to dst and returns it.
func (c *Caster) CastInto(dst []Hit, pose view.Pose) []Hit {
	start := pose.Angle - c.cfg.HalfFOV()
	delta := c.cfg.DeltaAngle()
	for i := 0; i < c.cfg.Columns(); i++ {
		dst = append(dst, c.CastRay(pose, start+float64(i)*delta))
	}
	return dst
}

// CastRay traces a single ray at the given world angle.
func (c *Caster) CastRay(pose view.Pose, angle float64) Hit {
	px, py := pose.Pos.X, pose.Pos.Y

	cos, sin := math.Cos(angle), math.Sin(angle)
	if cos == 0 {
		cos = epsilon
	}
	if sin == 0 {
		sin = epsilon
	}

	mapX, mapY := pose.Pos.Cell()
	deltaX, deltaY := math.Abs(1/cos), math.Abs(1/sin)

	var stepX, stepY int
	var sideX, sideY float64
	if cos < 0 {
		stepX = -1
		sideX = (px - float64(mapX)) * deltaX
	} else {
		stepX = 1
		sideX = (float64(mapX) + 1 - px) * deltaX
	}
	if sin < 0 {
		stepY = -1
		sideY = (py - float64(mapY)) * deltaY
	} else {
		stepY = 1
		sideY = (float64(mapY) + 1 - py) * deltaY
	}

	hit := Hit{Code: world.CellWall, Angle: angle, Exhausted: true}

	// rayDist is the Euclidean length to the last grid line crossed.
	rayDist := func() float64 {
		if hit.Side == Vertical {
			return (float64(mapX) - px + float64(1-stepX)/2) / cos
		}
		return (float64(mapY) - py + float64(1-stepY)/2) / sin
	}
	// crossing is the fractional coordinate of the crossing point along the
	// grid line.
	crossing := func(dist float64) float64 {
		var v float64
		if hit.Side == Vertical {
			v = py + dist*sin
		} else {
			v = px + dist*cos
		}
		return v - math.Floor(v)
	}

	for step := 0; step < c.cfg.MaxSteps; step++ {
		if sideX < sideY {
			sideX += deltaX
			mapX += stepX
			hit.Side = Vertical
		} else {
			sideY += deltaY
			mapY += stepY
			hit.Side = Horizontal
		}

		if !c.grid.InBounds(mapX, mapY) {
			hit.Code = world.CellWall
			hit.Exhausted = false
			break
		}

		code := c.grid.WallCode(mapX, mapY)
		if code == world.CellEmpty {
			continue
		}
		if code == world.CellDoor {
			if d := c.doors.At(mapX, mapY); d != nil {
				// The gap is measured from the low edge of the cell whichever
				// way the ray travels.
				if crossing(rayDist()) < d.OpenAmount() {
					continue
				}
				hit.DoorOffset = d.OpenAmount()
			}
		}
		hit.Code = code
		hit.Exhausted = false
		break
	}

	hit.CellX, hit.CellY = mapX, mapY

	dist := rayDist()
	hit.TextureU = crossing(dist)
	if hit.Code == world.CellDoor {
		hit.TextureU -= hit.DoorOffset
	}
	hit.TextureU = wmath.Clamp(hit.TextureU, 0, math.Nextafter(1, 0))

	if hit.Exhausted {
		hit.Code = world.CellWall
		hit.Distance = c.cfg.MaxDepth
		return hit
	}
	// MaxDepth is a render cap: walls farther away report the cap, not the
	// true distance.
	hit.Distance = wmath.Clamp(dist*math.Cos(pose.Angle-angle), 0, c.cfg.MaxDepth)
	return hit
}

// WallHeight is the projected strip height for a perpendicular distance.
func WallHeight(viewportHeight, distance float64) float64 {
	if distance <= 0 {
		return viewportHeight
	}
	return viewportHeight / distance
}

// LineOfSight samples the segment from a to b every LOSStep and reports
// whether no sample lands in a solid cell. Doors count as open once they
// are passable.
func (c *Caster) LineOfSight(a, b wmath.Vec2) bool {
	d := b.Sub(a)
	steps := int(d.Length() / c.cfg.LOSStep)
	if steps < 1 {
		steps = 1
	}
	inc := d.Scale(1 / float64(steps))

	p := a
	for i := 0; i < steps; i++ {
		p = p.Add(inc)
		if c.grid.IsWallAt(p.X, p.Y, c.doors) {
			return false
		}
	}
	return true
}
