// Package sprite projects world-space billboards onto the screen.
package sprite

import (
	"math"

	"github.com/Faultbox/wolfcast/internal/engine/view"
	wmath "github.com/Faultbox/wolfcast/pkg/math"
)

// Projection is the screen square of a billboard.
type Projection struct {
	X        int     // screen x of the sprite centre
	Y        int     // top edge, before view bob
	Size     int     // width and height in pixels
	Distance float64 // perpendicular distance, the depth key
}

// Left returns the x of the left edge.
func (p Projection) Left() int { return p.X - p.Size/2 }

// Projector maps world points to screen squares using the same planar
// screen model as the ray caster.
type Projector struct {
	cfg     view.Config
	halfW   float64
	focal   float64 // (W/2) / tan(FOV/2)
	maxSize int
	cull    float64 // bearing beyond which points are off screen
}

// NewProjector creates a projector for cfg.
func NewProjector(cfg view.Config) *Projector {
	halfW := float64(cfg.Width) / 2
	return &Projector{
		cfg:     cfg,
		halfW:   halfW,
		focal:   halfW / math.Tan(cfg.HalfFOV()),
		maxSize: int(cfg.MaxSpriteScale * float64(cfg.Height)),
		cull:    cfg.HalfFOV() + cfg.SpriteMargin,
	}
}

// Project returns the screen square for a point, or false when the point is
// outside the view or too close to resolve. vshift moves the square down by
// that fraction of its size.
func (p *Projector) Project(pos wmath.Vec2, vshift float64, pose view.Pose) (Projection, bool) {
	d := pos.Sub(pose.Pos)
	delta := wmath.NormalizeAngle(d.Angle() - pose.Angle)
	if math.Abs(delta) > p.cull {
		return Projection{}, false
	}

	perp := d.Length() * math.Cos(delta)
	if perp < p.cfg.MinSpriteDistance {
		return Projection{}, false
	}

	size := int(float64(p.cfg.Height) / perp)
	if size > p.maxSize {
		size = p.maxSize
	}
	return Projection{
		X:        int(p.halfW + math.Tan(delta)*p.focal),
		Y:        int(float64(p.cfg.Height)/2-float64(size)/2) + int(float64(size)*vshift),
		Size:     size,
		Distance: perp,
	}, true
}

// ProjectSprite projects s and records the result on its scratch fields.
func (p *Projector) ProjectSprite(s *Sprite, pose view.Pose) bool {
	s.Distance = s.Pos.Distance(pose.Pos)
	s.Projection, s.Visible = p.Project(s.Pos, s.VShift, pose)
	return s.Visible
}
