package entity

import (
	"math"

	"github.com/Faultbox/wolfcast/internal/engine/sprite"
	"github.com/Faultbox/wolfcast/internal/game/sfx"
	"github.com/Faultbox/wolfcast/internal/game/world"
	wmath "github.com/Faultbox/wolfcast/pkg/math"
)

// aimCone is the bearing tolerance, in radians, for a shot to hit.
const aimCone = 0.15

// Sight answers line-of-sight queries.
type Sight interface {
	LineOfSight(a, b wmath.Vec2) bool
}

// Context is the world view handed to behaviors each frame.
type Context struct {
	Player *Player
	Grid   *world.GridMap
	Doors  *world.DoorSet
	Paths  *world.PathFinder
	Sight  Sight
	Sounds sfx.Player
}

func (c *Context) sounds() sfx.Player {
	if c.Sounds == nil {
		return sfx.Nop{}
	}
	return c.Sounds
}

// Behavior drives an actor. Its state never reaches the renderer except
// through the actor's sprite.
type Behavior interface {
	Update(a *Actor, ctx *Context, dt float64)
}

// Damageable is implemented by behaviors that can be shot.
type Damageable interface {
	TakeDamage(a *Actor, amount int) (killed bool)
	Alive() bool
}

// Actor is a sprite with a behavior.
type Actor struct {
	Name     string
	Sprite   *sprite.Sprite
	Behavior Behavior
}

// NewActor creates an actor whose sprite starts with texture name.
func NewActor(name string, pos wmath.Vec2, b Behavior) *Actor {
	if b == nil {
		b = Inert{}
	}
	return &Actor{
		Name:     name,
		Sprite:   sprite.New(pos, name),
		Behavior: b,
	}
}

// Pos returns the actor position.
func (a *Actor) Pos() wmath.Vec2 { return a.Sprite.Pos }

// Update runs the behavior.
func (a *Actor) Update(ctx *Context, dt float64) {
	a.Behavior.Update(a, ctx, dt)
}

// Shootable reports whether the actor can currently take a hit.
func (a *Actor) Shootable() bool {
	d, ok := a.Behavior.(Damageable)
	return ok && d.Alive()
}

// Inert never acts; decorations use it.
type Inert struct{}

// Update does nothing.
func (Inert) Update(*Actor, *Context, float64) {}

// FindTarget returns the nearest shootable actor within aimCone of the
// shooter's heading that sight can see, or nil.
func FindTarget(p *Player, actors []*Actor, sight Sight) *Actor {
	var (
		best     *Actor
		bestDist = math.Inf(1)
	)
	for _, a := range actors {
		if !a.Shootable() {
			continue
		}
		d := a.Pos().Sub(p.Pose.Pos)
		bearing := wmath.NormalizeAngle(d.Angle() - p.Pose.Angle)
		if math.Abs(bearing) >= aimCone {
			continue
		}
		dist := d.Length()
		if dist >= bestDist {
			continue
		}
		if sight != nil && !sight.LineOfSight(p.Pose.Pos, a.Pos()) {
			continue
		}
		best, bestDist = a, dist
	}
	return best
}
