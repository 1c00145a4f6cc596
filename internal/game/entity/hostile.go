package entity

import (
	"fmt"
	"math"

	"github.com/Faultbox/wolfcast/internal/game/sfx"
	"github.com/Faultbox/wolfcast/internal/game/world"
	wmath "github.com/Faultbox/wolfcast/pkg/math"
)

// HostileState is the hostile behavior phase.
type HostileState uint8

// Hostile states.
const (
	HostileIdle HostileState = iota
	HostileChase
	HostileAttack
	HostilePain
	HostileDead
)

// String returns the state name.
func (s HostileState) String() string {
	switch s {
	case HostileIdle:
		return "idle"
	case HostileChase:
		return "chase"
	case HostileAttack:
		return "attack"
	case HostilePain:
		return "pain"
	case HostileDead:
		return "dead"
	default:
		return fmt.Sprintf("HostileState(%d)", uint8(s))
	}
}

// HostileConfig tunes a hostile.
type HostileConfig struct {
	Health         int
	Speed          float64 // units per second
	AttackRange    float64 // Chase -> Attack below this distance
	ReleaseRange   float64 // Attack -> Chase above this distance
	Damage         int
	AttackInterval float64 // seconds between shots
	FrameInterval  float64 // seconds per walk frame
	PainTime       float64 // seconds spent flinching
	Radius         float64 // collision margin
	Points         int     // score for a kill
	DeadShift      float64 // sprite VShift once dead
}

// DefaultHostileConfig returns the guard tuning.
func DefaultHostileConfig() HostileConfig {
	return HostileConfig{
		Health:         100,
		Speed:          3.0,
		AttackRange:    2.0,
		ReleaseRange:   2.5,
		Damage:         10,
		AttackInterval: 1.0,
		FrameInterval:  0.15,
		PainTime:       0.3,
		Radius:         0.2,
		Points:         100,
		DeadShift:      0.5,
	}
}

// Hostile chases the player on sight and shoots at close range. When the
// player is out of sight it follows a grid path towards the last seen
// position.
type Hostile struct {
	cfg    HostileConfig
	state  HostileState
	health int

	walk  *Animation
	shoot *Animation
	pain  string
	death *Animation

	attackClock float64
	painClock   float64
	lastSeen    wmath.Vec2
	follower    *world.PathFollower
}

// NewHostile creates a hostile whose textures are named after base:
// base_walk_0..3, base_attack_0..2, base_pain and base_die_0..3.
func NewHostile(base string, cfg HostileConfig) *Hostile {
	frames := func(kind string, n int) []string {
		out := make([]string, n)
		for i := range out {
			out[i] = fmt.Sprintf("%s_%s_%d", base, kind, i)
		}
		return out
	}
	return &Hostile{
		cfg:    cfg,
		state:  HostileIdle,
		health: cfg.Health,
		walk:   NewAnimation(cfg.FrameInterval, true, frames("walk", 4)...),
		shoot:  NewAnimation(cfg.FrameInterval, true, frames("attack", 3)...),
		pain:   base + "_pain",
		death:  NewAnimation(cfg.FrameInterval, false, frames("die", 4)...),
	}
}

// State returns the current state.
func (h *Hostile) State() HostileState { return h.state }

// Health returns remaining health.
func (h *Hostile) Health() int { return h.health }

// Alive reports whether the hostile can still act.
func (h *Hostile) Alive() bool { return h.state != HostileDead }

// Update advances the state machine.
func (h *Hostile) Update(a *Actor, ctx *Context, dt float64) {
	if h.state == HostileDead || ctx.Player == nil {
		return
	}

	target := ctx.Player.Pose.Pos
	dist := a.Pos().Distance(target)
	visible := ctx.Sight == nil || ctx.Sight.LineOfSight(a.Pos(), target)
	if visible {
		h.lastSeen = target
	}

	switch h.state {
	case HostileIdle:
		if visible {
			h.enter(a, HostileChase)
			ctx.sounds().Play(sfx.Alert)
		}

	case HostilePain:
		h.painClock -= dt
		if h.painClock <= 0 {
			h.enter(a, HostileChase)
		}

	case HostileChase:
		h.chase(a, ctx, visible, dt)
		if dist < h.cfg.AttackRange {
			h.enter(a, HostileAttack)
			return
		}
		if h.walk.Update(dt) {
			a.Sprite.Texture = h.walk.Frame()
		}

	case HostileAttack:
		if dist > h.cfg.ReleaseRange {
			h.enter(a, HostileChase)
			return
		}
		if h.shoot.Update(dt) {
			a.Sprite.Texture = h.shoot.Frame()
		}
		h.attackClock += dt
		if h.attackClock >= h.cfg.AttackInterval {
			h.attackClock -= h.cfg.AttackInterval
			ctx.sounds().Play(sfx.Pistol)
			ctx.Player.TakeDamage(h.cfg.Damage)
		}
	}
}

// chase steps towards the player when visible, otherwise along a path to
// the last sighting.
func (h *Hostile) chase(a *Actor, ctx *Context, visible bool, dt float64) {
	goal := h.lastSeen
	if !visible && h.follower == nil && ctx.Paths != nil {
		h.follower = world.NewPathFollower(ctx.Paths)
	}
	if !visible && h.follower != nil {
		if h.follower.MoveTo(a.Pos(), h.lastSeen) {
			if next, ok := h.follower.Next(a.Pos()); ok {
				goal = next
			}
		}
	} else if h.follower != nil {
		h.follower.Clear()
	}

	d := goal.Sub(a.Pos())
	if d.Length() < 1e-9 {
		return
	}
	step := d.Normalize().Scale(math.Min(h.cfg.Speed*dt, d.Length()))

	pos := a.Pos()
	if step.X != 0 && !ctx.Grid.IsWallAt(pos.X+step.X+math.Copysign(h.cfg.Radius, step.X), pos.Y, ctx.Doors) {
		pos.X += step.X
	}
	if step.Y != 0 && !ctx.Grid.IsWallAt(pos.X, pos.Y+step.Y+math.Copysign(h.cfg.Radius, step.Y), ctx.Doors) {
		pos.Y += step.Y
	}
	a.Sprite.Pos = pos
}

// TakeDamage applies a hit. It reports whether the hit killed.
func (h *Hostile) TakeDamage(a *Actor, amount int) bool {
	if h.state == HostileDead {
		return false
	}
	h.health -= amount
	if h.health <= 0 {
		h.health = 0
		h.enter(a, HostileDead)
		return true
	}
	h.enter(a, HostilePain)
	return false
}

// enter switches state and sets the matching texture.
func (h *Hostile) enter(a *Actor, s HostileState) {
	h.state = s
	switch s {
	case HostileChase:
		h.walk.Reset()
		a.Sprite.Texture = h.walk.Frame()
	case HostileAttack:
		h.attackClock = 0
		h.shoot.Reset()
		a.Sprite.Texture = h.shoot.Frame()
	case HostilePain:
		h.painClock = h.cfg.PainTime
		a.Sprite.Texture = h.pain
	case HostileDead:
		a.Sprite.Texture = h.death.Last()
		a.Sprite.VShift = h.cfg.DeadShift
	}
}

// Points returns the score awarded for a kill.
func (h *Hostile) Points() int { return h.cfg.Points }
