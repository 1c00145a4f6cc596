// Package entity holds the player and the actors that populate a level.
package entity

import (
	"math"

	"github.com/Faultbox/wolfcast/internal/engine/view"
	"github.com/Faultbox/wolfcast/internal/game/controls"
	"github.com/Faultbox/wolfcast/internal/game/sfx"
	"github.com/Faultbox/wolfcast/internal/game/world"
	wmath "github.com/Faultbox/wolfcast/pkg/math"
)

// Head bob shape.
const (
	bobRate      = 9.0  // phase radians per second of movement
	bobAmplitude = 10.0 // pixels
)

// Player defaults.
const (
	DefaultHealth  = 100
	DefaultAmmo    = 80
	DefaultMaxAmmo = 100
	DefaultLives   = 3
	respawnAmmo    = 50
)

// PlayerConfig holds movement tuning. Speeds are per second.
type PlayerConfig struct {
	MoveSpeed        float64
	TurnSpeed        float64 // radians per second for keyboard turning
	MouseSensitivity float64 // radians per pixel
	CollisionMargin  float64
}

// DefaultPlayerConfig returns the stock tuning.
func DefaultPlayerConfig() PlayerConfig {
	return PlayerConfig{
		MoveSpeed:        3.0,
		TurnSpeed:        1.8,
		MouseSensitivity: 0.001,
		CollisionMargin:  0.2,
	}
}

// Player is the viewer: pose, head bob, stats and weapons.
type Player struct {
	Pose view.Pose

	Health    int
	MaxHealth int
	Ammo      int
	MaxAmmo   int
	Lives     int
	Score     int
	Weapon    Weapon

	cfg      PlayerConfig
	sounds   sfx.Player
	bobPhase float64
	lastStep float64
}

// NewPlayer creates a player at pose. sounds may be nil.
func NewPlayer(pose view.Pose, cfg PlayerConfig, sounds sfx.Player) *Player {
	if sounds == nil {
		sounds = sfx.Nop{}
	}
	return &Player{
		Pose:      pose,
		Health:    DefaultHealth,
		MaxHealth: DefaultHealth,
		Ammo:      DefaultAmmo,
		MaxAmmo:   DefaultMaxAmmo,
		Lives:     DefaultLives,
		Weapon:    WeaponPistol,
		cfg:       cfg,
		sounds:    sounds,
	}
}

// Update applies one frame of controls: turning, movement with collision
// against gm and doors, head bob and step sounds.
func (p *Player) Update(c controls.Controls, dt float64, gm *world.GridMap, doors *world.DoorSet) {
	turn := c.MouseDX * p.cfg.MouseSensitivity
	if c.TurnLeft {
		turn -= p.cfg.TurnSpeed * dt
	}
	if c.TurnRight {
		turn += p.cfg.TurnSpeed * dt
	}
	p.Pose.Angle = wmath.NormalizeAngle(p.Pose.Angle + turn)

	fwd := p.Pose.Forward()
	// Right-hand vector; +Y is south, so right of east is south.
	right := wmath.Vec2{X: -fwd.Y, Y: fwd.X}

	var dir wmath.Vec2
	if c.Forward {
		dir = dir.Add(fwd)
	}
	if c.Back {
		dir = dir.Sub(fwd)
	}
	if c.StrafeRight {
		dir = dir.Add(right)
	}
	if c.StrafeLeft {
		dir = dir.Sub(right)
	}

	if dir.X == 0 && dir.Y == 0 {
		p.bobPhase = 0
		p.lastStep = 0
		return
	}

	p.move(dir.Scale(p.cfg.MoveSpeed*dt), gm, doors)

	p.bobPhase += bobRate * dt
	// One step per half bob cycle.
	if int(p.bobPhase/math.Pi) > int(p.lastStep/math.Pi) {
		p.sounds.Play(sfx.Step)
	}
	p.lastStep = p.bobPhase
}

// move slides along each axis independently so walls block only the
// colliding component.
func (p *Player) move(delta wmath.Vec2, gm *world.GridMap, doors *world.DoorSet) {
	m := p.cfg.CollisionMargin
	pos := p.Pose.Pos

	if delta.X != 0 {
		nx := pos.X + delta.X
		if !gm.IsWallAt(nx+math.Copysign(m, delta.X), pos.Y, doors) {
			pos.X = nx
		}
	}
	if delta.Y != 0 {
		ny := pos.Y + delta.Y
		if !gm.IsWallAt(pos.X, ny+math.Copysign(m, delta.Y), doors) {
			pos.Y = ny
		}
	}
	p.Pose.Pos = pos
}

// Bob returns the vertical head-bob offset in pixels.
func (p *Player) Bob() int {
	return int(math.Sin(p.bobPhase) * bobAmplitude)
}

// BobPhase returns the raw bob phase, used by the weapon overlay sway.
func (p *Player) BobPhase() float64 { return p.bobPhase }

// SelectWeapon switches to slot 1-4.
func (p *Player) SelectWeapon(slot int) {
	w := Weapon(slot - 1)
	if w < 0 || w >= numWeapons || w == p.Weapon {
		return
	}
	p.Weapon = w
	p.sounds.Play(sfx.Pickup)
}

// CycleWeapon moves dir slots forward or back, wrapping.
func (p *Player) CycleWeapon(dir int) {
	if dir == 0 {
		return
	}
	n := int(numWeapons)
	p.Weapon = Weapon(((int(p.Weapon)+dir)%n + n) % n)
	p.sounds.Play(sfx.Pickup)
}

// Shoot fires the current weapon. It returns false when out of ammo.
func (p *Player) Shoot() bool {
	if !p.Weapon.UsesAmmo() {
		return true
	}
	if p.Ammo <= 0 {
		return false
	}
	p.Ammo--
	p.sounds.Play(sfx.Pistol)
	return true
}

// TakeDamage lowers health. At zero a life is lost and, if any remain,
// the player respawns in place with full health.
func (p *Player) TakeDamage(amount int) {
	if p.Lives <= 0 || amount <= 0 {
		return
	}
	p.Health -= amount
	if p.Health > 0 {
		p.sounds.Play(sfx.Pain)
		return
	}

	p.Health = 0
	p.Lives--
	p.sounds.Play(sfx.Death)
	if p.Lives > 0 {
		p.Health = p.MaxHealth
		p.Ammo = respawnAmmo
	}
}

// Heal restores health up to the maximum.
func (p *Player) Heal(amount int) {
	p.Health = min(p.MaxHealth, p.Health+amount)
	p.sounds.Play(sfx.Pickup)
}

// AddAmmo adds ammunition up to the maximum.
func (p *Player) AddAmmo(amount int) {
	p.Ammo = min(p.MaxAmmo, p.Ammo+amount)
	p.sounds.Play(sfx.Pickup)
}

// AddScore adds points.
func (p *Player) AddScore(points int) {
	p.Score += points
}

// Alive reports whether the player has lives left.
func (p *Player) Alive() bool {
	return p.Lives > 0
}
