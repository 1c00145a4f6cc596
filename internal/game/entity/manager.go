package entity

import (
	"github.com/Faultbox/wolfcast/internal/engine/sprite"
	"github.com/Faultbox/wolfcast/pkg/formats"
	wmath "github.com/Faultbox/wolfcast/pkg/math"
)

// Spawner builds the behavior for a placed thing. Returning nil makes the
// thing inert.
type Spawner func(th formats.Thing) Behavior

// DefaultSpawner makes every placed actor a hostile and every decoration inert.
func DefaultSpawner(th formats.Thing) Behavior {
	if th.Kind == formats.ThingActor {
		return NewHostile(th.Name, DefaultHostileConfig())
	}
	return Inert{}
}

// Manager owns the actors of a level.
type Manager struct {
	actors  []*Actor
	sprites []*sprite.Sprite
}

// NewManager creates an empty manager.
func NewManager() *Manager {
	return &Manager{}
}

// Spawn creates actors for things using spawn.
func (m *Manager) Spawn(things []formats.Thing, spawn Spawner) {
	if spawn == nil {
		spawn = DefaultSpawner
	}
	for _, th := range things {
		m.Add(NewActor(th.Name, wmath.Vec2{X: th.X, Y: th.Y}, spawn(th)))
	}
}

// Add adds an actor.
func (m *Manager) Add(a *Actor) {
	m.actors = append(m.actors, a)
}

// All returns all actors in spawn order.
func (m *Manager) All() []*Actor {
	return m.actors
}

// Count returns the number of actors.
func (m *Manager) Count() int {
	return len(m.actors)
}

// Hostiles returns the number of actors that can still be shot.
func (m *Manager) Hostiles() int {
	n := 0
	for _, a := range m.actors {
		if a.Shootable() {
			n++
		}
	}
	return n
}

// Update runs every behavior once.
func (m *Manager) Update(ctx *Context, dt float64) {
	for _, a := range m.actors {
		a.Update(ctx, dt)
	}
}

// Sprites returns the drawable records of all actors. The slice is reused.
func (m *Manager) Sprites() []*sprite.Sprite {
	m.sprites = m.sprites[:0]
	for _, a := range m.actors {
		m.sprites = append(m.sprites, a.Sprite)
	}
	return m.sprites
}

// Clear removes all actors.
func (m *Manager) Clear() {
	m.actors = nil
	m.sprites = m.sprites[:0]
}
