package world

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/wolfcast/internal/logger"
	"github.com/Faultbox/wolfcast/pkg/formats"
	wmath "github.com/Faultbox/wolfcast/pkg/math"
)

// Level is a playable map: geometry, doors, and where things start.
type Level struct {
	Name  string
	Grid  *GridMap
	Doors *DoorSet
	Paths *PathFinder

	SpawnPos   wmath.Vec2
	SpawnAngle float64
	Things     []formats.Thing
}

// NewLevel builds a level from a decoded map file.
func NewLevel(m *formats.Map, doorCfg DoorConfig) (*Level, error) {
	grid, err := GridFromFormat(m)
	if err != nil {
		return nil, fmt.Errorf("level %q: %w", m.Name, err)
	}

	cells := make([][2]int, 0, len(m.Doors))
	for _, d := range m.Doors {
		if !grid.IsDoor(d.X, d.Y) {
			return nil, fmt.Errorf("level %q: door at (%d,%d) is not on a door cell", m.Name, d.X, d.Y)
		}
		cells = append(cells, [2]int{d.X, d.Y})
	}
	doors := NewDoorSet(cells, doorCfg)

	lvl := &Level{
		Name:       m.Name,
		Grid:       grid,
		Doors:      doors,
		Paths:      NewPathFinder(grid, doors),
		SpawnPos:   wmath.Vec2{X: m.Spawn.X, Y: m.Spawn.Y},
		SpawnAngle: m.Spawn.Angle,
		Things:     m.Things,
	}
	if lvl.Grid.IsWallAt(lvl.SpawnPos.X, lvl.SpawnPos.Y, nil) {
		return nil, fmt.Errorf("level %q: spawn (%.2f,%.2f) is inside a wall", m.Name, m.Spawn.X, m.Spawn.Y)
	}
	return lvl, nil
}

// MapSource resolves a level name to a decoded map.
type MapSource interface {
	LoadMap(name string) (*formats.Map, error)
}

// Manager owns the current level and level transitions.
type Manager struct {
	source  MapSource
	doorCfg DoorConfig
	current *Level
}

// NewManager creates a manager loading maps from source.
func NewManager(source MapSource, doorCfg DoorConfig) *Manager {
	return &Manager{source: source, doorCfg: doorCfg}
}

// Current returns the current level, or nil before the first load.
func (m *Manager) Current() *Level {
	return m.current
}

// LoadLevel loads a level by name and makes it current.
func (m *Manager) LoadLevel(name string) (*Level, error) {
	fm, err := m.source.LoadMap(name)
	if err != nil {
		return nil, fmt.Errorf("loading map %s: %w", name, err)
	}

	lvl, err := NewLevel(fm, m.doorCfg)
	if err != nil {
		return nil, err
	}

	logger.Info("level loaded",
		zap.String("name", lvl.Name),
		zap.Int("width", lvl.Grid.Width()),
		zap.Int("height", lvl.Grid.Height()),
		zap.Int("doors", lvl.Doors.Len()),
		zap.Int("things", len(lvl.Things)))

	m.current = lvl
	return lvl, nil
}
