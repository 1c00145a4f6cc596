// Package world holds the level geometry: the static occupancy grid, the
// doors that alter it at runtime, and grid-level path finding.
package world

import (
	"errors"
	"fmt"
	"math"

	"github.com/Faultbox/wolfcast/pkg/formats"
)

// Cell is a grid cell code.
type Cell uint8

// Cell codes. 1 through 6 are distinct wall materials.
const (
	CellEmpty    Cell = 0
	CellWall     Cell = 1 // also the material reported outside the grid
	CellDoor     Cell = 7
	MaxWallCode  Cell = 6
	maxCellValue      = CellDoor
)

// IsSolidMaterial reports whether c blocks rays regardless of door state.
func (c Cell) IsSolidMaterial() bool {
	return c != CellEmpty && c != CellDoor
}

// Grid errors.
var (
	ErrInvalidCell       = errors.New("invalid cell code")
	ErrInvalidDimensions = errors.New("invalid grid dimensions")
)

// GridMap is the immutable occupancy grid. Coordinates outside the grid are
// always solid.
type GridMap struct {
	width  int
	height int
	cells  []Cell // row-major
}

// NewGridMap validates and wraps a row-major cell slice.
func NewGridMap(width, height int, cells []Cell) (*GridMap, error) {
	if width <= 0 || height <= 0 || len(cells) != width*height {
		return nil, fmt.Errorf("%w: %dx%d with %d cells", ErrInvalidDimensions, width, height, len(cells))
	}
	for i, c := range cells {
		if c > maxCellValue {
			return nil, fmt.Errorf("%w: %d at (%d,%d)", ErrInvalidCell, c, i%width, i/width)
		}
	}
	owned := make([]Cell, len(cells))
	copy(owned, cells)
	return &GridMap{width: width, height: height, cells: owned}, nil
}

// GridFromRows builds a grid from rows of codes, as in map literals.
func GridFromRows(rows [][]Cell) (*GridMap, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no rows", ErrInvalidDimensions)
	}
	width := len(rows[0])
	cells := make([]Cell, 0, width*len(rows))
	for y, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrInvalidDimensions, y, len(row), width)
		}
		cells = append(cells, row...)
	}
	return NewGridMap(width, len(rows), cells)
}

// GridFromFormat converts a decoded level file.
func GridFromFormat(m *formats.Map) (*GridMap, error) {
	cells := make([]Cell, len(m.Cells))
	for i, c := range m.Cells {
		cells[i] = Cell(c)
	}
	return NewGridMap(int(m.Width), int(m.Height), cells)
}

// Width returns the number of columns.
func (g *GridMap) Width() int { return g.width }

// Height returns the number of rows.
func (g *GridMap) Height() int { return g.height }

// InBounds reports whether (x, y) is a grid cell.
func (g *GridMap) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < g.width && y < g.height
}

// WallCode returns the code at (x, y), or CellWall outside the grid.
func (g *GridMap) WallCode(x, y int) Cell {
	if !g.InBounds(x, y) {
		return CellWall
	}
	return g.cells[y*g.width+x]
}

// IsDoor reports whether (x, y) is an in-bounds door cell.
func (g *GridMap) IsDoor(x, y int) bool {
	return g.InBounds(x, y) && g.cells[y*g.width+x] == CellDoor
}

// IsWall reports whether (x, y) blocks movement and sight. Door cells defer
// to the door's passability when doors is non-nil; without a door set, or
// without a door registered at that cell, they are solid.
func (g *GridMap) IsWall(x, y int, doors *DoorSet) bool {
	if !g.InBounds(x, y) {
		return true
	}
	code := g.cells[y*g.width+x]
	if code == CellDoor && doors != nil {
		if d := doors.At(x, y); d != nil {
			return !d.IsPassable()
		}
	}
	return code != CellEmpty
}

// IsWallAt is IsWall for world coordinates.
func (g *GridMap) IsWallAt(x, y float64, doors *DoorSet) bool {
	return g.IsWall(int(math.Floor(x)), int(math.Floor(y)), doors)
}
