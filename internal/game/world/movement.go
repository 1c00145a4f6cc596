package world

import (
	wmath "github.com/Faultbox/wolfcast/pkg/math"
)

// waypointRadius is how close a mover must get to a cell centre before the
// next waypoint is taken.
const waypointRadius = 0.2

// PathFollower steers a mover along cell centres produced by a PathFinder.
type PathFollower struct {
	finder *PathFinder

	path  [][2]int
	index int
	goal  [2]int
}

// NewPathFollower creates a follower using finder.
func NewPathFollower(finder *PathFinder) *PathFollower {
	return &PathFollower{finder: finder}
}

// MoveTo plans a route from the cell containing from to goal. It returns
// false when no route exists. An existing route to the same goal is kept.
func (pf *PathFollower) MoveTo(from, goal wmath.Vec2) bool {
	gx, gy := goal.Cell()
	if pf.Following() && pf.goal == [2]int{gx, gy} {
		return true
	}

	sx, sy := from.Cell()
	path := pf.finder.FindPath(sx, sy, gx, gy)
	if len(path) == 0 {
		pf.Clear()
		return false
	}

	// The first node is the mover's own cell.
	pf.path = path[1:]
	pf.index = 0
	pf.goal = [2]int{gx, gy}
	return true
}

// Next returns the point to head for from pos. ok is false once the route
// is complete.
func (pf *PathFollower) Next(pos wmath.Vec2) (target wmath.Vec2, ok bool) {
	for pf.index < len(pf.path) {
		target = CellCenter(pf.path[pf.index][0], pf.path[pf.index][1])
		if pos.Distance(target) > waypointRadius {
			return target, true
		}
		pf.index++
	}
	return wmath.Vec2{}, false
}

// Following reports whether waypoints remain.
func (pf *PathFollower) Following() bool {
	return pf.index < len(pf.path)
}

// Clear drops the current route.
func (pf *PathFollower) Clear() {
	pf.path = nil
	pf.index = 0
}

// Path returns the remaining waypoints.
func (pf *PathFollower) Path() [][2]int {
	return pf.path[pf.index:]
}

// CellCenter converts a cell to the world point at its centre.
func CellCenter(x, y int) wmath.Vec2 {
	return wmath.Vec2{X: float64(x) + 0.5, Y: float64(y) + 0.5}
}
