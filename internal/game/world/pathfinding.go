package world

import (
	"container/heap"
	"math"
)

// pathNode is an A* search node.
type pathNode struct {
	x, y   int
	g, f   float64
	parent *pathNode
	index  int // position in the open heap
}

// openHeap orders nodes by lowest f.
type openHeap []*pathNode

func (h openHeap) Len() int           { return len(h) }
func (h openHeap) Less(i, j int) bool { return h[i].f < h[j].f }
func (h openHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *openHeap) Push(x any) {
	n := x.(*pathNode)
	n.index = len(*h)
	*h = append(*h, n)
}

func (h *openHeap) Pop() any {
	old := *h
	n := old[len(old)-1]
	old[len(old)-1] = nil
	n.index = -1
	*h = old[:len(old)-1]
	return n
}

// neighbours lists straight moves first, then diagonals.
var neighbours = [...]struct {
	dx, dy int
	cost   float64
}{
	{1, 0, 1}, {-1, 0, 1}, {0, 1, 1}, {0, -1, 1},
	{1, 1, math.Sqrt2}, {1, -1, math.Sqrt2}, {-1, 1, math.Sqrt2}, {-1, -1, math.Sqrt2},
}

// PathFinder searches walkable cells of a grid. Door cells are walkable
// only while their door is passable, so the answer changes as doors move.
type PathFinder struct {
	grid  *GridMap
	doors *DoorSet
}

// NewPathFinder creates a path finder over gm. doors may be nil.
func NewPathFinder(gm *GridMap, doors *DoorSet) *PathFinder {
	if gm == nil {
		return nil
	}
	return &PathFinder{grid: gm, doors: doors}
}

// IsWalkable reports whether an actor may stand in cell (x, y).
func (pf *PathFinder) IsWalkable(x, y int) bool {
	if pf == nil {
		return false
	}
	return !pf.grid.IsWall(x, y, pf.doors)
}

// FindPath returns the cells from start to goal inclusive, or nil when the
// goal is unreachable. Diagonal steps never cut a wall corner.
func (pf *PathFinder) FindPath(startX, startY, goalX, goalY int) [][2]int {
	if pf == nil || !pf.grid.InBounds(startX, startY) || !pf.IsWalkable(goalX, goalY) {
		return nil
	}

	w := pf.grid.Width()
	key := func(x, y int) int { return y*w + x }

	open := &openHeap{}
	closed := make(map[int]bool)
	nodes := make(map[int]*pathNode)

	start := &pathNode{x: startX, y: startY}
	start.f = octile(startX, startY, goalX, goalY)
	heap.Push(open, start)
	nodes[key(startX, startY)] = start

	budget := w * pf.grid.Height()
	for open.Len() > 0 && budget > 0 {
		budget--
		cur := heap.Pop(open).(*pathNode)
		if cur.x == goalX && cur.y == goalY {
			return reconstruct(cur)
		}
		closed[key(cur.x, cur.y)] = true

		for _, n := range neighbours {
			nx, ny := cur.x+n.dx, cur.y+n.dy
			if !pf.IsWalkable(nx, ny) || closed[key(nx, ny)] {
				continue
			}
			if n.dx != 0 && n.dy != 0 &&
				(!pf.IsWalkable(cur.x+n.dx, cur.y) || !pf.IsWalkable(cur.x, cur.y+n.dy)) {
				continue
			}

			g := cur.g + n.cost
			next, seen := nodes[key(nx, ny)]
			switch {
			case !seen:
				next = &pathNode{x: nx, y: ny, g: g, parent: cur}
				next.f = g + octile(nx, ny, goalX, goalY)
				nodes[key(nx, ny)] = next
				heap.Push(open, next)
			case g < next.g:
				next.f += g - next.g
				next.g = g
				next.parent = cur
				heap.Fix(open, next.index)
			}
		}
	}
	return nil
}

// octile is the exact cost of an unobstructed 8-way path.
func octile(x1, y1, x2, y2 int) float64 {
	dx := math.Abs(float64(x2 - x1))
	dy := math.Abs(float64(y2 - y1))
	return math.Max(dx, dy) + (math.Sqrt2-1)*math.Min(dx, dy)
}

func reconstruct(n *pathNode) [][2]int {
	var path [][2]int
	for ; n != nil; n = n.parent {
		path = append(path, [2]int{n.x, n.y})
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
