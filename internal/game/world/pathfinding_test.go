package world

import (
	"testing"
)

func TestPathFinder_FindPath_Simple(t *testing.T) {
	gm := mockGrid(t,
		"00000",
		"00000",
		"00000",
		"00000",
		"00000",
	)
	pf := NewPathFinder(gm, nil)

	path := pf.FindPath(0, 0, 4, 4)
	if path == nil {
		t.Fatal("expected path, got nil")
	}
	if path[0] != [2]int{0, 0} {
		t.Errorf("path should start at (0,0), got %v", path[0])
	}
	if last := path[len(path)-1]; last != [2]int{4, 4} {
		t.Errorf("path should end at (4,4), got %v", last)
	}
	// Straight diagonal.
	if len(path) != 5 {
		t.Errorf("path length = %d, want 5", len(path))
	}
}

func TestPathFinder_FindPath_AroundWall(t *testing.T) {
	gm := mockGrid(t,
		"00100",
		"00100",
		"00100",
		"00100",
		"00000",
	)
	pf := NewPathFinder(gm, nil)

	path := pf.FindPath(0, 2, 4, 2)
	if path == nil {
		t.Fatal("expected path around obstacle, got nil")
	}
	for _, p := range path {
		if gm.IsWall(p[0], p[1], nil) {
			t.Errorf("path went through wall at %v", p)
		}
	}
}

func TestPathFinder_NoCornerCutting(t *testing.T) {
	gm := mockGrid(t,
		"01",
		"10",
	)
	pf := NewPathFinder(gm, nil)
	if path := pf.FindPath(0, 0, 1, 1); path != nil {
		t.Errorf("diagonal squeeze between walls allowed: %v", path)
	}
}

func TestPathFinder_Doors(t *testing.T) {
	gm := mockGrid(t,
		"11111",
		"10701",
		"11111",
	)
	doors := NewDoorSet([][2]int{{2, 1}}, DefaultDoorConfig())
	pf := NewPathFinder(gm, doors)

	if path := pf.FindPath(1, 1, 3, 1); path != nil {
		t.Errorf("path through closed door: %v", path)
	}

	openFully(doors.At(2, 1))
	path := pf.FindPath(1, 1, 3, 1)
	if len(path) != 3 {
		t.Fatalf("path through open door = %v, want 3 cells", path)
	}
}

func TestPathFinder_Unreachable(t *testing.T) {
	gm := mockGrid(t,
		"00100",
		"00100",
		"00100",
	)
	pf := NewPathFinder(gm, nil)

	tests := []struct {
		name           string
		sx, sy, gx, gy int
	}{
		{"walled off", 0, 1, 4, 1},
		{"goal is wall", 0, 0, 2, 0},
		{"start out of bounds", -1, 0, 1, 1},
		{"goal out of bounds", 0, 0, 10, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if path := pf.FindPath(tt.sx, tt.sy, tt.gx, tt.gy); path != nil {
				t.Errorf("expected nil, got %v", path)
			}
		})
	}
}

func TestPathFinder_SameStartGoal(t *testing.T) {
	gm := mockGrid(t, "000")
	pf := NewPathFinder(gm, nil)
	path := pf.FindPath(1, 0, 1, 0)
	if len(path) != 1 {
		t.Errorf("expected single-node path, got %v", path)
	}
}

func TestPathFinder_Nil(t *testing.T) {
	if NewPathFinder(nil, nil) != nil {
		t.Error("NewPathFinder(nil) should return nil")
	}
	var pf *PathFinder
	if pf.IsWalkable(0, 0) || pf.FindPath(0, 0, 0, 0) != nil {
		t.Error("nil path finder should find nothing")
	}
}
