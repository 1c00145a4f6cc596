package world

import (
	"errors"
	"testing"
)

// mockGrid builds a grid from digit rows.
func mockGrid(t *testing.T, rows ...string) *GridMap {
	t.Helper()
	cells := make([][]Cell, len(rows))
	for y, row := range rows {
		for _, ch := range row {
			cells[y] = append(cells[y], Cell(ch-'0'))
		}
	}
	gm, err := GridFromRows(cells)
	if err != nil {
		t.Fatalf("GridFromRows: %v", err)
	}
	return gm
}

func TestNewGridMap_Errors(t *testing.T) {
	tests := []struct {
		name  string
		w, h  int
		cells []Cell
		want  error
	}{
		{"zero width", 0, 2, nil, ErrInvalidDimensions},
		{"cell count mismatch", 2, 2, []Cell{0, 0, 0}, ErrInvalidDimensions},
		{"bad code", 2, 1, []Cell{0, 8}, ErrInvalidCell},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewGridMap(tt.w, tt.h, tt.cells)
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestGridFromRows_Ragged(t *testing.T) {
	_, err := GridFromRows([][]Cell{{1, 1}, {1}})
	if !errors.Is(err, ErrInvalidDimensions) {
		t.Errorf("err = %v, want ErrInvalidDimensions", err)
	}
}

func TestGridMap_IsWall(t *testing.T) {
	gm := mockGrid(t,
		"1111",
		"1071",
		"1031",
		"1111",
	)
	doors := NewDoorSet([][2]int{{2, 1}}, DefaultDoorConfig())

	tests := []struct {
		name  string
		x, y  int
		doors *DoorSet
		want  bool
	}{
		{"empty", 1, 1, doors, false},
		{"wall", 0, 0, doors, true},
		{"material 3", 2, 2, doors, true},
		{"out of bounds west", -1, 1, doors, true},
		{"out of bounds south", 1, 4, doors, true},
		{"closed door", 2, 1, doors, true},
		{"door without set", 2, 1, nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := gm.IsWall(tt.x, tt.y, tt.doors); got != tt.want {
				t.Errorf("IsWall(%d,%d) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}

	door := doors.At(2, 1)
	door.Open()
	door.Update(0.8 / door.cfg.OpenRate)
	if gm.IsWall(2, 1, doors) {
		t.Error("door open past the threshold should not be a wall")
	}
	if !gm.IsWall(2, 1, nil) {
		t.Error("door cell without a door set should stay solid")
	}
}

func TestGridMap_UnregisteredDoorIsSolid(t *testing.T) {
	gm := mockGrid(t, "070")
	doors := NewDoorSet(nil, DefaultDoorConfig())
	if !gm.IsWall(1, 0, doors) {
		t.Error("door cell with no registered door should be solid")
	}
}

func TestGridMap_WallCode(t *testing.T) {
	gm := mockGrid(t,
		"25",
		"07",
	)
	tests := []struct {
		x, y int
		want Cell
	}{
		{0, 0, 2},
		{1, 0, 5},
		{0, 1, CellEmpty},
		{1, 1, CellDoor},
		{-1, 0, CellWall},
		{0, 2, CellWall},
		{100, 100, CellWall},
	}
	for _, tt := range tests {
		if got := gm.WallCode(tt.x, tt.y); got != tt.want {
			t.Errorf("WallCode(%d,%d) = %d, want %d", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestGridMap_IsWallAt(t *testing.T) {
	gm := mockGrid(t,
		"111",
		"101",
		"111",
	)
	if gm.IsWallAt(1.5, 1.5, nil) {
		t.Error("centre of empty cell reported solid")
	}
	if !gm.IsWallAt(0.99, 1.5, nil) {
		t.Error("x=0.99 lies in the west wall")
	}
	if !gm.IsWallAt(-0.1, 1.5, nil) {
		t.Error("negative coordinates must floor out of bounds")
	}
}

func TestGridMap_IsDoor(t *testing.T) {
	gm := mockGrid(t, "71")
	if !gm.IsDoor(0, 0) {
		t.Error("(0,0) should be a door")
	}
	if gm.IsDoor(1, 0) || gm.IsDoor(-1, 0) {
		t.Error("wall and out of bounds are not doors")
	}
}
