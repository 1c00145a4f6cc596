package formats

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// createTestMap builds a bordered map with a door in the middle of the top row.
func createTestMap(width, height int) *Map {
	m := &Map{
		Version: CurrentVersion,
		Name:    "test",
		Width:   uint32(width),
		Height:  uint32(height),
		Cells:   make([]uint8, width*height),
		Spawn:   Spawn{X: 1.5, Y: 1.5, Angle: 0.5},
	}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if x == 0 || y == 0 || x == width-1 || y == height-1 {
				m.Cells[y*width+x] = 1
			}
		}
	}
	m.Cells[width/2] = CellDoor
	m.Doors = []DoorPlacement{{X: width / 2, Y: 0}}
	m.Things = []Thing{
		{Kind: ThingDecoration, X: 2.5, Y: 2.5, Name: "barrel"},
		{Kind: ThingActor, X: 3.5, Y: 2.5, Name: "guard"},
	}
	return m
}

func TestParseMap_RoundTrip(t *testing.T) {
	src := createTestMap(6, 5)

	data, err := src.Encode()
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	m, err := ParseMap(data)
	if err != nil {
		t.Fatalf("ParseMap failed: %v", err)
	}

	if m.Version != CurrentVersion {
		t.Errorf("expected version %s, got %s", CurrentVersion, m.Version)
	}
	if m.Name != "test" {
		t.Errorf("expected name 'test', got %q", m.Name)
	}
	if m.Width != 6 || m.Height != 5 {
		t.Errorf("expected 6x5, got %dx%d", m.Width, m.Height)
	}
	if len(m.Doors) != 1 || m.Doors[0] != (DoorPlacement{X: 3, Y: 0}) {
		t.Errorf("unexpected doors: %+v", m.Doors)
	}
	if m.Spawn != src.Spawn {
		t.Errorf("expected spawn %+v, got %+v", src.Spawn, m.Spawn)
	}
	if len(m.Things) != 2 {
		t.Fatalf("expected 2 things, got %d", len(m.Things))
	}
	if m.Things[1].Kind != ThingActor || m.Things[1].Name != "guard" {
		t.Errorf("unexpected actor: %+v", m.Things[1])
	}
	if code, ok := m.CellAt(3, 0); !ok || code != CellDoor {
		t.Errorf("expected door cell at (3,0), got %d ok=%v", code, ok)
	}
}

func TestParseMap_InvalidMagic(t *testing.T) {
	data, _ := createTestMap(4, 4).Encode()
	copy(data, "XXXX")

	_, err := ParseMap(data)
	if !errors.Is(err, ErrInvalidMapMagic) {
		t.Errorf("expected ErrInvalidMapMagic, got %v", err)
	}
}

func TestParseMap_UnsupportedVersion(t *testing.T) {
	data, _ := createTestMap(4, 4).Encode()
	data[5] = 9

	_, err := ParseMap(data)
	if !errors.Is(err, ErrUnsupportedMapVersion) {
		t.Errorf("expected ErrUnsupportedMapVersion, got %v", err)
	}
}

func TestParseMap_Truncated(t *testing.T) {
	data, _ := createTestMap(4, 4).Encode()

	for _, n := range []int{3, 10, 20, len(data) - 1} {
		_, err := ParseMap(data[:n])
		if !errors.Is(err, ErrTruncatedMapData) {
			t.Errorf("len %d: expected ErrTruncatedMapData, got %v", n, err)
		}
	}
}

func TestMap_ValidateDoorOffDoorCell(t *testing.T) {
	m := createTestMap(4, 4)
	m.Doors = append(m.Doors, DoorPlacement{X: 1, Y: 1})

	if err := m.Validate(); err == nil {
		t.Error("expected error for door on empty cell")
	}
}

func TestMap_ValidateBadCode(t *testing.T) {
	m := createTestMap(4, 4)
	m.Cells[5] = 8

	if err := m.Validate(); !errors.Is(err, ErrInvalidMapCell) {
		t.Errorf("expected ErrInvalidMapCell, got %v", err)
	}
}

func TestMap_CountByCode(t *testing.T) {
	m := createTestMap(4, 4)
	counts := m.CountByCode()

	if counts[0] != 4 {
		t.Errorf("expected 4 empty cells, got %d", counts[0])
	}
	if counts[1] != 11 {
		t.Errorf("expected 11 wall cells, got %d", counts[1])
	}
	if counts[CellDoor] != 1 {
		t.Errorf("expected 1 door cell, got %d", counts[CellDoor])
	}
}

func TestParseMapFile(t *testing.T) {
	data, _ := createTestMap(5, 5).Encode()
	path := filepath.Join(t.TempDir(), "test.wmap")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("failed to write map: %v", err)
	}

	m, err := LoadMapFile(path)
	if err != nil {
		t.Fatalf("LoadMapFile failed: %v", err)
	}
	if m.Width != 5 {
		t.Errorf("expected width 5, got %d", m.Width)
	}

	if _, err := ParseMapFile("/nonexistent/map.wmap"); err == nil {
		t.Error("expected error for missing file")
	}
}
