// Package formats provides parsers for wolfcast level files.
//
// Two encodings describe the same Map: the binary WMAP container read at
// runtime, and a YAML authoring format compiled to WMAP by cmd/mapc.
package formats

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
)

// WMAP format errors.
var (
	ErrInvalidMapMagic       = errors.New("invalid map magic: expected 'WMAP'")
	ErrUnsupportedMapVersion = errors.New("unsupported map version")
	ErrTruncatedMapData      = errors.New("truncated map data")
	ErrInvalidMapDimensions  = errors.New("invalid map dimensions")
	ErrInvalidMapCell        = errors.New("invalid map cell code")
)

// Cell codes stored in the grid.
const (
	CellEmpty   uint8 = 0
	CellDoor    uint8 = 7
	MaxCellCode uint8 = CellDoor
)

// Map size limits.
const (
	MaxMapSize = 1024
	maxThings  = math.MaxUint16
)

// MapVersion represents the WMAP file version.
type MapVersion struct {
	Major uint8
	Minor uint8
}

// String returns the version as "Major.Minor".
func (v MapVersion) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// CurrentVersion is written by Encode.
var CurrentVersion = MapVersion{Major: 1, Minor: 0}

// ThingKind distinguishes static decorations from actors.
type ThingKind uint8

// Thing kinds.
const (
	ThingDecoration ThingKind = 0
	ThingActor      ThingKind = 1
)

// String returns a human-readable kind name.
func (k ThingKind) String() string {
	switch k {
	case ThingDecoration:
		return "Decoration"
	case ThingActor:
		return "Actor"
	default:
		return fmt.Sprintf("Unknown(%d)", k)
	}
}

// DoorPlacement is the grid cell of a door.
type DoorPlacement struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// Spawn is the viewer start pose.
type Spawn struct {
	X     float64 `yaml:"x"`
	Y     float64 `yaml:"y"`
	Angle float64 `yaml:"angle"`
}

// Thing is a sprite or actor placed in world coordinates.
type Thing struct {
	Kind ThingKind
	X    float64
	Y    float64
	Name string
}

// Map represents a parsed level.
type Map struct {
	Version MapVersion
	Name    string
	Width   uint32
	Height  uint32
	Cells   []uint8 // row-major, Width*Height
	Doors   []DoorPlacement
	Spawn   Spawn
	Things  []Thing
}

// CellAt returns the cell code at (x, y). ok is false outside the grid.
func (m *Map) CellAt(x, y int) (code uint8, ok bool) {
	if x < 0 || y < 0 || x >= int(m.Width) || y >= int(m.Height) {
		return 0, false
	}
	return m.Cells[y*int(m.Width)+x], true
}

// CountByCode returns the number of cells for each code.
func (m *Map) CountByCode() map[uint8]int {
	counts := make(map[uint8]int)
	for _, c := range m.Cells {
		counts[c]++
	}
	return counts
}

// Validate checks dimensions, cell codes and that every door sits on a door cell.
func (m *Map) Validate() error {
	if m.Width == 0 || m.Height == 0 || m.Width > MaxMapSize || m.Height > MaxMapSize {
		return fmt.Errorf("%w: %dx%d", ErrInvalidMapDimensions, m.Width, m.Height)
	}
	if len(m.Cells) != int(m.Width*m.Height) {
		return fmt.Errorf("%w: %d cells for %dx%d", ErrInvalidMapDimensions, len(m.Cells), m.Width, m.Height)
	}
	for i, c := range m.Cells {
		if c > MaxCellCode {
			return fmt.Errorf("%w: %d at (%d,%d)", ErrInvalidMapCell, c, i%int(m.Width), i/int(m.Width))
		}
	}
	for _, d := range m.Doors {
		if code, ok := m.CellAt(d.X, d.Y); !ok || code != CellDoor {
			return fmt.Errorf("door at (%d,%d) is not on a door cell", d.X, d.Y)
		}
	}
	if len(m.Things) > maxThings || len(m.Doors) > maxThings {
		return fmt.Errorf("too many doors or things")
	}
	return nil
}

// ParseMap parses a WMAP file from raw bytes.
func ParseMap(data []byte) (*Map, error) {
	if len(data) < 15 {
		return nil, ErrTruncatedMapData
	}

	if string(data[0:4]) != "WMAP" {
		return nil, ErrInvalidMapMagic
	}

	// Version is stored as [minor, major]
	version := MapVersion{
		Major: data[5],
		Minor: data[4],
	}
	if version.Major != 1 {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedMapVersion, version)
	}

	r := bytes.NewReader(data[6:])
	m := &Map{Version: version}

	name, err := readString(r)
	if err != nil {
		return nil, fmt.Errorf("%w: reading name", ErrTruncatedMapData)
	}
	m.Name = name

	if err := binary.Read(r, binary.LittleEndian, &m.Width); err != nil {
		return nil, fmt.Errorf("%w: reading width", ErrTruncatedMapData)
	}
	if err := binary.Read(r, binary.LittleEndian, &m.Height); err != nil {
		return nil, fmt.Errorf("%w: reading height", ErrTruncatedMapData)
	}
	if m.Width == 0 || m.Height == 0 || m.Width > MaxMapSize || m.Height > MaxMapSize {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidMapDimensions, m.Width, m.Height)
	}

	m.Cells = make([]uint8, int(m.Width*m.Height))
	if _, err := io.ReadFull(r, m.Cells); err != nil {
		return nil, fmt.Errorf("%w: reading cells", ErrTruncatedMapData)
	}

	var doorCount uint16
	if err := binary.Read(r, binary.LittleEndian, &doorCount); err != nil {
		return nil, fmt.Errorf("%w: reading door count", ErrTruncatedMapData)
	}
	m.Doors = make([]DoorPlacement, doorCount)
	for i := range m.Doors {
		var xy [2]int32
		if err := binary.Read(r, binary.LittleEndian, &xy); err != nil {
			return nil, fmt.Errorf("%w: reading door %d", ErrTruncatedMapData, i)
		}
		m.Doors[i] = DoorPlacement{X: int(xy[0]), Y: int(xy[1])}
	}

	var spawn [3]float32
	if err := binary.Read(r, binary.LittleEndian, &spawn); err != nil {
		return nil, fmt.Errorf("%w: reading spawn", ErrTruncatedMapData)
	}
	m.Spawn = Spawn{X: float64(spawn[0]), Y: float64(spawn[1]), Angle: float64(spawn[2])}

	var thingCount uint16
	if err := binary.Read(r, binary.LittleEndian, &thingCount); err != nil {
		return nil, fmt.Errorf("%w: reading thing count", ErrTruncatedMapData)
	}
	m.Things = make([]Thing, thingCount)
	for i := range m.Things {
		thing, err := parseThing(r)
		if err != nil {
			return nil, fmt.Errorf("parsing thing %d: %w", i, err)
		}
		m.Things[i] = thing
	}

	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// parseThing parses a single placement record: kind, x, y, name.
func parseThing(r *bytes.Reader) (Thing, error) {
	var head struct {
		Kind uint8
		X, Y float32
	}
	if err := binary.Read(r, binary.LittleEndian, &head); err != nil {
		return Thing{}, fmt.Errorf("%w: reading thing header", ErrTruncatedMapData)
	}
	name, err := readString(r)
	if err != nil {
		return Thing{}, fmt.Errorf("%w: reading thing name", ErrTruncatedMapData)
	}
	return Thing{Kind: ThingKind(head.Kind), X: float64(head.X), Y: float64(head.Y), Name: name}, nil
}

// readString reads a uint8 length-prefixed string.
func readString(r *bytes.Reader) (string, error) {
	n, err := r.ReadByte()
	if err != nil {
		return "", err
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", err
	}
	return string(buf), nil
}

// ParseMapFile parses a WMAP file from disk.
func ParseMapFile(path string) (*Map, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading map file: %w", err)
	}
	return ParseMap(data)
}

// Encode serializes the map into the WMAP binary format.
func (m *Map) Encode() ([]byte, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	if len(m.Name) > math.MaxUint8 {
		return nil, fmt.Errorf("map name too long: %d bytes", len(m.Name))
	}

	buf := new(bytes.Buffer)
	buf.WriteString("WMAP")
	buf.WriteByte(CurrentVersion.Minor)
	buf.WriteByte(CurrentVersion.Major)
	writeString(buf, m.Name)

	binary.Write(buf, binary.LittleEndian, m.Width)
	binary.Write(buf, binary.LittleEndian, m.Height)
	buf.Write(m.Cells)

	binary.Write(buf, binary.LittleEndian, uint16(len(m.Doors)))
	for _, d := range m.Doors {
		binary.Write(buf, binary.LittleEndian, [2]int32{int32(d.X), int32(d.Y)})
	}

	binary.Write(buf, binary.LittleEndian, [3]float32{float32(m.Spawn.X), float32(m.Spawn.Y), float32(m.Spawn.Angle)})

	binary.Write(buf, binary.LittleEndian, uint16(len(m.Things)))
	for _, th := range m.Things {
		if len(th.Name) > math.MaxUint8 {
			return nil, fmt.Errorf("thing name too long: %q", th.Name)
		}
		buf.WriteByte(uint8(th.Kind))
		binary.Write(buf, binary.LittleEndian, [2]float32{float32(th.X), float32(th.Y)})
		writeString(buf, th.Name)
	}

	return buf.Bytes(), nil
}

func writeString(buf *bytes.Buffer, s string) {
	buf.WriteByte(uint8(len(s)))
	buf.WriteString(s)
}
