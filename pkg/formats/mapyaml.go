package formats

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrRaggedGrid is returned when YAML grid rows differ in length.
var ErrRaggedGrid = errors.New("grid rows have different lengths")

// yamlMap is the authoring layout of a level.
//
//	name: e1m1
//	spawn: {x: 8, y: 8, angle: 0}
//	grid: |
//	  1111
//	  1001
//	  1111
//	doors: [{x: 7, y: 10}]
//	sprites: [{x: 3.5, y: 3.5, name: barrel}]
//	actors: [{x: 10.5, y: 10.5, name: guard}]
type yamlMap struct {
	Name    string          `yaml:"name"`
	Spawn   Spawn           `yaml:"spawn"`
	Grid    string          `yaml:"grid"`
	Doors   []DoorPlacement `yaml:"doors"`
	Sprites []yamlThing     `yaml:"sprites"`
	Actors  []yamlThing     `yaml:"actors"`
}

type yamlThing struct {
	X    float64 `yaml:"x"`
	Y    float64 `yaml:"y"`
	Name string  `yaml:"name"`
}

// ParseMapYAML parses a level in the YAML authoring format.
func ParseMapYAML(data []byte) (*Map, error) {
	var ym yamlMap
	if err := yaml.Unmarshal(data, &ym); err != nil {
		return nil, fmt.Errorf("decoding map yaml: %w", err)
	}

	var rows []string
	for _, line := range strings.Split(ym.Grid, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			rows = append(rows, line)
		}
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: empty grid", ErrInvalidMapDimensions)
	}

	width := len(rows[0])
	m := &Map{
		Version: CurrentVersion,
		Name:    ym.Name,
		Width:   uint32(width),
		Height:  uint32(len(rows)),
		Cells:   make([]uint8, 0, width*len(rows)),
		Doors:   ym.Doors,
		Spawn:   ym.Spawn,
	}

	for y, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrRaggedGrid, y, len(row), width)
		}
		for x, ch := range row {
			if ch < '0' || ch > '9' {
				return nil, fmt.Errorf("%w: %q at (%d,%d)", ErrInvalidMapCell, ch, x, y)
			}
			m.Cells = append(m.Cells, uint8(ch-'0'))
		}
	}

	for _, s := range ym.Sprites {
		m.Things = append(m.Things, Thing{Kind: ThingDecoration, X: s.X, Y: s.Y, Name: s.Name})
	}
	for _, a := range ym.Actors {
		m.Things = append(m.Things, Thing{Kind: ThingActor, X: a.X, Y: a.Y, Name: a.Name})
	}

	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// ParseMapYAMLFile parses a YAML level from disk.
func ParseMapYAMLFile(path string) (*Map, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading map file: %w", err)
	}
	return ParseMapYAML(data)
}

// LoadMapFile picks the decoder from the file contents: WMAP magic or YAML.
func LoadMapFile(path string) (*Map, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading map file: %w", err)
	}
	return DecodeMap(data)
}

// DecodeMap decodes either encoding.
func DecodeMap(data []byte) (*Map, error) {
	if len(data) >= 4 && string(data[:4]) == "WMAP" {
		return ParseMap(data)
	}
	return ParseMapYAML(data)
}

// MarshalYAML renders the map back into the authoring layout.
func (m *Map) MarshalYAML() (interface{}, error) {
	var grid strings.Builder
	for y := 0; y < int(m.Height); y++ {
		for x := 0; x < int(m.Width); x++ {
			code, _ := m.CellAt(x, y)
			grid.WriteByte('0' + code)
		}
		grid.WriteByte('\n')
	}

	ym := yamlMap{
		Name:  m.Name,
		Spawn: m.Spawn,
		Grid:  grid.String(),
		Doors: m.Doors,
	}
	for _, th := range m.Things {
		t := yamlThing{X: th.X, Y: th.Y, Name: th.Name}
		if th.Kind == ThingActor {
			ym.Actors = append(ym.Actors, t)
		} else {
			ym.Sprites = append(ym.Sprites, t)
		}
	}
	return ym, nil
}
