package world

import (
	"fmt"
	"math"

	wmath "github.com/Faultbox/wolfcast/pkg/math"
)

// DoorState is the state of a sliding door.
type DoorState uint8

// Door states.
const (
	DoorClosed DoorState = iota
	DoorOpening
	DoorOpen
	DoorClosing
)

// String returns a human-readable state name.
func (s DoorState) String() string {
	switch s {
	case DoorClosed:
		return "Closed"
	case DoorOpening:
		return "Opening"
	case DoorOpen:
		return "Open"
	case DoorClosing:
		return "Closing"
	default:
		return fmt.Sprintf("DoorState(%d)", s)
	}
}

// DoorConfig holds door timing. Rates are fractions of a full slide per second.
type DoorConfig struct {
	OpenRate          float64
	CloseRate         float64
	AutoCloseDelay    float64 // seconds spent Open before closing
	PassableThreshold float64
}

// DefaultDoorConfig opens in about 2.8 s, closes in about 2.2 s and closes
// itself 5 s after reaching Open.
func DefaultDoorConfig() DoorConfig {
	return DoorConfig{
		OpenRate:          1 / 2.8,
		CloseRate:         1 / 2.2,
		AutoCloseDelay:    5,
		PassableThreshold: 0.7,
	}
}

// doorEvent drives the transition function.
type doorEvent uint8

const (
	evOpen doorEvent = iota
	evClose
	evFullyOpen
	evFullyClosed
)

// Door is a sliding door occupying one grid cell.
type Door struct {
	X, Y int

	cfg        DoorConfig
	state      DoorState
	openAmount float64
	clock      float64
	openSince  float64
}

// NewDoor creates a closed door at cell (x, y).
func NewDoor(x, y int, cfg DoorConfig) *Door {
	return &Door{X: x, Y: y, cfg: cfg}
}

// State returns the current state.
func (d *Door) State() DoorState { return d.state }

// OpenAmount returns how far the leaf has slid, 0 closed to 1 open.
func (d *Door) OpenAmount() float64 { return d.openAmount }

// TextureOffset is the slide applied to the door texture.
func (d *Door) TextureOffset() float64 { return d.openAmount }

// IsPassable reports whether the gap is wide enough to walk or see through.
func (d *Door) IsPassable() bool {
	return d.openAmount > d.cfg.PassableThreshold
}

// Open starts opening a closed or closing door.
func (d *Door) Open() { d.transition(evOpen) }

// Close starts closing an open door.
func (d *Door) Close() { d.transition(evClose) }

// transition is the only place the state changes. Events that do not apply
// to the current state are ignored.
func (d *Door) transition(ev doorEvent) {
	switch {
	case ev == evOpen && (d.state == DoorClosed || d.state == DoorClosing):
		d.state = DoorOpening
	case ev == evClose && d.state == DoorOpen:
		d.state = DoorClosing
	case ev == evFullyOpen && d.state == DoorOpening:
		d.openAmount = 1
		d.state = DoorOpen
		d.openSince = d.clock
	case ev == evFullyClosed && d.state == DoorClosing:
		d.openAmount = 0
		d.state = DoorClosed
	}
}

// Update advances the door by dt seconds.
func (d *Door) Update(dt float64) {
	if dt < 0 {
		dt = 0
	}
	d.clock += dt

	switch d.state {
	case DoorOpening:
		d.openAmount = math.Min(1, d.openAmount+d.cfg.OpenRate*dt)
		if d.openAmount >= 1 {
			d.transition(evFullyOpen)
		}
	case DoorClosing:
		d.openAmount = math.Max(0, d.openAmount-d.cfg.CloseRate*dt)
		if d.openAmount <= 0 {
			d.transition(evFullyClosed)
		}
	case DoorOpen:
		if d.clock-d.openSince >= d.cfg.AutoCloseDelay {
			d.transition(evClose)
		}
	}
}

// DoorSet owns every door of a level. It is written only by Update; the ray
// sweep reads it afterwards.
type DoorSet struct {
	doors []*Door
	index map[[2]int]*Door
}

// NewDoorSet creates doors at the given cells.
func NewDoorSet(cells [][2]int, cfg DoorConfig) *DoorSet {
	ds := &DoorSet{index: make(map[[2]int]*Door, len(cells))}
	for _, c := range cells {
		if _, dup := ds.index[c]; dup {
			continue
		}
		d := NewDoor(c[0], c[1], cfg)
		ds.doors = append(ds.doors, d)
		ds.index[c] = d
	}
	return ds
}

// Doors returns the doors in placement order.
func (ds *DoorSet) Doors() []*Door { return ds.doors }

// Len returns the number of doors.
func (ds *DoorSet) Len() int { return len(ds.doors) }

// At returns the door at cell (x, y), or nil.
func (ds *DoorSet) At(x, y int) *Door {
	if ds == nil {
		return nil
	}
	return ds.index[[2]int{x, y}]
}

// Update advances every door.
func (ds *DoorSet) Update(dt float64) {
	for _, d := range ds.doors {
		d.Update(dt)
	}
}

// useProbes are the distances checked ahead of the viewer by FindNear.
var useProbes = [...]float64{0.5, 1.0, 1.5, 2.0}

// FindNear returns the door a viewer at pos facing heading would operate:
// first along the heading, then in the viewer's own cell and its four
// neighbours.
func (ds *DoorSet) FindNear(pos wmath.Vec2, heading float64, gm *GridMap) *Door {
	dir := wmath.FromAngle(heading)
	for _, dist := range useProbes {
		x, y := pos.Add(dir.Scale(dist)).Cell()
		if gm.IsDoor(x, y) {
			if d := ds.At(x, y); d != nil {
				return d
			}
		}
	}

	cx, cy := pos.Cell()
	for _, off := range [...][2]int{{0, 0}, {1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
		x, y := cx+off[0], cy+off[1]
		if gm.IsDoor(x, y) {
			if d := ds.At(x, y); d != nil {
				return d
			}
		}
	}
	return nil
}
