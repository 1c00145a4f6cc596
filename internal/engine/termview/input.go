package termview

import (
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/Faultbox/wolfcast/internal/game/controls"
)

// holdTime is how long a key counts as held after its last press or
// auto-repeat. Terminals never report key releases.
const holdTime = 150 * time.Millisecond

type heldKey int

const (
	keyForward heldKey = iota
	keyBack
	keyStrafeLeft
	keyStrafeRight
	keyTurnLeft
	keyTurnRight
	numHeldKeys
)

// Input turns tcell key events into controls. Events are read by a
// goroutine and drained on Poll.
type Input struct {
	events    chan tcell.Event
	done      chan struct{}
	closeOnce sync.Once
	now       func() time.Time
	last      [numHeldKeys]time.Time
}

// NewInput starts reading events from screen. The reader stops when the
// screen is finalised or Close is called.
func NewInput(screen tcell.Screen) *Input {
	in := newInput()
	go in.read(screen.PollEvent)
	return in
}

func newInput() *Input {
	return &Input{
		events: make(chan tcell.Event, 100),
		done:   make(chan struct{}),
		now:    time.Now,
	}
}

// read forwards events until next returns nil or the input is closed.
func (in *Input) read(next func() tcell.Event) {
	for {
		ev := next()
		if ev == nil {
			close(in.events)
			return
		}
		select {
		case in.events <- ev:
		case <-in.done:
			return
		}
	}
}

// Close stops the reader. Pending events are dropped.
func (in *Input) Close() {
	in.closeOnce.Do(func() { close(in.done) })
}

// Poll drains pending events and returns this frame's controls.
func (in *Input) Poll() controls.Controls {
	var c controls.Controls
	now := in.now()

drain:
	for {
		select {
		case ev, ok := <-in.events:
			if !ok {
				c.Quit = true
				break drain
			}
			if k, ok := ev.(*tcell.EventKey); ok {
				c.Merge(in.handleKey(k, now))
			}
		default:
			break drain
		}
	}

	held := func(k heldKey) bool {
		return !in.last[k].IsZero() && now.Sub(in.last[k]) < holdTime
	}
	c.Forward = held(keyForward)
	c.Back = held(keyBack)
	c.StrafeLeft = held(keyStrafeLeft)
	c.StrafeRight = held(keyStrafeRight)
	c.TurnLeft = held(keyTurnLeft)
	c.TurnRight = held(keyTurnRight)
	return c
}

// handleKey records held keys and returns edge-triggered controls.
func (in *Input) handleKey(ev *tcell.EventKey, now time.Time) controls.Controls {
	var c controls.Controls
	switch ev.Key() {
	case tcell.KeyUp:
		in.last[keyForward] = now
	case tcell.KeyDown:
		in.last[keyBack] = now
	case tcell.KeyLeft:
		in.last[keyTurnLeft] = now
	case tcell.KeyRight:
		in.last[keyTurnRight] = now
	case tcell.KeyEscape, tcell.KeyCtrlC:
		c.Quit = true
	case tcell.KeyTab:
		c.ToggleMap = true
	case tcell.KeyEnter:
		c.Fire = true
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'w', 'W':
			in.last[keyForward] = now
		case 's', 'S':
			in.last[keyBack] = now
		case 'a', 'A':
			in.last[keyStrafeLeft] = now
		case 'd', 'D':
			in.last[keyStrafeRight] = now
		case 'q', 'Q':
			in.last[keyTurnLeft] = now
		case 'e', 'E':
			in.last[keyTurnRight] = now
		case ' ':
			c.Use = true
		case 'f', 'F':
			c.Fire = true
		case '1', '2', '3', '4':
			c.Weapon = int(ev.Rune() - '0')
		case '[':
			c.WeaponCycle = -1
		case ']':
			c.WeaponCycle = 1
		case 'p', 'P':
			c.Screenshot = true
		}
	}
	return c
}
