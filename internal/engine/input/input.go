// Package input samples SDL2 keyboard and mouse state into controls.
package input

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/wolfcast/internal/game/controls"
)

// Input polls SDL events once per frame.
type Input struct {
	resized       bool
	width, height int
}

// New creates a new input handler.
func New() *Input {
	return &Input{}
}

// Poll drains the SDL event queue and returns this frame's controls.
func (i *Input) Poll() controls.Controls {
	var c controls.Controls
	i.resized = false

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			c.Quit = true

		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_RESIZED {
				i.resized = true
				i.width, i.height = int(e.Data1), int(e.Data2)
			}

		case *sdl.KeyboardEvent:
			if e.Type == sdl.KEYDOWN && e.Repeat == 0 {
				c.Merge(keyPress(e.Keysym.Scancode))
			}

		case *sdl.MouseMotionEvent:
			c.MouseDX += float64(e.XRel)

		case *sdl.MouseButtonEvent:
			if e.Type == sdl.MOUSEBUTTONDOWN && e.Button == sdl.BUTTON_LEFT {
				c.Fire = true
			}

		case *sdl.MouseWheelEvent:
			c.WeaponCycle += wheelStep(e.Y)
		}
	}

	held(sdl.GetKeyboardState(), &c)
	return c
}

// Resized reports a window resize seen by the last Poll.
func (i *Input) Resized() (width, height int, ok bool) {
	return i.width, i.height, i.resized
}

// keyPress maps edge-triggered keys.
func keyPress(sc sdl.Scancode) controls.Controls {
	var c controls.Controls
	switch sc {
	case sdl.SCANCODE_SPACE, sdl.SCANCODE_E:
		c.Use = true
	case sdl.SCANCODE_LCTRL, sdl.SCANCODE_RCTRL:
		c.Fire = true
	case sdl.SCANCODE_1:
		c.Weapon = 1
	case sdl.SCANCODE_2:
		c.Weapon = 2
	case sdl.SCANCODE_3:
		c.Weapon = 3
	case sdl.SCANCODE_4:
		c.Weapon = 4
	case sdl.SCANCODE_TAB:
		c.ToggleMap = true
	case sdl.SCANCODE_F12:
		c.Screenshot = true
	case sdl.SCANCODE_ESCAPE:
		c.Quit = true
	}
	return c
}

// held maps level-triggered keys from the SDL keyboard state array.
func held(state []uint8, c *controls.Controls) {
	down := func(sc sdl.Scancode) bool {
		return int(sc) < len(state) && state[sc] != 0
	}
	c.Forward = down(sdl.SCANCODE_W) || down(sdl.SCANCODE_UP)
	c.Back = down(sdl.SCANCODE_S) || down(sdl.SCANCODE_DOWN)
	c.StrafeLeft = down(sdl.SCANCODE_A)
	c.StrafeRight = down(sdl.SCANCODE_D)
	c.TurnLeft = down(sdl.SCANCODE_LEFT)
	c.TurnRight = down(sdl.SCANCODE_RIGHT)
}

func wheelStep(y int32) int {
	switch {
	case y > 0:
		return -1
	case y < 0:
		return 1
	}
	return 0
}
