// Package controls defines the per-frame input snapshot shared by the
// input backends and the game loop.
package controls

// Controls is one frame of sampled input. Held keys are level-triggered;
// Use, Fire, Weapon, WeaponCycle, Screenshot and Quit are edge-triggered and
// only set on the frame the press arrives.
type Controls struct {
	Forward     bool
	Back        bool
	StrafeLeft  bool
	StrafeRight bool
	TurnLeft    bool
	TurnRight   bool

	// MouseDX is horizontal mouse motion in pixels since the last sample.
	MouseDX float64

	Use         bool
	Fire        bool
	Weapon      int // 1-4 selects a slot, 0 keeps the current one
	WeaponCycle int // +1 next, -1 previous

	ToggleMap  bool
	Screenshot bool
	Quit       bool
}

// Moving reports whether any translation key is held.
func (c Controls) Moving() bool {
	return c.Forward || c.Back || c.StrafeLeft || c.StrafeRight
}

// Merge folds an edge-triggered sample into c, keeping presses that
// arrived between frames.
func (c *Controls) Merge(o Controls) {
	c.MouseDX += o.MouseDX
	c.Use = c.Use || o.Use
	c.Fire = c.Fire || o.Fire
	if o.Weapon != 0 {
		c.Weapon = o.Weapon
	}
	c.WeaponCycle += o.WeaponCycle
	c.ToggleMap = c.ToggleMap || o.ToggleMap
	c.Screenshot = c.Screenshot || o.Screenshot
	c.Quit = c.Quit || o.Quit
}
