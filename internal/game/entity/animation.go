package entity

// Animation steps through texture names at a fixed interval.
type Animation struct {
	Frames   []string
	Interval float64 // seconds per frame
	Loop     bool

	index int
	clock float64
	done  bool
}

// NewAnimation creates an animation over frames.
func NewAnimation(interval float64, loop bool, frames ...string) *Animation {
	return &Animation{Frames: frames, Interval: interval, Loop: loop}
}

// Reset rewinds to the first frame.
func (a *Animation) Reset() {
	a.index = 0
	a.clock = 0
	a.done = false
}

// Update advances the clock by dt seconds. It returns true when the
// visible frame changed.
func (a *Animation) Update(dt float64) bool {
	if len(a.Frames) < 2 || a.done || a.Interval <= 0 {
		return false
	}
	a.clock += dt
	changed := false
	for a.clock >= a.Interval {
		a.clock -= a.Interval
		if a.index == len(a.Frames)-1 {
			if !a.Loop {
				a.done = true
				a.clock = 0
				break
			}
			a.index = 0
		} else {
			a.index++
		}
		changed = true
	}
	return changed
}

// Frame returns the current texture name, or "" for an empty animation.
func (a *Animation) Frame() string {
	if len(a.Frames) == 0 {
		return ""
	}
	return a.Frames[a.index]
}

// Index returns the current frame index.
func (a *Animation) Index() int { return a.index }

// Done reports whether a non-looping animation reached its last frame.
func (a *Animation) Done() bool { return a.done }

// Last returns the final frame.
func (a *Animation) Last() string {
	if len(a.Frames) == 0 {
		return ""
	}
	return a.Frames[len(a.Frames)-1]
}
