// Package sfx names the sound effects the game triggers.
package sfx

// Effect names. Each maps to sounds/<name>.wav in the data directories.
const (
	Door     = "door"
	Pistol   = "pistol"
	Pickup   = "pickup"
	Pain     = "pain"
	Death    = "death"
	Step     = "thud"
	Greeting = "guten_tag"
	Alert    = "achtung"
)

// All lists every effect name.
var All = []string{Door, Pistol, Pickup, Pain, Death, Step, Greeting, Alert}

// Player plays effects by name.
type Player interface {
	Play(name string)
}

// Nop discards every effect.
type Nop struct{}

// Play does nothing.
func (Nop) Play(string) {}

// Recorder remembers played effects in order.
type Recorder struct {
	Played []string
}

// Play records name.
func (r *Recorder) Play(name string) {
	r.Played = append(r.Played, name)
}

// Count returns how many times name was played.
func (r *Recorder) Count(name string) int {
	n := 0
	for _, p := range r.Played {
		if p == name {
			n++
		}
	}
	return n
}
