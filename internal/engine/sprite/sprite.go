package sprite

import (
	"sort"

	wmath "github.com/Faultbox/wolfcast/pkg/math"
)

// Sprite is a billboard drawn by the compositor. It carries no behaviour.
type Sprite struct {
	Pos     wmath.Vec2
	Texture string  // texture name resolved by the texture provider
	VShift  float64 // downward shift as a fraction of projected size

	// Per-frame scratch, rewritten by ProjectSprite.
	Distance   float64 // Euclidean distance to the viewer
	Projection Projection
	Visible    bool
}

// New creates a sprite at pos.
func New(pos wmath.Vec2, texture string) *Sprite {
	return &Sprite{Pos: pos, Texture: texture}
}

// SortFarToNear orders sprites by descending viewer distance. Distance must
// be current.
func SortFarToNear(sprites []*Sprite) {
	sort.SliceStable(sprites, func(i, j int) bool {
		return sprites[i].Distance > sprites[j].Distance
	})
}
