package hud

import (
	"image"

	"github.com/Faultbox/wolfcast/internal/engine/debug"
	"github.com/Faultbox/wolfcast/internal/game/world"
)

// Minimap shows the level plan in the top-right corner.
type Minimap struct {
	debug.TopDown

	Visible bool
	Size    float64 // edge length as a fraction of the frame height
	Margin  int
}

// NewMinimap creates a hidden minimap of level.
func NewMinimap(level *world.Level) *Minimap {
	m := &Minimap{Size: 0.3, Margin: 10}
	if level != nil {
		m.Grid = level.Grid
		m.Doors = level.Doors
	}
	m.RayStride = 8
	return m
}

// Toggle shows or hides the minimap.
func (m *Minimap) Toggle() {
	m.Visible = !m.Visible
}

// Rect returns the minimap area in a frame with bounds b.
func (m *Minimap) Rect(b image.Rectangle) image.Rectangle {
	side := int(float64(b.Dy()) * m.Size)
	return image.Rect(b.Max.X-m.Margin-side, b.Min.Y+m.Margin, b.Max.X-m.Margin, b.Min.Y+m.Margin+side)
}

// Draw implements compositor.Overlay.
func (m *Minimap) Draw(dst *image.RGBA) {
	if !m.Visible || m.Grid == nil {
		return
	}
	r := m.Rect(dst.Bounds())
	stroke(dst, r.Inset(-2), 2, BorderColor)
	m.TopDown.Draw(dst, r)
}
