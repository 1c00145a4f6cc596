package hud

import (
	"image"
	"image/color"
)

// Crosshair marks the centre of the view.
type Crosshair struct {
	Size      int // arm length in pixels
	Thickness int
	Color     color.RGBA
}

// NewCrosshair returns a small white cross.
func NewCrosshair() *Crosshair {
	return &Crosshair{Size: 8, Thickness: 2, Color: CrosshairColor}
}

// Draw implements compositor.Overlay.
func (c *Crosshair) Draw(dst *image.RGBA) {
	b := dst.Bounds()
	cx, cy := b.Min.X+b.Dx()/2, b.Min.Y+b.Dy()/2
	t0, t1 := c.Thickness/2, c.Thickness-c.Thickness/2
	fill(dst, image.Rect(cx-c.Size, cy-t0, cx+c.Size, cy+t1), c.Color)
	fill(dst, image.Rect(cx-t0, cy-c.Size, cx+t1, cy+c.Size), c.Color)
}
