package hud

import (
	"fmt"
	"image"
	"image/color"
)

// FPS averages frame rate over one-second windows.
type FPS struct {
	Visible bool

	frames  int
	elapsed float64
	value   float64
}

// Tick records one frame of dt seconds. It returns true when a new
// average is available.
func (f *FPS) Tick(dt float64) bool {
	f.frames++
	f.elapsed += dt
	if f.elapsed < 1 {
		return false
	}
	f.value = float64(f.frames) / f.elapsed
	f.frames = 0
	f.elapsed = 0
	return true
}

// Value returns the last average.
func (f *FPS) Value() float64 { return f.value }

// Draw implements compositor.Overlay.
func (f *FPS) Draw(dst *image.RGBA) {
	if !f.Visible {
		return
	}
	s := fmt.Sprintf("FPS: %.0f", f.value)
	b := dst.Bounds()
	x, y := b.Min.X+8, b.Min.Y+8
	fill(dst, image.Rect(x-2, y-2, x+TextWidth(s)+2, y+TextHeight()+2), color.RGBA{0, 0, 0, 255})
	DrawText(dst, x, y, s, TextColor, 1)
}
