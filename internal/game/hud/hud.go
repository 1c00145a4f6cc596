// Package hud draws the overlays that sit on top of a composed frame:
// the weapon in hand, a crosshair, the status bar, the minimap and an FPS
// counter.
package hud

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"

	"github.com/Faultbox/wolfcast/internal/engine/compositor"
	"github.com/Faultbox/wolfcast/internal/game/entity"
	"github.com/Faultbox/wolfcast/internal/game/world"
)

// Images supplies overlay pictures by name. The texture provider satisfies
// it; a nil Images draws text and panels only.
type Images interface {
	Sprite(name string) image.Image
}

// Palette.
var (
	BackColor      = color.RGBA{50, 50, 50, 255}
	PanelColor     = color.RGBA{0, 0, 170, 255}
	BorderColor    = color.RGBA{0, 170, 170, 255}
	LabelColor     = color.RGBA{170, 170, 170, 255}
	TextColor      = color.RGBA{255, 255, 255, 255}
	CrosshairColor = color.RGBA{255, 255, 255, 255}
)

// HUD groups the overlays of one player view.
type HUD struct {
	Weapon    *WeaponView
	Crosshair *Crosshair
	Status    *StatusBar
	Minimap   *Minimap
	FPS       *FPS

	overlays []compositor.Overlay
}

// New builds the overlays for a player on a level.
func New(p *entity.Player, level *world.Level, images Images) *HUD {
	h := &HUD{
		Weapon:    NewWeaponView(p, images),
		Crosshair: NewCrosshair(),
		Status:    NewStatusBar(p, images),
		Minimap:   NewMinimap(level),
		FPS:       &FPS{},
	}
	h.overlays = []compositor.Overlay{h.Weapon, h.Crosshair, h.Status, h.Minimap, h.FPS}
	return h
}

// Update advances overlay animations by dt seconds.
func (h *HUD) Update(dt float64) {
	h.Weapon.Update(dt)
}

// Overlays returns the overlays in draw order.
func (h *HUD) Overlays() []compositor.Overlay {
	return h.overlays
}

func fill(dst *image.RGBA, r image.Rectangle, c color.Color) {
	draw.Draw(dst, r.Intersect(dst.Bounds()), image.NewUniform(c), image.Point{}, draw.Src)
}

// stroke draws a border of width w just inside r.
func stroke(dst *image.RGBA, r image.Rectangle, w int, c color.Color) {
	fill(dst, image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+w), c)
	fill(dst, image.Rect(r.Min.X, r.Max.Y-w, r.Max.X, r.Max.Y), c)
	fill(dst, image.Rect(r.Min.X, r.Min.Y, r.Min.X+w, r.Max.Y), c)
	fill(dst, image.Rect(r.Max.X-w, r.Min.Y, r.Max.X, r.Max.Y), c)
}

// fit scales img into r keeping its aspect ratio, centred.
func fit(dst *image.RGBA, r image.Rectangle, img image.Image) {
	sb := img.Bounds()
	if sb.Empty() || r.Empty() {
		return
	}
	w, h := r.Dx(), r.Dx()*sb.Dy()/sb.Dx()
	if h > r.Dy() {
		h = r.Dy()
		w = h * sb.Dx() / sb.Dy()
	}
	x := r.Min.X + (r.Dx()-w)/2
	y := r.Min.Y + (r.Dy()-h)/2
	draw.NearestNeighbor.Scale(dst, image.Rect(x, y, x+w, y+h), img, sb, draw.Over, nil)
}
