package hud

import (
	"fmt"
	"image"

	"golang.org/x/image/draw"

	"github.com/Faultbox/wolfcast/internal/game/entity"
)

// Weapon overlay timing and size.
const (
	WeaponFrames    = 5
	weaponFrameTime = 0.1 // seconds per firing frame
	weaponHeight    = 0.6 // fraction of the frame height
)

// WeaponView draws the weapon in hand: frame 0 at rest, frames 1..4 while
// firing, swaying with the head bob.
type WeaponView struct {
	Player *entity.Player
	Images Images

	anim   *entity.Animation
	weapon entity.Weapon
	firing bool
}

// NewWeaponView creates the overlay for p.
func NewWeaponView(p *entity.Player, images Images) *WeaponView {
	return &WeaponView{Player: p, Images: images}
}

// WeaponFrame returns the texture name of frame i of w.
func WeaponFrame(w entity.Weapon, i int) string {
	return fmt.Sprintf("%s_%d", w, i)
}

// Fire starts the firing animation unless one is already running.
func (v *WeaponView) Fire() {
	if v.Firing() {
		return
	}
	v.weapon = v.Player.Weapon
	frames := make([]string, WeaponFrames)
	for i := range frames {
		frames[i] = WeaponFrame(v.weapon, i)
	}
	v.anim = entity.NewAnimation(weaponFrameTime, false, frames...)
	v.firing = true
}

// Firing reports whether the firing animation is playing.
func (v *WeaponView) Firing() bool {
	return v.firing && v.weapon == v.Player.Weapon
}

// Update advances the animation by dt seconds.
func (v *WeaponView) Update(dt float64) {
	if !v.Firing() {
		v.firing = false
		return
	}
	v.anim.Update(dt)
	if v.anim.Done() {
		v.firing = false
	}
}

// Frame returns the texture name to draw.
func (v *WeaponView) Frame() string {
	if v.Firing() {
		return v.anim.Frame()
	}
	return WeaponFrame(v.Player.Weapon, 0)
}

// Rect returns where an image with source bounds sb is drawn in a frame
// with bounds b: bottom centre, shifted sideways by half the bob and down by
// its magnitude.
func (v *WeaponView) Rect(b, sb image.Rectangle) image.Rectangle {
	h := int(float64(b.Dy()) * weaponHeight)
	w := h * sb.Dx() / max(sb.Dy(), 1)
	bob := v.Player.Bob()
	cx := b.Min.X + b.Dx()/2 + bob/2
	bottom := b.Max.Y + abs(bob)
	return image.Rect(cx-w/2, bottom-h, cx-w/2+w, bottom)
}

// Draw implements compositor.Overlay.
func (v *WeaponView) Draw(dst *image.RGBA) {
	if v.Images == nil || v.Player == nil {
		return
	}
	img := v.Images.Sprite(v.Frame())
	if img == nil {
		return
	}
	sb := img.Bounds()
	draw.NearestNeighbor.Scale(dst, v.Rect(dst.Bounds(), sb), img, sb, draw.Over, nil)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
