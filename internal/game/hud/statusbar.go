package hud

import (
	"fmt"
	"image"
	"strconv"
	"strings"

	"github.com/Faultbox/wolfcast/internal/game/entity"
)

// Face strip layout: seven health tiers of three glances, then the dead face.
const (
	faceTiers   = 7
	faceGlances = 3
	faceDead    = faceTiers*faceGlances - 1
	tierSpan    = 14.3
)

// StatusBar is the panel row along the bottom of the frame.
type StatusBar struct {
	Player *entity.Player
	Images Images
	Floor  int

	// HeightRatio is the bar height as a fraction of the frame height.
	HeightRatio float64
}

// statusPanels are the panel widths as fractions of the frame width.
var statusPanels = [...]float64{0.1, 0.15, 0.1, 0.1, 0.15, 0.1, 0.3}

// NewStatusBar creates a status bar for p.
func NewStatusBar(p *entity.Player, images Images) *StatusBar {
	return &StatusBar{
		Player:      p,
		Images:      images,
		Floor:       1,
		HeightRatio: 100.0 / 720.0,
	}
}

// Rect returns the area the bar covers in a frame with bounds b.
func (s *StatusBar) Rect(b image.Rectangle) image.Rectangle {
	h := int(float64(b.Dy()) * s.HeightRatio)
	return image.Rect(b.Min.X, b.Max.Y-h, b.Max.X, b.Max.Y)
}

// FaceIndex picks the frame of the face strip for a health value.
func FaceIndex(health int) int {
	if health <= 0 {
		return faceDead
	}
	health = min(health, 100)
	tier := int(float64(100-health) / tierSpan)
	tier = max(0, min(faceTiers-1, tier))
	return tier * faceGlances
}

// Draw implements compositor.Overlay.
func (s *StatusBar) Draw(dst *image.RGBA) {
	if s.Player == nil {
		return
	}
	bar := s.Rect(dst.Bounds())
	if bar.Dy() < 12 {
		return
	}
	fill(dst, bar, BackColor)
	fill(dst, image.Rect(bar.Min.X, bar.Min.Y, bar.Max.X, bar.Min.Y+max(1, bar.Dy()/25)), BorderColor)

	p := s.Player
	y0, y1 := bar.Min.Y+bar.Dy()/20, bar.Max.Y-bar.Dy()/20
	panel := func(i int) image.Rectangle {
		var from float64
		for _, w := range statusPanels[:i] {
			from += w
		}
		x0 := bar.Min.X + int(from*float64(bar.Dx()))
		x1 := bar.Min.X + int((from+statusPanels[i])*float64(bar.Dx()))
		return image.Rect(x0, y0, x1, y1)
	}

	s.drawValue(dst, panel(0), "FLOOR", strconv.Itoa(s.Floor))
	s.drawValue(dst, panel(1), "SCORE", strconv.Itoa(p.Score))
	s.drawValue(dst, panel(2), "LIVES", strconv.Itoa(p.Lives))
	s.drawPicture(dst, panel(3), fmt.Sprintf("face_%d", FaceIndex(p.Health)))
	s.drawValue(dst, panel(4), "HEALTH", strconv.Itoa(p.Health)+"%")
	s.drawValue(dst, panel(5), "AMMO", strconv.Itoa(p.Ammo))

	r := panel(6)
	s.drawPicture(dst, r, "hud_"+p.Weapon.String())
	DrawText(dst, r.Min.X+4, r.Min.Y+4, strings.ToUpper(p.Weapon.String()), LabelColor, 1)
}

func (s *StatusBar) drawValue(dst *image.RGBA, r image.Rectangle, label, value string) {
	fill(dst, r, PanelColor)
	stroke(dst, r, 2, BorderColor)

	cx := r.Min.X + r.Dx()/2
	DrawTextCentered(dst, cx, r.Min.Y+r.Dy()/6, label, LabelColor, 1)
	DrawTextCentered(dst, cx, r.Min.Y+r.Dy()*5/9, value, TextColor, max(1, r.Dy()/30))
}

func (s *StatusBar) drawPicture(dst *image.RGBA, r image.Rectangle, name string) {
	fill(dst, r, PanelColor)
	stroke(dst, r, 2, BorderColor)
	if s.Images == nil {
		return
	}
	if img := s.Images.Sprite(name); img != nil {
		fit(dst, r.Inset(5), img)
	}
}
