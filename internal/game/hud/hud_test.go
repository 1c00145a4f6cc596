package hud

import (
	"image"
	"image/color"
	"testing"

	"golang.org/x/image/draw"

	"github.com/Faultbox/wolfcast/internal/engine/debug"
	"github.com/Faultbox/wolfcast/internal/engine/view"
	"github.com/Faultbox/wolfcast/internal/game/entity"
	"github.com/Faultbox/wolfcast/internal/game/world"
)

var red = color.RGBA{255, 0, 0, 255}

// fakeImages serves a solid red square for every name and records requests.
type fakeImages struct {
	requested []string
}

func (f *fakeImages) Sprite(name string) image.Image {
	f.requested = append(f.requested, name)
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	draw.Draw(img, img.Bounds(), image.NewUniform(red), image.Point{}, draw.Src)
	return img
}

func newPlayer() *entity.Player {
	return entity.NewPlayer(view.Pose{}, entity.DefaultPlayerConfig(), nil)
}

func countColor(img *image.RGBA, r image.Rectangle, c color.RGBA) int {
	n := 0
	r = r.Intersect(img.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if img.RGBAAt(x, y) == c {
				n++
			}
		}
	}
	return n
}

func TestTextMetrics(t *testing.T) {
	if w := TextWidth("AB"); w != 14 {
		t.Errorf("TextWidth(AB) = %d, want 14", w)
	}
	if h := TextHeight(); h != 13 {
		t.Errorf("TextHeight() = %d, want 13", h)
	}
}

func TestDrawText(t *testing.T) {
	white := color.RGBA{255, 255, 255, 255}
	tests := []struct {
		name  string
		scale int
		box   image.Rectangle
	}{
		{"scale 1", 1, image.Rect(0, 0, 7, 13)},
		{"scale 3", 3, image.Rect(0, 0, 21, 39)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dst := image.NewRGBA(image.Rect(0, 0, 60, 60))
			DrawText(dst, 0, 0, "W", white, tt.scale)

			inside := countColor(dst, tt.box, white)
			total := countColor(dst, dst.Bounds(), white)
			if inside == 0 {
				t.Fatal("no glyph pixels drawn")
			}
			if inside != total {
				t.Errorf("%d pixels outside the glyph box", total-inside)
			}
		})
	}
}

func TestFaceIndex(t *testing.T) {
	tests := []struct {
		health int
		want   int
	}{
		{150, 0},
		{100, 0},
		{90, 0},
		{85, 3},
		{50, 9},
		{1, 18},
		{0, 20},
		{-5, 20},
	}
	for _, tt := range tests {
		if got := FaceIndex(tt.health); got != tt.want {
			t.Errorf("FaceIndex(%d) = %d, want %d", tt.health, got, tt.want)
		}
	}
}

func TestCrosshair(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 64, 64))
	NewCrosshair().Draw(dst)

	tests := []struct {
		x, y int
		want color.RGBA
	}{
		{32, 32, CrosshairColor},
		{39, 32, CrosshairColor},
		{32, 25, CrosshairColor},
		{40, 32, color.RGBA{}},
		{0, 0, color.RGBA{}},
	}
	for _, tt := range tests {
		if got := dst.RGBAAt(tt.x, tt.y); got != tt.want {
			t.Errorf("pixel (%d,%d) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestStatusBar(t *testing.T) {
	p := newPlayer()
	images := &fakeImages{}
	sb := NewStatusBar(p, images)

	dst := image.NewRGBA(image.Rect(0, 0, 720, 360))
	sb.Draw(dst)

	bar := sb.Rect(dst.Bounds())
	if bar != image.Rect(0, 310, 720, 360) {
		t.Fatalf("Rect = %v", bar)
	}
	if got := dst.RGBAAt(10, 300); got != (color.RGBA{}) {
		t.Errorf("pixel above the bar = %v, want untouched", got)
	}
	if got := dst.RGBAAt(10, 310); got != BorderColor {
		t.Errorf("top border = %v, want %v", got, BorderColor)
	}
	if got := dst.RGBAAt(3, 315); got != PanelColor {
		t.Errorf("floor panel = %v, want %v", got, PanelColor)
	}
	if got := dst.RGBAAt(288, 335); got != red {
		t.Errorf("face panel centre = %v, want face image", got)
	}
	if countColor(dst, bar, TextColor) == 0 {
		t.Error("no value text drawn")
	}

	want := map[string]bool{"face_0": true, "hud_pistol": true}
	for _, name := range images.requested {
		delete(want, name)
	}
	if len(want) != 0 {
		t.Errorf("images not requested: %v", want)
	}
}

func TestWeaponViewAnimation(t *testing.T) {
	p := newPlayer()
	v := NewWeaponView(p, &fakeImages{})

	if got := v.Frame(); got != "pistol_0" {
		t.Fatalf("idle frame = %q", got)
	}

	v.Fire()
	want := []string{"pistol_1", "pistol_2", "pistol_3", "pistol_4", "pistol_0"}
	for i, w := range want {
		v.Fire() // ignored while firing
		v.Update(0.1)
		if got := v.Frame(); got != w {
			t.Fatalf("step %d: frame = %q, want %q", i, got, w)
		}
	}
	if v.Firing() {
		t.Error("still firing after the last frame")
	}

	v.Fire()
	p.Weapon = entity.WeaponKnife
	if v.Firing() {
		t.Error("firing survived a weapon switch")
	}
	if got := v.Frame(); got != "knife_0" {
		t.Errorf("frame after switch = %q, want knife_0", got)
	}
}

func TestWeaponViewDraw(t *testing.T) {
	v := NewWeaponView(newPlayer(), &fakeImages{})
	dst := image.NewRGBA(image.Rect(0, 0, 200, 100))

	r := v.Rect(dst.Bounds(), image.Rect(0, 0, 64, 64))
	if r != image.Rect(70, 40, 130, 100) {
		t.Fatalf("Rect = %v", r)
	}

	v.Draw(dst)
	if got := dst.RGBAAt(100, 90); got != red {
		t.Errorf("weapon pixel = %v, want %v", got, red)
	}
	if got := dst.RGBAAt(10, 10); got != (color.RGBA{}) {
		t.Errorf("pixel outside weapon = %v", got)
	}
}

func TestMinimap(t *testing.T) {
	grid, err := world.GridFromRows([][]world.Cell{{1, 1}, {1, 1}})
	if err != nil {
		t.Fatal(err)
	}
	m := NewMinimap(nil)
	m.Grid = grid

	dst := image.NewRGBA(image.Rect(0, 0, 100, 100))
	m.Draw(dst)
	if countColor(dst, dst.Bounds(), color.RGBA{}) != 100*100 {
		t.Fatal("hidden minimap drew pixels")
	}

	m.Toggle()
	m.Draw(dst)
	if r := m.Rect(dst.Bounds()); r != image.Rect(60, 10, 90, 40) {
		t.Fatalf("Rect = %v", r)
	}
	if got := dst.RGBAAt(75, 25); got != debug.ColorWall {
		t.Errorf("minimap cell = %v, want %v", got, debug.ColorWall)
	}
	if got := dst.RGBAAt(58, 8); got != BorderColor {
		t.Errorf("minimap border = %v, want %v", got, BorderColor)
	}
}

func TestFPS(t *testing.T) {
	var f FPS
	for i := 0; i < 3; i++ {
		if f.Tick(0.25) {
			t.Fatalf("tick %d reported a new average", i)
		}
	}
	if !f.Tick(0.25) {
		t.Fatal("no average after one second")
	}
	if f.Value() != 4 {
		t.Errorf("Value() = %v, want 4", f.Value())
	}

	dst := image.NewRGBA(image.Rect(0, 0, 100, 40))
	f.Draw(dst)
	if countColor(dst, dst.Bounds(), TextColor) != 0 {
		t.Error("hidden counter drew text")
	}
	f.Visible = true
	f.Draw(dst)
	if countColor(dst, dst.Bounds(), TextColor) == 0 {
		t.Error("visible counter drew nothing")
	}
}

func TestHUDOverlays(t *testing.T) {
	h := New(newPlayer(), nil, nil)
	if n := len(h.Overlays()); n != 5 {
		t.Fatalf("len(Overlays()) = %d, want 5", n)
	}

	dst := image.NewRGBA(image.Rect(0, 0, 320, 200))
	h.Update(0.016)
	for _, o := range h.Overlays() {
		o.Draw(dst)
	}
	if got := dst.RGBAAt(160, 100); got != CrosshairColor {
		t.Errorf("centre = %v, want crosshair", got)
	}
}
