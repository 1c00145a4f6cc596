package hud

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

var face font.Face = basicfont.Face7x13

// TextWidth is the advance of s in pixels at scale 1.
func TextWidth(s string) int {
	return font.MeasureString(face, s).Ceil()
}

// TextHeight is the line height in pixels at scale 1.
func TextHeight() int {
	return face.Metrics().Height.Ceil()
}

// DrawText draws s with its top-left corner at (x, y). Scales above 1
// enlarge the glyphs with nearest-neighbour sampling.
func DrawText(dst *image.RGBA, x, y int, s string, c color.Color, scale int) {
	ascent := face.Metrics().Ascent.Ceil()
	if scale <= 1 {
		d := font.Drawer{Dst: dst, Src: image.NewUniform(c), Face: face, Dot: fixed.P(x, y+ascent)}
		d.DrawString(s)
		return
	}

	w, h := TextWidth(s), TextHeight()
	if w == 0 {
		return
	}
	tmp := image.NewRGBA(image.Rect(0, 0, w, h))
	d := font.Drawer{Dst: tmp, Src: image.NewUniform(c), Face: face, Dot: fixed.P(0, ascent)}
	d.DrawString(s)
	draw.NearestNeighbor.Scale(dst, image.Rect(x, y, x+w*scale, y+h*scale), tmp, tmp.Bounds(), draw.Over, nil)
}

// DrawTextCentered draws s centred on (cx, cy).
func DrawTextCentered(dst *image.RGBA, cx, cy int, s string, c color.Color, scale int) {
	scale = max(scale, 1)
	DrawText(dst, cx-TextWidth(s)*scale/2, cy-TextHeight()*scale/2, s, c, scale)
}
