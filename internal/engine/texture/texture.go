// Package texture decodes, normalises and serves the square images used for
// walls and sprites, substituting generated fallbacks for anything missing.
package texture

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/png" // PNG decoder registration
	"math"
	"path"
	"strings"

	_ "golang.org/x/image/bmp" // BMP decoder registration
	"golang.org/x/image/draw"
)

// DefaultSize is the edge length every texture is normalised to.
const DefaultSize = 64

// SpriteKey is the colour made transparent in sprite images.
var SpriteKey = color.RGBA{0, 0, 0, 255}

// Decode decodes PNG, BMP or TGA data. name is only used to pick TGA.
func Decode(name string, data []byte) (image.Image, error) {
	if strings.EqualFold(path.Ext(name), ".tga") {
		return DecodeTGA(data)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", name, err)
	}
	return img, nil
}

// Normalize scales img to a size x size RGBA image.
func Normalize(img image.Image, size int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	if img.Bounds().Dx() == size && img.Bounds().Dy() == size {
		draw.Draw(dst, dst.Bounds(), img, img.Bounds().Min, draw.Src)
		return dst
	}
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	return dst
}

// ApplyColorKey makes every pixel matching key transparent, in place. RGB
// is zeroed as well so scaling never bleeds the key colour.
func ApplyColorKey(img *image.RGBA, key color.RGBA) {
	for i := 0; i+3 < len(img.Pix); i += 4 {
		if img.Pix[i] == key.R && img.Pix[i+1] == key.G && img.Pix[i+2] == key.B {
			img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = 0, 0, 0, 0
		}
	}
}

// wallColors are the solid fallbacks by wall code.
var wallColors = map[uint8]color.RGBA{
	1: {128, 128, 128, 255},
	2: {139, 69, 19, 255},
	3: {0, 0, 139, 255},
	4: {128, 0, 0, 255},
	5: {128, 0, 128, 255},
	6: {0, 128, 0, 255},
	7: {200, 200, 200, 255},
}

// spriteColors are the disc fallbacks by sprite name.
var spriteColors = map[string]color.RGBA{
	"barrel":     {139, 69, 19, 255},
	"pillar":     {192, 192, 192, 255},
	"greenlight": {0, 255, 0, 255},
	"guard":      {255, 0, 0, 255},
	"knife":      {90, 90, 90, 255},
	"pistol":     {70, 70, 70, 255},
	"machinegun": {60, 60, 60, 255},
	"minigun":    {50, 50, 50, 255},
	"hud_":       {170, 170, 170, 255},
	"face_":      {230, 180, 140, 255},
}

// FallbackWall returns a solid square for a wall code.
func FallbackWall(code uint8, size int) *image.RGBA {
	c, ok := wallColors[code]
	if !ok {
		c = wallColors[1]
	}
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
	return img
}

// FallbackSprite returns a filled disc on a transparent square. Names that
// share a prefix with a known sprite ("guard_walk1") use its colour.
func FallbackSprite(name string, size int) *image.RGBA {
	c := color.RGBA{255, 0, 255, 255}
	for prefix, pc := range spriteColors {
		if strings.HasPrefix(name, prefix) {
			c = pc
			break
		}
	}

	img := image.NewRGBA(image.Rect(0, 0, size, size))
	center := float64(size) / 2
	radius := center * 30 / 32
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if math.Hypot(float64(x)+0.5-center, float64(y)+0.5-center) <= radius {
				img.SetRGBA(x, y, c)
			}
		}
	}
	return img
}

// ColumnRect is the one-pixel-wide source rectangle for column col of a
// size x size texture. Out-of-range columns fall back to column 0.
func ColumnRect(col, size int) image.Rectangle {
	if col < 0 || col >= size {
		col = 0
	}
	return image.Rect(col, 0, col+1, size)
}
