package debug

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/Faultbox/wolfcast/internal/engine/raycast"
	"github.com/Faultbox/wolfcast/internal/engine/sprite"
	"github.com/Faultbox/wolfcast/internal/engine/view"
	"github.com/Faultbox/wolfcast/internal/game/world"
)

// Top-down palette.
var (
	ColorFloor  = color.RGBA{24, 24, 24, 255}
	ColorWall   = color.RGBA{150, 150, 150, 255}
	ColorDoor   = color.RGBA{160, 110, 40, 255}
	ColorRay    = color.RGBA{230, 200, 60, 255}
	ColorSprite = color.RGBA{60, 200, 60, 255}
	ColorViewer = color.RGBA{220, 40, 40, 255}
)

// TopDown draws a plan view of a level: cells, door openings, the rays of
// one sweep, sprites and the viewer.
type TopDown struct {
	Grid    *world.GridMap
	Doors   *world.DoorSet
	Hits    []raycast.Hit
	Sprites []*sprite.Sprite
	Pose    *view.Pose

	// RayStride draws every n-th ray; 0 draws none.
	RayStride int
}

// Image renders the view at cell pixels per grid cell.
func (td *TopDown) Image(cell int) *image.RGBA {
	if cell < 1 {
		cell = 1
	}
	img := image.NewRGBA(image.Rect(0, 0, td.Grid.Width()*cell, td.Grid.Height()*cell))
	td.Draw(img, img.Bounds())
	return img
}

// Draw renders into r of dst, scaling the grid to fit r.
func (td *TopDown) Draw(dst *image.RGBA, r image.Rectangle) {
	gw, gh := td.Grid.Width(), td.Grid.Height()
	if gw == 0 || gh == 0 || r.Empty() {
		return
	}
	scale := math.Min(float64(r.Dx())/float64(gw), float64(r.Dy())/float64(gh))
	toScreen := func(x, y float64) image.Point {
		return image.Pt(r.Min.X+int(x*scale), r.Min.Y+int(y*scale))
	}

	for y := 0; y < gh; y++ {
		for x := 0; x < gw; x++ {
			cellRect := image.Rectangle{
				Min: toScreen(float64(x), float64(y)),
				Max: toScreen(float64(x+1), float64(y+1)),
			}.Intersect(r)

			code := td.Grid.WallCode(x, y)
			c := ColorFloor
			switch {
			case code == world.CellDoor:
				c = ColorDoor
				if d := td.Doors.At(x, y); d != nil {
					c = lerp(ColorDoor, ColorFloor, d.OpenAmount())
				}
			case code != world.CellEmpty:
				c = ColorWall
			}
			draw.Draw(dst, cellRect, image.NewUniform(c), image.Point{}, draw.Src)
		}
	}

	if td.Pose == nil {
		return
	}
	origin := toScreen(td.Pose.Pos.X, td.Pose.Pos.Y)

	if td.RayStride > 0 {
		for i := 0; i < len(td.Hits); i += td.RayStride {
			h := td.Hits[i]
			// Hits store perpendicular distance; undo the fisheye correction.
			d := h.Distance / math.Max(math.Cos(h.Angle-td.Pose.Angle), 1e-6)
			end := toScreen(td.Pose.Pos.X+math.Cos(h.Angle)*d, td.Pose.Pos.Y+math.Sin(h.Angle)*d)
			Line(dst, origin, end, ColorRay)
		}
	}

	dot := int(math.Max(1, scale/4))
	for _, s := range td.Sprites {
		fillSquare(dst, toScreen(s.Pos.X, s.Pos.Y), dot, ColorSprite)
	}

	fillSquare(dst, origin, dot+1, ColorViewer)
	heading := td.Pose.Forward().Scale(0.75)
	Line(dst, origin, toScreen(td.Pose.Pos.X+heading.X, td.Pose.Pos.Y+heading.Y), ColorViewer)
}

// Line draws a Bresenham line clipped to dst.
func Line(dst *image.RGBA, a, b image.Point, c color.RGBA) {
	dx := abs(b.X - a.X)
	dy := -abs(b.Y - a.Y)
	sx, sy := 1, 1
	if a.X > b.X {
		sx = -1
	}
	if a.Y > b.Y {
		sy = -1
	}
	err := dx + dy
	bounds := dst.Bounds()
	for {
		if (image.Point{a.X, a.Y}).In(bounds) {
			dst.SetRGBA(a.X, a.Y, c)
		}
		if a == b {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			a.X += sx
		}
		if e2 <= dx {
			err += dx
			a.Y += sy
		}
	}
}

func fillSquare(dst *image.RGBA, p image.Point, half int, c color.RGBA) {
	r := image.Rect(p.X-half, p.Y-half, p.X+half+1, p.Y+half+1).Intersect(dst.Bounds())
	draw.Draw(dst, r, image.NewUniform(c), image.Point{}, draw.Src)
}

func lerp(a, b color.RGBA, t float64) color.RGBA {
	t = math.Max(0, math.Min(1, t))
	mix := func(x, y uint8) uint8 {
		return uint8(float64(x) + (float64(y)-float64(x))*t)
	}
	return color.RGBA{mix(a.R, b.R), mix(a.G, b.G), mix(a.B, b.B), 255}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
