// Package compositor assembles a frame: background, wall strips, depth-tested
// billboards, then overlays.
package compositor

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"

	"github.com/Faultbox/wolfcast/internal/engine/raycast"
	"github.com/Faultbox/wolfcast/internal/engine/sprite"
	"github.com/Faultbox/wolfcast/internal/engine/texture"
	"github.com/Faultbox/wolfcast/internal/engine/view"
	"github.com/Faultbox/wolfcast/internal/game/world"
)

// Textures supplies square images for walls and sprites.
type Textures interface {
	Wall(code world.Cell) image.Image
	Sprite(name string) image.Image
	Size() int
}

// Overlay is drawn on top of the finished scene.
type Overlay interface {
	Draw(dst *image.RGBA)
}

// OverlayFunc adapts a function to Overlay.
type OverlayFunc func(dst *image.RGBA)

// Draw calls f(dst).
func (f OverlayFunc) Draw(dst *image.RGBA) { f(dst) }

// CeilingColor fills the upper half of the frame.
var CeilingColor = color.RGBA{100, 100, 100, 255}

// Floor gradient grey levels, at the horizon and at the bottom edge.
const (
	floorHorizon = 20.0
	floorBottom  = 80.0
)

// sideShade darkens faces that crossed a horizontal grid line.
var sideShade = image.NewUniform(color.RGBA{0, 0, 0, 77})

// Compositor draws frames for one view configuration.
type Compositor struct {
	cfg       view.Config
	textures  Textures
	projector *sprite.Projector

	order []*sprite.Sprite
}

// New creates a compositor. The projector shares cfg with the caster so the
// sprite depth test lines up with the wall columns.
func New(cfg view.Config, textures Textures) *Compositor {
	return &Compositor{
		cfg:       cfg,
		textures:  textures,
		projector: sprite.NewProjector(cfg),
	}
}

// NewFrame allocates a frame buffer of the configured size.
func (c *Compositor) NewFrame() *image.RGBA {
	return image.NewRGBA(image.Rect(0, 0, c.cfg.Width, c.cfg.Height))
}

// Compose renders one frame into dst. hits must come from a caster built
// with the same view config; their distances are the depth buffer. bob
// shifts walls and sprites vertically.
func (c *Compositor) Compose(dst *image.RGBA, hits []raycast.Hit, sprites []*sprite.Sprite, pose view.Pose, bob int, overlays ...Overlay) {
	c.drawBackground(dst)
	c.drawWalls(dst, hits, bob)
	c.drawSprites(dst, hits, sprites, pose, bob)
	for _, o := range overlays {
		o.Draw(dst)
	}
}

func (c *Compositor) drawBackground(dst *image.RGBA) {
	half := c.cfg.Height / 2
	draw.Draw(dst, image.Rect(0, 0, c.cfg.Width, half), image.NewUniform(CeilingColor), image.Point{}, draw.Src)

	for y := half; y < c.cfg.Height; y++ {
		ratio := float64(y-half) / float64(half)
		v := uint8(floorHorizon + (floorBottom-floorHorizon)*ratio)
		draw.Draw(dst, image.Rect(0, y, c.cfg.Width, y+1), image.NewUniform(color.RGBA{v, v, v, 255}), image.Point{}, draw.Src)
	}
}

func (c *Compositor) drawWalls(dst *image.RGBA, hits []raycast.Hit, bob int) {
	cw := c.cfg.ColumnWidth
	texSize := c.textures.Size()
	h := float64(c.cfg.Height)

	for i, hit := range hits {
		height := int(raycast.WallHeight(h, hit.Distance))
		top := (c.cfg.Height-height)/2 + bob
		dr := image.Rect(i*cw, top, (i+1)*cw, top+height)
		if !dr.Overlaps(dst.Bounds()) {
			continue
		}

		tex := c.textures.Wall(hit.Code)
		col := int(hit.TextureU * float64(texSize))
		sr := texture.ColumnRect(col, texSize).Add(tex.Bounds().Min)
		draw.NearestNeighbor.Scale(dst, dr, tex, sr, draw.Src, nil)

		if hit.Side == raycast.Horizontal {
			draw.Draw(dst, dr.Intersect(dst.Bounds()), sideShade, image.Point{}, draw.Over)
		}
	}
}

func (c *Compositor) drawSprites(dst *image.RGBA, depth []raycast.Hit, sprites []*sprite.Sprite, pose view.Pose, bob int) {
	c.order = c.order[:0]
	for _, s := range sprites {
		if c.projector.ProjectSprite(s, pose) {
			c.order = append(c.order, s)
		}
	}
	sprite.SortFarToNear(c.order)

	texSize := c.textures.Size()
	for _, s := range c.order {
		p := s.Projection
		if p.Size <= 0 {
			continue
		}
		tex := c.textures.Sprite(s.Texture)
		left := p.Left()
		top := p.Y + bob

		x0, x1 := max(left, 0), min(left+p.Size, c.cfg.Width)
		for sx := x0; sx < x1; sx++ {
			idx := sx / c.cfg.ColumnWidth
			if idx >= len(depth) || p.Distance >= depth[idx].Distance {
				continue
			}
			col := (sx - left) * texSize / p.Size
			sr := texture.ColumnRect(col, texSize).Add(tex.Bounds().Min)
			draw.NearestNeighbor.Scale(dst, image.Rect(sx, top, sx+1, top+p.Size), tex, sr, draw.Over, nil)
		}
	}
}
