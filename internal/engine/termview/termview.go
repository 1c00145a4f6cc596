// Package termview presents frames in a terminal with tcell.
//
// Every character cell shows two vertically stacked pixels: the upper half
// block '▀' in the top pixel's colour over a background in the bottom
// pixel's colour.
package termview

import (
	"fmt"
	"image"
	"image/color"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"
	"golang.org/x/image/draw"

	"github.com/Faultbox/wolfcast/internal/logger"
)

const halfBlock = '▀'

// Cell is one terminal character worth of pixels.
type Cell struct {
	Top    color.RGBA
	Bottom color.RGBA
}

// Terminal owns the tcell screen.
type Terminal struct {
	screen  tcell.Screen
	scratch *image.RGBA
	cells   []Cell
}

// New initialises the controlling terminal.
func New() (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("creating screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("initializing screen: %w", err)
	}
	return NewWithScreen(screen), nil
}

// NewWithScreen wraps an initialised screen.
func NewWithScreen(screen tcell.Screen) *Terminal {
	screen.HideCursor()
	screen.Clear()
	cols, rows := screen.Size()
	logger.Info("terminal ready", zap.Int("cols", cols), zap.Int("rows", rows))
	return &Terminal{screen: screen}
}

// Screen returns the underlying tcell screen.
func (t *Terminal) Screen() tcell.Screen {
	return t.screen
}

// FrameSize is the pixel resolution that maps 1:1 onto the terminal.
func (t *Terminal) FrameSize() (width, height int) {
	cols, rows := t.screen.Size()
	return cols, rows * 2
}

// Present draws frame scaled to the current terminal size.
func (t *Terminal) Present(frame *image.RGBA) error {
	cols, rows := t.screen.Size()
	if cols <= 0 || rows <= 0 {
		return nil
	}

	src := frame
	if b := frame.Bounds(); b.Dx() != cols || b.Dy() != rows*2 {
		if t.scratch == nil || t.scratch.Bounds().Dx() != cols || t.scratch.Bounds().Dy() != rows*2 {
			t.scratch = image.NewRGBA(image.Rect(0, 0, cols, rows*2))
		}
		draw.ApproxBiLinear.Scale(t.scratch, t.scratch.Bounds(), frame, b, draw.Src, nil)
		src = t.scratch
	}

	t.cells = Downsample(t.cells, src, cols, rows)
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			c := t.cells[y*cols+x]
			style := tcell.StyleDefault.
				Foreground(rgb(c.Top)).
				Background(rgb(c.Bottom))
			t.screen.SetContent(x, y, halfBlock, nil, style)
		}
	}
	t.screen.Show()
	return nil
}

// Close restores the terminal.
func (t *Terminal) Close() {
	logger.Info("closing terminal")
	t.screen.Fini()
}

// Downsample averages src into cols x rows cells, each covering an equal
// share of the image split into an upper and lower half. dst is reused when
// large enough.
func Downsample(dst []Cell, src *image.RGBA, cols, rows int) []Cell {
	n := cols * rows
	if cap(dst) < n {
		dst = make([]Cell, n)
	}
	dst = dst[:n]

	b := src.Bounds()
	for cy := 0; cy < rows; cy++ {
		top0 := b.Min.Y + (2*cy)*b.Dy()/(2*rows)
		mid := b.Min.Y + (2*cy+1)*b.Dy()/(2*rows)
		bot1 := b.Min.Y + (2*cy+2)*b.Dy()/(2*rows)
		for cx := 0; cx < cols; cx++ {
			x0 := b.Min.X + cx*b.Dx()/cols
			x1 := b.Min.X + (cx+1)*b.Dx()/cols
			dst[cy*cols+cx] = Cell{
				Top:    average(src, x0, top0, x1, mid),
				Bottom: average(src, x0, mid, x1, bot1),
			}
		}
	}
	return dst
}

func average(img *image.RGBA, x0, y0, x1, y1 int) color.RGBA {
	if x1 <= x0 {
		x1 = x0 + 1
	}
	if y1 <= y0 {
		y1 = y0 + 1
	}
	var r, g, b, n uint32
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			c := img.RGBAAt(x, y)
			r += uint32(c.R)
			g += uint32(c.G)
			b += uint32(c.B)
			n++
		}
	}
	return color.RGBA{R: uint8(r / n), G: uint8(g / n), B: uint8(b / n), A: 255}
}

func rgb(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
