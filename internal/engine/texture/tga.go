package texture

import (
	"errors"
	"fmt"
	"image"
	"image/color"
)

// ErrUnsupportedTGA is returned for TGA variants other than 24/32-bit
// true-colour, raw or RLE.
var ErrUnsupportedTGA = errors.New("unsupported TGA")

// TGA image types.
const (
	tgaTrueColor    = 2
	tgaTrueColorRLE = 10
	tgaHeaderSize   = 18
)

type tgaHeader struct {
	idLength    int
	colorMap    byte
	imageType   byte
	width       int
	height      int
	bpp         int
	topToBottom bool
}

func parseTGAHeader(data []byte) (tgaHeader, error) {
	if len(data) < tgaHeaderSize {
		return tgaHeader{}, fmt.Errorf("TGA data too short: %d bytes", len(data))
	}
	h := tgaHeader{
		idLength:    int(data[0]),
		colorMap:    data[1],
		imageType:   data[2],
		width:       int(data[12]) | int(data[13])<<8,
		height:      int(data[14]) | int(data[15])<<8,
		bpp:         int(data[16]),
		topToBottom: data[17]&0x20 != 0,
	}
	switch {
	case h.colorMap != 0:
		return h, fmt.Errorf("%w: colour-mapped", ErrUnsupportedTGA)
	case h.imageType != tgaTrueColor && h.imageType != tgaTrueColorRLE:
		return h, fmt.Errorf("%w: type %d", ErrUnsupportedTGA, h.imageType)
	case h.bpp != 24 && h.bpp != 32:
		return h, fmt.Errorf("%w: %d bits per pixel", ErrUnsupportedTGA, h.bpp)
	case h.width == 0 || h.height == 0:
		return h, fmt.Errorf("%w: empty image", ErrUnsupportedTGA)
	}
	return h, nil
}

// DecodeTGA decodes uncompressed or RLE true-colour TGA data. TGA has no
// magic number, so it is picked by file extension rather than registered
// with the image package.
func DecodeTGA(data []byte) (image.Image, error) {
	h, err := parseTGAHeader(data)
	if err != nil {
		return nil, err
	}
	offset := tgaHeaderSize + h.idLength
	if offset > len(data) {
		return nil, fmt.Errorf("TGA data truncated")
	}
	src := data[offset:]
	bpp := h.bpp / 8
	total := h.width * h.height

	img := image.NewRGBA(image.Rect(0, 0, h.width, h.height))
	put := func(n int, px []byte) {
		x, y := n%h.width, n/h.width
		if !h.topToBottom {
			y = h.height - 1 - y
		}
		a := uint8(255)
		if bpp == 4 {
			a = px[3]
		}
		img.SetRGBA(x, y, color.RGBA{R: px[2], G: px[1], B: px[0], A: a})
	}

	if h.imageType == tgaTrueColor {
		if len(src) < total*bpp {
			return nil, fmt.Errorf("TGA pixel data truncated")
		}
		for n := 0; n < total; n++ {
			put(n, src[n*bpp:])
		}
		return img, nil
	}

	// RLE: a packet header's top bit selects a repeated pixel or a raw run.
	n, i := 0, 0
	for n < total && i < len(src) {
		packet := src[i]
		i++
		count := int(packet&0x7f) + 1
		repeat := packet&0x80 != 0
		if repeat && i+bpp > len(src) {
			break
		}
		for k := 0; k < count && n < total; k++ {
			if i+bpp > len(src) {
				break
			}
			put(n, src[i:])
			n++
			if !repeat {
				i += bpp
			}
		}
		if repeat {
			i += bpp
		}
	}
	return img, nil
}
