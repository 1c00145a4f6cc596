// Package renderer presents software-composed frames through OpenGL.
//
// Each frame is uploaded into one RGBA texture and drawn as a fullscreen
// quad, letterboxed to keep the frame's aspect ratio.
package renderer

import (
	"fmt"
	"image"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/wolfcast/internal/logger"
)

// Surface is the window side of presentation.
type Surface interface {
	SwapBuffers()
	GetSize() (int, int)
}

// Renderer uploads frames to a texture and draws them.
type Renderer struct {
	surface Surface

	program uint32
	vao     uint32
	vbo     uint32
	texture uint32

	texW, texH int
}

// New creates a renderer.
// IMPORTANT: Must be called AFTER the OpenGL context is created!
func New(surface Surface) (*Renderer, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	logger.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	r := &Renderer{surface: surface}

	var err error
	r.program, err = compileProgram(frameVertexShader, frameFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("failed to create shader program: %w", err)
	}
	r.createQuad()
	r.createTexture()

	gl.Disable(gl.DEPTH_TEST)
	gl.ClearColor(0, 0, 0, 1)

	gl.UseProgram(r.program)
	gl.Uniform1i(gl.GetUniformLocation(r.program, gl.Str("uFrame\x00")), 0)

	return r, nil
}

// Close releases GL resources.
func (r *Renderer) Close() {
	logger.Info("closing renderer")
	if r.texture != 0 {
		gl.DeleteTextures(1, &r.texture)
	}
	if r.vao != 0 {
		gl.DeleteVertexArrays(1, &r.vao)
	}
	if r.vbo != 0 {
		gl.DeleteBuffers(1, &r.vbo)
	}
	if r.program != 0 {
		gl.DeleteProgram(r.program)
	}
}

// Present uploads frame and swaps buffers.
func (r *Renderer) Present(frame *image.RGBA) error {
	b := frame.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return fmt.Errorf("empty frame %dx%d", w, h)
	}

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, r.texture)
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, int32(frame.Stride/4))
	pix := unsafe.Pointer(&frame.Pix[frame.PixOffset(b.Min.X, b.Min.Y)])
	if w != r.texW || h != r.texH {
		gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(w), int32(h), 0, gl.RGBA, gl.UNSIGNED_BYTE, pix)
		r.texW, r.texH = w, h
		logger.Debug("frame texture resized", zap.Int("width", w), zap.Int("height", h))
	} else {
		gl.TexSubImage2D(gl.TEXTURE_2D, 0, 0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, pix)
	}
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, 0)

	winW, winH := r.surface.GetSize()
	gl.Viewport(0, 0, int32(winW), int32(winH))
	gl.Clear(gl.COLOR_BUFFER_BIT)

	vp := Letterbox(w, h, winW, winH)
	gl.Viewport(int32(vp.Min.X), int32(vp.Min.Y), int32(vp.Dx()), int32(vp.Dy()))

	gl.UseProgram(r.program)
	gl.BindVertexArray(r.vao)
	gl.DrawArrays(gl.TRIANGLE_STRIP, 0, 4)
	gl.BindVertexArray(0)

	r.surface.SwapBuffers()
	if code := gl.GetError(); code != gl.NO_ERROR {
		return fmt.Errorf("gl error 0x%x", code)
	}
	return nil
}

// Letterbox fits a frameW x frameH image inside winW x winH, centered,
// keeping the aspect ratio.
func Letterbox(frameW, frameH, winW, winH int) image.Rectangle {
	if frameW <= 0 || frameH <= 0 || winW <= 0 || winH <= 0 {
		return image.Rectangle{}
	}
	w := winW
	h := winW * frameH / frameW
	if h > winH {
		h = winH
		w = winH * frameW / frameH
	}
	x := (winW - w) / 2
	y := (winH - h) / 2
	return image.Rect(x, y, x+w, y+h)
}

// createQuad builds the fullscreen strip. V is flipped because image rows
// run top-down and GL textures bottom-up.
func (r *Renderer) createQuad() {
	vertices := []float32{
		// pos      uv
		-1, -1, 0, 1,
		1, -1, 1, 1,
		-1, 1, 0, 0,
		1, 1, 1, 0,
	}

	gl.GenVertexArrays(1, &r.vao)
	gl.BindVertexArray(r.vao)

	gl.GenBuffers(1, &r.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, unsafe.Pointer(&vertices[0]), gl.STATIC_DRAW)

	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, 4*4, nil)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(1, 2, gl.FLOAT, false, 4*4, unsafe.Pointer(uintptr(2*4)))
	gl.EnableVertexAttribArray(1)

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)

	logger.Debug("frame quad created", zap.Uint32("vao", r.vao), zap.Uint32("vbo", r.vbo))
}

func (r *Renderer) createTexture() {
	gl.GenTextures(1, &r.texture)
	gl.BindTexture(gl.TEXTURE_2D, r.texture)
	// Nearest keeps the blocky columns crisp when scaling up.
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
}
