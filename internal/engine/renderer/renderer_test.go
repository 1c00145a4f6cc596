package renderer

import (
	"image"
	"testing"
)

func TestLetterbox(t *testing.T) {
	tests := []struct {
		name           string
		fw, fh, ww, wh int
		want           image.Rectangle
	}{
		{"same size", 640, 360, 640, 360, image.Rect(0, 0, 640, 360)},
		{"scaled up", 640, 360, 1280, 720, image.Rect(0, 0, 1280, 720)},
		{"pillarbox", 640, 360, 1000, 360, image.Rect(180, 0, 820, 360)},
		{"letterbox", 640, 360, 640, 480, image.Rect(0, 60, 640, 420)},
		{"degenerate", 0, 360, 640, 480, image.Rectangle{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Letterbox(tt.fw, tt.fh, tt.ww, tt.wh)
			if got != tt.want {
				t.Errorf("Letterbox(%d,%d,%d,%d) = %v, want %v", tt.fw, tt.fh, tt.ww, tt.wh, got, tt.want)
			}
		})
	}
}
