package desktop

import (
	"bytes"
	"image"
	"testing"

	"github.com/gogpu/offscreen"
)

func TestScissorBox(t *testing.T) {
	tests := []struct {
		name       string
		r          image.Rectangle
		x, y, w, h int32
	}{
		{"full canvas", image.Rect(0, 0, 640, 480), 0, 0, 640, 480},
		{"top strip", image.Rect(0, 0, 640, 10), 0, 470, 640, 10},
		{"bottom right", image.Rect(600, 400, 640, 480), 600, 0, 40, 80},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y, w, h := scissorBox(tt.r, 480)
			if x != tt.x || y != tt.y || w != tt.w || h != tt.h {
				t.Errorf("scissorBox(%v) = (%d, %d, %d, %d), want (%d, %d, %d, %d)",
					tt.r, x, y, w, h, tt.x, tt.y, tt.w, tt.h)
			}
		})
	}
}

func TestClearColorQuantized(t *testing.T) {
	c := clearColor(offscreen.LightGray)
	want := float32(229) / 255
	for i := 0; i < 3; i++ {
		if c[i] != want {
			t.Errorf("channel %d = %v, want %v", i, c[i], want)
		}
	}
	if c[3] != 1 {
		t.Errorf("alpha = %v, want 1", c[3])
	}
}

func TestFlipRows(t *testing.T) {
	src := []byte{
		1, 1, 1, 1,
		2, 2, 2, 2,
		3, 3, 3, 3,
	}
	dst := make([]byte, len(src))
	flipRows(dst, src, 4, 3)
	want := []byte{
		3, 3, 3, 3,
		2, 2, 2, 2,
		1, 1, 1, 1,
	}
	if !bytes.Equal(dst, want) {
		t.Errorf("flipRows = %v, want %v", dst, want)
	}
}

func TestVersionsNewestFirst(t *testing.T) {
	if versions[0] != (glVersion{4, 6}) {
		t.Errorf("first version = %v, want 4.6", versions[0])
	}
	if last := versions[len(versions)-1]; last != (glVersion{3, 2}) {
		t.Errorf("last version = %v, want 3.2", last)
	}
	for i := 1; i < len(versions); i++ {
		a, b := versions[i-1], versions[i]
		if a.major < b.major || (a.major == b.major && a.minor <= b.minor) {
			t.Errorf("versions not strictly descending at %d: %v then %v", i, a, b)
		}
	}
}
