package desktop

import (
	"fmt"
	"image"

	"github.com/gogpu/offscreen"
)

// Name is the strategy name in the offscreen registry.
const Name = "desktop"

// glVersion is an OpenGL context version.
type glVersion struct {
	major, minor int
}

func (v glVersion) String() string {
	return fmt.Sprintf("%d.%d", v.major, v.minor)
}

// versions are requested in order until a context is created.
var versions = []glVersion{
	{4, 6}, {4, 5}, {4, 4}, {4, 3}, {4, 2}, {4, 1}, {4, 0},
	{3, 3}, {3, 2},
}

// scissorBox converts a rectangle in top-left origin pixel coordinates to
// a GL scissor box, whose origin is the bottom-left corner.
func scissorBox(r image.Rectangle, height int) (x, y, w, h int32) {
	return int32(r.Min.X), int32(height - r.Max.Y), int32(r.Dx()), int32(r.Dy()) //nolint:gosec // canvas dimensions fit int32
}

// clearColor returns the 8-bit quantized color as GL clear values, so the
// framebuffer stores the same bytes the software renderer does.
func clearColor(c offscreen.RGBA) [4]float32 {
	n := c.NRGBA()
	return [4]float32{
		float32(n.R) / 255,
		float32(n.G) / 255,
		float32(n.B) / 255,
		float32(n.A) / 255,
	}
}

// flipRows copies src into dst with the row order reversed. GL returns rows
// bottom to top.
func flipRows(dst, src []byte, rowBytes, rows int) {
	for y := 0; y < rows; y++ {
		s := src[y*rowBytes : (y+1)*rowBytes]
		d := (rows - 1 - y) * rowBytes
		copy(dst[d:d+rowBytes], s)
	}
}
