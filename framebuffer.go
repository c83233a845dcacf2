package offscreen

import (
	"fmt"
	"image"
	"image/color"
)

// Channel identifies one of the four color channels.
type Channel uint8

// Channels in standard image order.
const (
	ChannelR Channel = iota
	ChannelG
	ChannelB
	ChannelA
)

// ChannelOrder names, for each of the four bytes of a stored pixel, the
// channel that byte holds.
type ChannelOrder [4]Channel

// Common channel orders.
var (
	OrderRGBA = ChannelOrder{ChannelR, ChannelG, ChannelB, ChannelA}
	OrderBGRA = ChannelOrder{ChannelB, ChannelG, ChannelR, ChannelA}
)

// Valid reports whether o is a permutation of the four channels.
func (o ChannelOrder) Valid() bool {
	var seen [4]bool
	for _, ch := range o {
		if ch > ChannelA || seen[ch] {
			return false
		}
		seen[ch] = true
	}
	return true
}

// String implements fmt.Stringer.
func (o ChannelOrder) String() string {
	const names = "RGBA"
	if !o.Valid() {
		return fmt.Sprintf("ChannelOrder%v", [4]Channel(o))
	}
	b := make([]byte, 4)
	for i, ch := range o {
		b[i] = names[ch]
	}
	return string(b)
}

// FrameBuffer is a screenshot of a renderer's framebuffer in the renderer's
// native channel order. Pixels are tightly packed, 4 bytes each, rows top
// to bottom.
//
// A FrameBuffer is read-only once returned by Canvas.Screenshot.
type FrameBuffer struct {
	Width  int
	Height int
	Order  ChannelOrder
	Pix    []byte
}

// NewFrameBuffer allocates a zeroed framebuffer.
func NewFrameBuffer(width, height int, order ChannelOrder) *FrameBuffer {
	return &FrameBuffer{
		Width:  width,
		Height: height,
		Order:  order,
		Pix:    make([]byte, width*height*4),
	}
}

// PixelAt returns the four stored bytes of the pixel at (x, y) in the
// framebuffer's own order. Out-of-bounds coordinates return zeros.
func (fb *FrameBuffer) PixelAt(x, y int) [4]byte {
	var px [4]byte
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return px
	}
	i := (y*fb.Width + x) * 4
	copy(px[:], fb.Pix[i:i+4])
	return px
}

// At implements the image.Image interface.
func (fb *FrameBuffer) At(x, y int) color.Color {
	px := fb.PixelAt(x, y)
	var c [4]uint8
	for i, ch := range fb.Order {
		c[ch] = px[i]
	}
	return color.NRGBA{R: c[0], G: c[1], B: c[2], A: c[3]}
}

// Bounds implements the image.Image interface.
func (fb *FrameBuffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, fb.Width, fb.Height)
}

// ColorModel implements the image.Image interface.
func (fb *FrameBuffer) ColorModel() color.Model {
	return color.NRGBAModel
}

// String describes the framebuffer on one line.
func (fb *FrameBuffer) String() string {
	return fmt.Sprintf("FrameBuffer{%dx%d %s8, %d bytes}", fb.Width, fb.Height, fb.Order, len(fb.Pix))
}
