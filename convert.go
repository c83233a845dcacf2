package offscreen

import (
	"fmt"
	"image"
)

// Remap copies src into dst, moving each stored byte to the position of
// the channel it holds. src is in the given order, dst is RGBA. Values are
// copied unchanged; there is no scaling, clamping or color-space transform.
//
// Both slices must hold the same whole number of pixels.
func Remap(dst, src []byte, order ChannelOrder) error {
	if len(dst) != len(src) || len(src)%4 != 0 {
		return fmt.Errorf("%w: remap %d bytes into %d", ErrSizeMismatch, len(src), len(dst))
	}
	if !order.Valid() {
		return fmt.Errorf("offscreen: invalid channel order %v", order)
	}
	if order == OrderRGBA {
		copy(dst, src)
		return nil
	}
	for i := 0; i < len(src); i += 4 {
		d := dst[i : i+4 : i+4]
		s := src[i : i+4 : i+4]
		d[order[0]] = s[0]
		d[order[1]] = s[1]
		d[order[2]] = s[2]
		d[order[3]] = s[3]
	}
	return nil
}

// ToImage converts the framebuffer into a non-premultiplied RGBA image of
// the given size. The size is the canvas' logical size and must match the
// framebuffer.
func (fb *FrameBuffer) ToImage(width, height int) (*image.NRGBA, error) {
	if fb.Width != width || fb.Height != height {
		return nil, fmt.Errorf("%w: framebuffer %dx%d, image %dx%d",
			ErrSizeMismatch, fb.Width, fb.Height, width, height)
	}
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	if err := Remap(img.Pix, fb.Pix, fb.Order); err != nil {
		return nil, err
	}
	return img, nil
}
