package offscreen

import (
	"fmt"
)

// Canvas records drawing commands at a logical size and device pixel
// ratio, and hands them to its Renderer on Flush.
//
// The size must be set before any drawing, flushing or capture.
// Canvas is NOT safe for concurrent use.
type Canvas struct {
	renderer   Renderer
	width      int
	height     int
	pixelRatio float64
	sized      bool
	pending    []Command
	closed     bool
}

// NewCanvas creates a canvas drawing through r.
func NewCanvas(r Renderer) (*Canvas, error) {
	if r == nil {
		return nil, fmt.Errorf("%w: nil renderer", ErrCanvas)
	}
	return &Canvas{renderer: r, pixelRatio: 1}, nil
}

// Renderer returns the renderer backing the canvas.
func (c *Canvas) Renderer() Renderer {
	return c.renderer
}

// Width returns the logical width in pixels.
func (c *Canvas) Width() int {
	return c.width
}

// Height returns the logical height in pixels.
func (c *Canvas) Height() int {
	return c.height
}

// PixelRatio returns the device pixel ratio.
func (c *Canvas) PixelRatio() float64 {
	return c.pixelRatio
}

// Pending returns the number of commands waiting for Flush.
func (c *Canvas) Pending() int {
	return len(c.pending)
}

// SetSize declares the logical drawing area and configures the renderer's
// framebuffer for it. Later calls replace the size.
func (c *Canvas) SetSize(width, height int, pixelRatio float64) error {
	if c.closed {
		return ErrClosed
	}
	if width <= 0 || height <= 0 || !(pixelRatio > 0) {
		return fmt.Errorf("%w: %dx%d at ratio %v", ErrInvalidSize, width, height, pixelRatio)
	}
	if err := c.renderer.Configure(width, height, pixelRatio); err != nil {
		return fmt.Errorf("configure %dx%d: %w", width, height, err)
	}
	c.width, c.height, c.pixelRatio = width, height, pixelRatio
	c.sized = true
	Logger().Debug("offscreen: canvas sized", "width", width, "height", height, "ratio", pixelRatio)
	return nil
}

// ClearRect queues a command replacing the pixels of the rectangle with
// color. The rectangle is not checked against the canvas size.
func (c *Canvas) ClearRect(x, y, width, height int, color RGBA) error {
	if c.closed {
		return ErrClosed
	}
	if !c.sized {
		return ErrSizeNotSet
	}
	c.pending = append(c.pending, Command{
		Kind:   CommandClearRect,
		X:      x,
		Y:      y,
		Width:  width,
		Height: height,
		Color:  color,
	})
	return nil
}

// Flush renders all queued commands into the framebuffer. Flushing with
// nothing queued does nothing.
func (c *Canvas) Flush() error {
	if c.closed {
		return ErrClosed
	}
	if !c.sized {
		return ErrSizeNotSet
	}
	if len(c.pending) == 0 {
		return nil
	}
	cmds := c.pending
	c.pending = nil
	Logger().Debug("offscreen: flush", "commands", len(cmds))
	return c.renderer.Render(cmds)
}

// Screenshot captures the framebuffer at the last declared size.
// Commands queued since the last Flush are not included.
func (c *Canvas) Screenshot() (*FrameBuffer, error) {
	if c.closed {
		return nil, ErrClosed
	}
	if !c.sized {
		return nil, ErrSizeNotSet
	}
	fb, err := c.renderer.ReadPixels()
	if err != nil {
		return nil, err
	}
	if fb.Width != c.width || fb.Height != c.height {
		return nil, fmt.Errorf("%w: renderer returned %dx%d for a %dx%d canvas",
			ErrSizeMismatch, fb.Width, fb.Height, c.width, c.height)
	}
	return fb, nil
}

// Close releases the renderer. Queued commands are dropped.
func (c *Canvas) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	c.pending = nil
	return c.renderer.Close()
}
