package offscreen

import "fmt"

// StrategySoftware is the name of the CPU strategy.
const StrategySoftware = "software"

// init registers the software strategy on package import.
func init() {
	RegisterStrategy(StrategySoftware, func() Strategy {
		return softwareStrategy{}
	})
}

// softwareStrategy renders on the CPU. It needs no device and always
// succeeds, so it serves tests and machines without a GPU.
type softwareStrategy struct{}

func (softwareStrategy) Name() string { return StrategySoftware }

func (softwareStrategy) CreateContext(cfg ContextConfig) (GraphicsContext, error) {
	fmt.Fprintln(cfg.Writer(), "Using the software renderer")
	return &softwareContext{}, nil
}

func (softwareStrategy) BindRenderer(ctx GraphicsContext) (Renderer, error) {
	sc, ok := ctx.(*softwareContext)
	if !ok {
		return nil, fmt.Errorf("software: cannot bind to %s context", ctx.Strategy())
	}
	if sc.released {
		return nil, ErrClosed
	}
	return &SoftwareRenderer{}, nil
}

type softwareContext struct {
	released bool
}

func (c *softwareContext) Strategy() string { return StrategySoftware }
func (c *softwareContext) Describe() string { return "cpu" }

func (c *softwareContext) Release() error {
	c.released = true
	return nil
}

// SoftwareRenderer is a CPU Renderer that stores pixels in RGBA order.
type SoftwareRenderer struct {
	fb     *FrameBuffer
	closed bool
}

// NewSoftwareRenderer creates an unconfigured software renderer.
func NewSoftwareRenderer() *SoftwareRenderer {
	return &SoftwareRenderer{}
}

// Name returns the renderer identifier.
func (r *SoftwareRenderer) Name() string {
	return StrategySoftware
}

// Configure clears the framebuffer to transparent black at width x height
// pixels, reusing the buffer when the size is unchanged. The pixel ratio
// does not scale the framebuffer.
func (r *SoftwareRenderer) Configure(width, height int, _ float64) error {
	if r.closed {
		return ErrClosed
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	if r.fb != nil && r.fb.Width == width && r.fb.Height == height {
		clear(r.fb.Pix)
		return nil
	}
	r.fb = NewFrameBuffer(width, height, OrderRGBA)
	return nil
}

// Render executes cmds in order.
func (r *SoftwareRenderer) Render(cmds []Command) error {
	if r.closed {
		return ErrClosed
	}
	if r.fb == nil {
		return ErrNoFramebuffer
	}
	for _, cmd := range cmds {
		switch cmd.Kind {
		case CommandClearRect:
			r.clearRect(cmd)
		default:
			return fmt.Errorf("software: unsupported command %s", cmd.Kind)
		}
	}
	return nil
}

// clearRect replaces the covered pixels; there is no blending.
func (r *SoftwareRenderer) clearRect(cmd Command) {
	b := cmd.Bounds(r.fb.Width, r.fb.Height)
	if b.Empty() {
		return
	}
	c := cmd.Color.NRGBA()
	px := [4]byte{c.R, c.G, c.B, c.A}
	stride := r.fb.Width * 4
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := r.fb.Pix[y*stride+b.Min.X*4 : y*stride+b.Max.X*4]
		for i := 0; i < len(row); i += 4 {
			copy(row[i:i+4], px[:])
		}
	}
}

// ReadPixels returns a copy of the framebuffer.
func (r *SoftwareRenderer) ReadPixels() (*FrameBuffer, error) {
	if r.closed {
		return nil, ErrClosed
	}
	if r.fb == nil {
		return nil, ErrNoFramebuffer
	}
	out := NewFrameBuffer(r.fb.Width, r.fb.Height, r.fb.Order)
	copy(out.Pix, r.fb.Pix)
	return out, nil
}

// Close releases the framebuffer.
func (r *SoftwareRenderer) Close() error {
	r.closed = true
	r.fb = nil
	return nil
}
