//go:build cgo && (darwin || desktopgl)

package desktop

import (
	"errors"
	"fmt"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/gogpu/offscreen"
)

// ErrNoProcLoader is returned when binding to a context that cannot
// resolve GL entry points.
var ErrNoProcLoader = errors.New("desktop: context does not resolve GL functions")

// BindRenderer loads the GL function table through the context and returns
// a renderer drawing into a framebuffer object.
func (s *Strategy) BindRenderer(ctx offscreen.GraphicsContext) (offscreen.Renderer, error) {
	loader, ok := ctx.(offscreen.ProcLoader)
	if !ok {
		return nil, fmt.Errorf("%w: %s context", ErrNoProcLoader, ctx.Strategy())
	}
	if err := gl.InitWithProcAddrFunc(loader.ProcAddress); err != nil {
		return nil, fmt.Errorf("load GL: %w", err)
	}
	offscreen.Logger().Info("desktop: GL loaded", "version", gl.GoStr(gl.GetString(gl.VERSION)))
	return &Renderer{}, nil
}

// Renderer clears rectangles with the scissor test in an RGBA8
// renderbuffer.
type Renderer struct {
	fbo, rbo      uint32
	width, height int
	closed        bool
}

var _ offscreen.Renderer = (*Renderer)(nil)

// Name returns the renderer identifier.
func (r *Renderer) Name() string { return Name }

// Configure (re)creates the framebuffer object at width x height and clears
// it to transparent black.
func (r *Renderer) Configure(width, height int, _ float64) error {
	if r.closed {
		return offscreen.ErrClosed
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d", offscreen.ErrInvalidSize, width, height)
	}
	if r.fbo == 0 || r.width != width || r.height != height {
		r.destroyFramebuffer()
		if err := r.createFramebuffer(width, height); err != nil {
			return err
		}
	}

	gl.BindFramebuffer(gl.FRAMEBUFFER, r.fbo)
	gl.Disable(gl.SCISSOR_TEST)
	gl.ClearColor(0, 0, 0, 0)
	gl.Clear(gl.COLOR_BUFFER_BIT)
	gl.Finish()
	return glError("configure")
}

func (r *Renderer) createFramebuffer(width, height int) error {
	gl.GenFramebuffers(1, &r.fbo)
	gl.BindFramebuffer(gl.FRAMEBUFFER, r.fbo)

	gl.GenRenderbuffers(1, &r.rbo)
	gl.BindRenderbuffer(gl.RENDERBUFFER, r.rbo)
	gl.RenderbufferStorage(gl.RENDERBUFFER, gl.RGBA8, int32(width), int32(height)) //nolint:gosec // canvas dimensions fit int32
	gl.FramebufferRenderbuffer(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.RENDERBUFFER, r.rbo)

	if status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER); status != gl.FRAMEBUFFER_COMPLETE {
		r.destroyFramebuffer()
		return fmt.Errorf("desktop: framebuffer incomplete (status 0x%x)", status)
	}
	gl.Viewport(0, 0, int32(width), int32(height)) //nolint:gosec // canvas dimensions fit int32
	r.width, r.height = width, height
	return nil
}

func (r *Renderer) destroyFramebuffer() {
	if r.fbo != 0 {
		gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
		gl.DeleteFramebuffers(1, &r.fbo)
		r.fbo = 0
	}
	if r.rbo != 0 {
		gl.DeleteRenderbuffers(1, &r.rbo)
		r.rbo = 0
	}
	r.width, r.height = 0, 0
}

// Render executes cmds and waits for the GPU to finish.
func (r *Renderer) Render(cmds []offscreen.Command) error {
	if r.closed {
		return offscreen.ErrClosed
	}
	if r.fbo == 0 {
		return offscreen.ErrNoFramebuffer
	}

	gl.BindFramebuffer(gl.FRAMEBUFFER, r.fbo)
	gl.Enable(gl.SCISSOR_TEST)
	for _, cmd := range cmds {
		if cmd.Kind != offscreen.CommandClearRect {
			gl.Disable(gl.SCISSOR_TEST)
			return fmt.Errorf("desktop: unsupported command %s", cmd.Kind)
		}
		b := cmd.Bounds(r.width, r.height)
		if b.Empty() {
			continue
		}
		x, y, w, h := scissorBox(b, r.height)
		gl.Scissor(x, y, w, h)
		c := clearColor(cmd.Color)
		gl.ClearColor(c[0], c[1], c[2], c[3])
		gl.Clear(gl.COLOR_BUFFER_BIT)
	}
	gl.Disable(gl.SCISSOR_TEST)
	gl.Finish()
	return glError("render")
}

// ReadPixels reads the framebuffer and returns it top row first.
func (r *Renderer) ReadPixels() (*offscreen.FrameBuffer, error) {
	if r.closed {
		return nil, offscreen.ErrClosed
	}
	if r.fbo == 0 {
		return nil, offscreen.ErrNoFramebuffer
	}

	raw := make([]byte, r.width*r.height*4)
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, r.fbo)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(r.width), int32(r.height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(&raw[0])) //nolint:gosec // canvas dimensions fit int32
	if err := glError("read pixels"); err != nil {
		return nil, err
	}

	fb := offscreen.NewFrameBuffer(r.width, r.height, offscreen.OrderRGBA)
	flipRows(fb.Pix, raw, r.width*4, r.height)
	return fb, nil
}

// Close deletes the framebuffer object. The context stays current.
func (r *Renderer) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	r.destroyFramebuffer()
	return nil
}

func glError(op string) error {
	if code := gl.GetError(); code != gl.NO_ERROR {
		return fmt.Errorf("desktop: %s: GL error 0x%x", op, code)
	}
	return nil
}
