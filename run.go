package offscreen

import (
	"fmt"
	"io"
)

// State is a stage of the Run pipeline. States only move forward.
type State int

// Pipeline states in the order Run reaches them.
const (
	StateUninitialized State = iota
	StateContextReady
	StateRendererReady
	StateCanvasReady
	StateDrawn
	StateFlushed
	StateCaptured
	StateSaved
	StateTerminated
)

var stateNames = [...]string{
	StateUninitialized: "Uninitialized",
	StateContextReady:  "ContextReady",
	StateRendererReady: "RendererReady",
	StateCanvasReady:   "CanvasReady",
	StateDrawn:         "Drawn",
	StateFlushed:       "Flushed",
	StateCaptured:      "Captured",
	StateSaved:         "Saved",
	StateTerminated:    "Terminated",
}

// String implements fmt.Stringer.
func (s State) String() string {
	if s >= 0 && int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Job describes one offscreen render.
type Job struct {
	// Width and Height are the logical canvas size in pixels.
	Width, Height int
	// PixelRatio is the device pixel ratio passed to the canvas.
	PixelRatio float64

	// ClearX, ClearY, ClearWidth and ClearHeight give the cleared
	// rectangle. It may extend past the canvas.
	ClearX, ClearY          int
	ClearWidth, ClearHeight int
	// Color fills the cleared rectangle.
	Color RGBA

	// Output is the image file written at the end.
	Output string
}

// DefaultJob returns the fixed job run by cmd/offscreen: a 640x480 canvas
// cleared to light gray and saved as test.png.
func DefaultJob() Job {
	return Job{
		Width:       640,
		Height:      480,
		PixelRatio:  1.0,
		ClearWidth:  1920,
		ClearHeight: 1080,
		Color:       LightGray,
		Output:      "test.png",
	}
}

// run tracks the pipeline state and the resources to release.
type run struct {
	state   State
	release []func()
}

func (r *run) advance(s State) {
	Logger().Debug("offscreen: state", "from", r.state, "to", s)
	r.state = s
}

func (r *run) onClose(name string, fn func() error) {
	r.release = append(r.release, func() {
		if err := fn(); err != nil {
			Logger().Warn("offscreen: release failed", "resource", name, "err", err)
		}
	})
}

func (r *run) close() {
	for i := len(r.release) - 1; i >= 0; i-- {
		r.release[i]()
	}
	r.release = nil
}

// Run executes job: it creates a context with the selected strategy, binds
// a renderer, draws the clear rectangle, captures the framebuffer and saves
// it to job.Output.
//
// Run returns the last state reached. On failure it stops at once and the
// error wraps the stage error of the failed step; no file is written unless
// the save step was reached. Resources are released in reverse order of
// acquisition before Run returns.
//
// GPU contexts are bound to the calling OS thread, so Run must be called
// from the main goroutine for the desktop strategy.
func Run(job Job, opts ...Option) (State, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	cfg := ContextConfig{Diagnostics: o.diagnostics}

	r := &run{state: StateUninitialized}
	defer r.close()

	s, ctx, err := CreateContext(o.strategy, cfg)
	if err != nil {
		return r.state, err
	}
	r.onClose("context", ctx.Release)
	r.advance(StateContextReady)

	renderer, err := BindRenderer(s, ctx)
	if err != nil {
		return r.state, err
	}
	r.advance(StateRendererReady)

	canvas, err := NewCanvas(renderer)
	if err != nil {
		_ = renderer.Close()
		return r.state, err
	}
	r.onClose("canvas", canvas.Close)
	if err := canvas.SetSize(job.Width, job.Height, job.PixelRatio); err != nil {
		return r.state, fmt.Errorf("%w: %w", ErrCanvas, err)
	}
	r.advance(StateCanvasReady)

	if err := canvas.ClearRect(job.ClearX, job.ClearY, job.ClearWidth, job.ClearHeight, job.Color); err != nil {
		return r.state, fmt.Errorf("%w: %w", ErrCanvas, err)
	}
	r.advance(StateDrawn)

	if err := canvas.Flush(); err != nil {
		return r.state, fmt.Errorf("%w: flush: %w", ErrCanvas, err)
	}
	r.advance(StateFlushed)

	fb, err := canvas.Screenshot()
	if err != nil {
		return r.state, fmt.Errorf("%w: %w", ErrScreenshot, err)
	}
	writeLine(cfg.Writer(), fb.String())
	r.advance(StateCaptured)

	img, err := fb.ToImage(canvas.Width(), canvas.Height())
	if err != nil {
		return r.state, fmt.Errorf("%w: %w", ErrSave, err)
	}
	if err := SaveImage(job.Output, img); err != nil {
		return r.state, fmt.Errorf("%w: %w", ErrSave, err)
	}
	Logger().Info("offscreen: saved", "path", job.Output, "width", img.Rect.Dx(), "height", img.Rect.Dy())
	r.advance(StateSaved)

	r.close()
	r.advance(StateTerminated)
	return r.state, nil
}

func writeLine(w io.Writer, s string) {
	_, _ = io.WriteString(w, s+"\n")
}
