package offscreen

import (
	"errors"
	"testing"
)

// recordingRenderer records calls made by a Canvas.
type recordingRenderer struct {
	configured [][2]int
	batches    [][]Command
	fb         *FrameBuffer
	closed     bool
	renderErr  error
}

func (r *recordingRenderer) Name() string { return "recording" }

func (r *recordingRenderer) Configure(width, height int, _ float64) error {
	r.configured = append(r.configured, [2]int{width, height})
	r.fb = NewFrameBuffer(width, height, OrderBGRA)
	return nil
}

func (r *recordingRenderer) Render(cmds []Command) error {
	if r.renderErr != nil {
		return r.renderErr
	}
	r.batches = append(r.batches, cmds)
	return nil
}

func (r *recordingRenderer) ReadPixels() (*FrameBuffer, error) {
	if r.fb == nil {
		return nil, ErrNoFramebuffer
	}
	return r.fb, nil
}

func (r *recordingRenderer) Close() error {
	r.closed = true
	return nil
}

func TestNewCanvasNilRenderer(t *testing.T) {
	_, err := NewCanvas(nil)
	if !errors.Is(err, ErrCanvas) {
		t.Errorf("NewCanvas(nil) error = %v, want ErrCanvas", err)
	}
}

func TestCanvasRequiresSize(t *testing.T) {
	c, err := NewCanvas(&recordingRenderer{})
	if err != nil {
		t.Fatalf("NewCanvas() error = %v", err)
	}

	if err := c.ClearRect(0, 0, 10, 10, White); !errors.Is(err, ErrSizeNotSet) {
		t.Errorf("ClearRect before SetSize error = %v, want ErrSizeNotSet", err)
	}
	if err := c.Flush(); !errors.Is(err, ErrSizeNotSet) {
		t.Errorf("Flush before SetSize error = %v, want ErrSizeNotSet", err)
	}
	if _, err := c.Screenshot(); !errors.Is(err, ErrSizeNotSet) {
		t.Errorf("Screenshot before SetSize error = %v, want ErrSizeNotSet", err)
	}
}

func TestCanvasSetSizeInvalid(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		ratio         float64
	}{
		{"zero width", 0, 480, 1},
		{"negative height", 640, -1, 1},
		{"zero ratio", 640, 480, 0},
		{"negative ratio", 640, 480, -2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &recordingRenderer{}
			c, _ := NewCanvas(r)
			if err := c.SetSize(tt.width, tt.height, tt.ratio); !errors.Is(err, ErrInvalidSize) {
				t.Errorf("SetSize() error = %v, want ErrInvalidSize", err)
			}
			if len(r.configured) != 0 {
				t.Errorf("renderer configured %d times, want 0", len(r.configured))
			}
		})
	}
}

func TestCanvasLastSetSizeWins(t *testing.T) {
	r := &recordingRenderer{}
	c, _ := NewCanvas(r)
	if err := c.SetSize(100, 100, 1); err != nil {
		t.Fatalf("SetSize() error = %v", err)
	}
	if err := c.SetSize(640, 480, 2); err != nil {
		t.Fatalf("SetSize() error = %v", err)
	}
	if c.Width() != 640 || c.Height() != 480 || c.PixelRatio() != 2 {
		t.Errorf("canvas = %dx%d@%v, want 640x480@2", c.Width(), c.Height(), c.PixelRatio())
	}
	fb, err := c.Screenshot()
	if err != nil {
		t.Fatalf("Screenshot() error = %v", err)
	}
	if fb.Width != 640 || fb.Height != 480 {
		t.Errorf("screenshot = %dx%d, want 640x480", fb.Width, fb.Height)
	}
}

func TestCanvasFlushEmptyIsNoop(t *testing.T) {
	r := &recordingRenderer{}
	c, _ := NewCanvas(r)
	_ = c.SetSize(8, 8, 1)

	if err := c.ClearRect(0, 0, 8, 8, LightGray); err != nil {
		t.Fatalf("ClearRect() error = %v", err)
	}
	if c.Pending() != 1 {
		t.Fatalf("Pending() = %d, want 1", c.Pending())
	}
	if err := c.Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}
	if err := c.Flush(); err != nil {
		t.Fatalf("second Flush() error = %v", err)
	}
	if len(r.batches) != 1 {
		t.Errorf("renderer got %d batches, want 1", len(r.batches))
	}
	if got := r.batches[0][0]; got.Kind != CommandClearRect || got.Width != 8 {
		t.Errorf("rendered command = %v", got)
	}
}

func TestCanvasFlushError(t *testing.T) {
	boom := errors.New("boom")
	c, _ := NewCanvas(&recordingRenderer{renderErr: boom})
	_ = c.SetSize(8, 8, 1)
	_ = c.ClearRect(0, 0, 1, 1, Black)
	if err := c.Flush(); !errors.Is(err, boom) {
		t.Errorf("Flush() error = %v, want %v", err, boom)
	}
}

func TestCanvasScreenshotSizeMismatch(t *testing.T) {
	r := &recordingRenderer{}
	c, _ := NewCanvas(r)
	_ = c.SetSize(8, 8, 1)
	r.fb = NewFrameBuffer(4, 4, OrderRGBA)

	if _, err := c.Screenshot(); !errors.Is(err, ErrSizeMismatch) {
		t.Errorf("Screenshot() error = %v, want ErrSizeMismatch", err)
	}
}

func TestCanvasClose(t *testing.T) {
	r := &recordingRenderer{}
	c, _ := NewCanvas(r)
	_ = c.SetSize(8, 8, 1)
	_ = c.ClearRect(0, 0, 1, 1, Black)

	if err := c.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if !r.closed {
		t.Error("renderer was not closed")
	}
	if err := c.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
	if err := c.ClearRect(0, 0, 1, 1, Black); !errors.Is(err, ErrClosed) {
		t.Errorf("ClearRect after Close error = %v, want ErrClosed", err)
	}
	if _, err := c.Screenshot(); !errors.Is(err, ErrClosed) {
		t.Errorf("Screenshot after Close error = %v, want ErrClosed", err)
	}
}

func TestCanvasUnflushedNotVisible(t *testing.T) {
	c, _ := NewCanvas(NewSoftwareRenderer())
	_ = c.SetSize(4, 4, 1)
	_ = c.ClearRect(0, 0, 4, 4, White)

	fb, err := c.Screenshot()
	if err != nil {
		t.Fatalf("Screenshot() error = %v", err)
	}
	if px := fb.PixelAt(0, 0); px != [4]byte{} {
		t.Errorf("unflushed pixel = %v, want zero", px)
	}
}
