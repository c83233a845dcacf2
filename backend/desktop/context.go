//go:build cgo && (darwin || desktopgl)

package desktop

import (
	"errors"
	"fmt"
	"runtime"
	"unsafe"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/gogpu/offscreen"
)

// ErrNoGLContext is returned when no requested GL version could be created.
var ErrNoGLContext = errors.New("desktop: no OpenGL context available")

func init() {
	// GLFW must run on the main thread.
	runtime.LockOSThread()

	offscreen.RegisterStrategy(Name, func() offscreen.Strategy {
		return &Strategy{}
	})
}

// Strategy creates hidden GLFW windows with a current GL context.
type Strategy struct{}

// Name returns the strategy identifier.
func (s *Strategy) Name() string { return Name }

// CreateContext initializes GLFW and creates an invisible 1x1 window with
// the newest core-profile context available.
func (s *Strategy) CreateContext(_ offscreen.ContextConfig) (offscreen.GraphicsContext, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("glfw init: %w", err)
	}

	var lastErr error
	for _, v := range versions {
		window, err := createWindow(v)
		if err != nil {
			offscreen.Logger().Debug("desktop: GL version rejected", "version", v.String(), "err", err)
			lastErr = err
			continue
		}
		window.MakeContextCurrent()
		ctx := &Context{window: window, version: v}
		offscreen.Logger().Info("desktop: context ready", "version", v.String())
		return ctx, nil
	}

	glfw.Terminate()
	return nil, fmt.Errorf("%w: %w", ErrNoGLContext, lastErr)
}

func createWindow(v glVersion) (*glfw.Window, error) {
	glfw.DefaultWindowHints()
	glfw.WindowHint(glfw.Visible, glfw.False)
	glfw.WindowHint(glfw.Resizable, glfw.False)
	glfw.WindowHint(glfw.ContextVersionMajor, v.major)
	glfw.WindowHint(glfw.ContextVersionMinor, v.minor)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	return glfw.CreateWindow(1, 1, "offscreen", nil, nil)
}

// Context is a current GL context owned by a hidden window.
type Context struct {
	window   *glfw.Window
	version  glVersion
	released bool
}

var (
	_ offscreen.GraphicsContext = (*Context)(nil)
	_ offscreen.ProcLoader      = (*Context)(nil)
)

// Strategy returns the strategy name.
func (c *Context) Strategy() string { return Name }

// Describe returns the requested GL version.
func (c *Context) Describe() string { return "OpenGL " + c.version.String() + " core" }

// ProcAddress resolves a GL entry point of the current context.
func (c *Context) ProcAddress(name string) unsafe.Pointer {
	return glfw.GetProcAddress(name)
}

// Release destroys the window and terminates GLFW.
func (c *Context) Release() error {
	if c.released {
		return nil
	}
	c.released = true
	glfw.DetachCurrentContext()
	c.window.Destroy()
	glfw.Terminate()
	return nil
}
