package offscreen

import (
	"io"
	"os"
	"unsafe"
)

// GraphicsContext is an active GPU rendering context with no visible
// window attached. It is current on the thread that created it and stays
// current until Release.
type GraphicsContext interface {
	// Strategy returns the name of the strategy that created the context.
	Strategy() string

	// Describe returns a short human-readable description (API, device).
	Describe() string

	// Release destroys the context. Renderers bound to it must be closed first.
	Release() error
}

// ProcLoader is implemented by contexts that resolve native GL entry
// points by name. ProcAddress returns nil for unknown symbols.
type ProcLoader interface {
	ProcAddress(name string) unsafe.Pointer
}

// ContextConfig carries the caller's settings into Strategy.CreateContext.
type ContextConfig struct {
	// Diagnostics receives the device list and the picked config.
	Diagnostics io.Writer
}

// Writer returns the diagnostics writer, defaulting to standard output.
func (c ContextConfig) Writer() io.Writer {
	if c.Diagnostics == nil {
		return os.Stdout
	}
	return c.Diagnostics
}
