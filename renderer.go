package offscreen

// Renderer executes canvas commands against a backing framebuffer owned
// by a GraphicsContext.
//
// Renderers are not safe for concurrent use. The context they were bound
// to must stay current on the calling thread for their whole lifetime.
type Renderer interface {
	// Name returns the renderer identifier (e.g., "device", "desktop").
	Name() string

	// Configure (re)allocates the framebuffer for the given logical size
	// and clears it to transparent black. Previous contents are discarded
	// on every call, even when the size is unchanged.
	Configure(width, height int, pixelRatio float64) error

	// Render executes cmds into the framebuffer and waits for completion.
	Render(cmds []Command) error

	// ReadPixels copies the framebuffer into process memory.
	// Returns ErrNoFramebuffer if Configure was never called.
	ReadPixels() (*FrameBuffer, error)

	// Close releases renderer resources. The context is not released.
	Close() error
}
