// Package offscreen renders into a headless GPU context and saves the
// result as an image file.
//
// # Overview
//
// offscreen bootstraps a graphics context without a visible window, draws
// into an in-memory canvas, reads the framebuffer back into process memory
// and converts it into a standard RGBA image.
//
// # Quick Start
//
//	import (
//	    "github.com/gogpu/offscreen"
//	    _ "github.com/gogpu/offscreen/backend/device" // wgpu/hal strategy
//	)
//
//	state, err := offscreen.Run(offscreen.DefaultJob())
//	if err != nil {
//	    log.Fatalf("stopped at %s: %v", state, err)
//	}
//
// # Strategies
//
// A [Strategy] produces a current offscreen [GraphicsContext] and binds a
// [Renderer] to it. Strategies register themselves by name:
//
//   - "device": enumerates GPU adapters through wgpu/hal (Vulkan, falling
//     back to GL), picks the config with the most samples and opens a
//     surfaceless device (backend/device)
//   - "desktop": creates an invisible 1x1 GLFW window with a core-profile
//     OpenGL context and loads GL entry points by name (backend/desktop)
//   - "software": CPU rasterizer, always registered
//
// The default strategy is chosen at build time, see [DefaultStrategy].
//
// # Pipeline
//
// Run walks a fixed sequence of states:
//
//	Uninitialized → ContextReady → RendererReady → CanvasReady → Drawn →
//	Flushed → Captured → Saved → Terminated
//
// Every stage returns an error instead of aborting; the caller decides the
// abort policy. cmd/offscreen exits non-zero on the first failure.
//
// # Coordinate System
//
//   - Origin (0,0) at top-left
//   - X increases right, Y increases down
//   - Framebuffer rows are returned top row first
package offscreen

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"
)
