//go:build !darwin && !desktopgl

package offscreen

// DefaultStrategy is the strategy Run uses unless WithStrategy overrides it.
// Builds without a desktop GL context enumerate GPU devices through wgpu/hal.
const DefaultStrategy = "device"
