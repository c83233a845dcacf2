//go:build darwin || desktopgl

package offscreen

// DefaultStrategy is the strategy Run uses unless WithStrategy overrides it.
// Builds for darwin, or with the desktopgl tag, use the desktop GL context.
const DefaultStrategy = "desktop"
