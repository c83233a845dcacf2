package offscreen

import "errors"

// Stage errors. Every failure returned by Run wraps exactly one of these,
// so callers can tell which step of the pipeline stopped.
var (
	// ErrContext is returned when no device, display, config or context
	// could be created or made current.
	ErrContext = errors.New("offscreen: context creation failed")

	// ErrRenderer is returned when the graphics library cannot be bound to
	// the context.
	ErrRenderer = errors.New("offscreen: renderer initialization failed")

	// ErrCanvas is returned when the renderer cannot back a canvas.
	ErrCanvas = errors.New("offscreen: canvas creation failed")

	// ErrScreenshot is returned when the framebuffer cannot be captured.
	ErrScreenshot = errors.New("offscreen: screenshot failed")

	// ErrSave is returned when the image cannot be encoded or written.
	ErrSave = errors.New("offscreen: save failed")
)

// Causes wrapped by the stage errors.
var (
	// ErrNoDevices is returned when enumeration finds no usable GPU adapter.
	ErrNoDevices = errors.New("offscreen: no available devices")

	// ErrNoConfigs is returned when no config matches the template.
	ErrNoConfigs = errors.New("offscreen: no available configs")

	// ErrUnknownStrategy is returned when a strategy name is not registered.
	ErrUnknownStrategy = errors.New("offscreen: unknown strategy")

	// ErrSizeNotSet is returned when drawing or capturing before SetSize.
	ErrSizeNotSet = errors.New("offscreen: canvas size not set")

	// ErrInvalidSize is returned for non-positive dimensions or pixel ratio.
	ErrInvalidSize = errors.New("offscreen: invalid size")

	// ErrSizeMismatch is returned when pixel buffers have different shapes.
	ErrSizeMismatch = errors.New("offscreen: size mismatch")

	// ErrNoFramebuffer is returned when a renderer is asked for pixels
	// before its framebuffer was configured.
	ErrNoFramebuffer = errors.New("offscreen: no framebuffer")

	// ErrUnsupportedFormat is returned for output paths with an unknown
	// image extension.
	ErrUnsupportedFormat = errors.New("offscreen: unsupported image format")

	// ErrClosed is returned when using a released canvas or renderer.
	ErrClosed = errors.New("offscreen: closed")
)
