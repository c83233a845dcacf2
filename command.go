package offscreen

import (
	"fmt"
	"image"
)

// CommandKind identifies a queued drawing command.
type CommandKind uint8

const (
	// CommandClearRect replaces every pixel of a rectangle with a color.
	CommandClearRect CommandKind = iota + 1
)

// String implements fmt.Stringer.
func (k CommandKind) String() string {
	switch k {
	case CommandClearRect:
		return "ClearRect"
	default:
		return fmt.Sprintf("CommandKind(%d)", uint8(k))
	}
}

// Command is a drawing command recorded by a Canvas and executed by a
// Renderer on Flush.
//
// The rectangle is stored as given; it may lie partly or entirely outside
// the canvas. Renderers clip it with Bounds.
type Command struct {
	Kind   CommandKind
	X, Y   int
	Width  int
	Height int
	Color  RGBA
}

// Rect returns the unclipped rectangle of the command.
func (c Command) Rect() image.Rectangle {
	return image.Rect(c.X, c.Y, c.X+c.Width, c.Y+c.Height)
}

// Bounds returns the part of the command's rectangle that lies inside a
// framebuffer of the given size. The result is empty when nothing is covered.
func (c Command) Bounds(width, height int) image.Rectangle {
	if c.Width <= 0 || c.Height <= 0 {
		return image.Rectangle{}
	}
	return c.Rect().Intersect(image.Rect(0, 0, width, height))
}

// String implements fmt.Stringer.
func (c Command) String() string {
	return fmt.Sprintf("%s(%d, %d, %d, %d, %s)", c.Kind, c.X, c.Y, c.Width, c.Height, c.Color)
}
