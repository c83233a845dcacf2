// Package desktop provides the offscreen strategy for platforms where GPU
// access goes through a desktop OpenGL context (macOS, or any build with the
// desktopgl tag).
//
// A GLFW window of 1x1 pixels is created invisible and only serves to own a
// core-profile context; the newest version from 4.6 down to 3.2 is
// requested. Drawing happens in a framebuffer object of the canvas size.
//
// GLFW and OpenGL calls must come from the main OS thread. Importing the
// package locks the main goroutine to it:
//
//	import _ "github.com/gogpu/offscreen/backend/desktop"
//
// The strategy is only built with cgo on darwin or with the desktopgl tag;
// elsewhere the package registers nothing.
package desktop
