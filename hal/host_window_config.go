//go:build !tinygo

package hal

// WindowConfig sizes the desktop window. The framebuffer is the window size
// divided by Scale and follows the window when it is resized.
type WindowConfig struct {
	Title  string
	Width  int
	Height int
	Scale  int
}
